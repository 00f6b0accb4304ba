package main

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kdudkov/goclaim/internal/model"
)

func getClaimPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var dto model.ClaimPostDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid body"})
		}

		claim := dto.ToClaim()
		claim.ID = uuid.NewString()

		if err := claim.Validate(); err != nil {
			if errors.Is(err, model.ErrTooManyDocuments) {
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Maximum 10 documents allowed"})
			}

			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}

		if err := app.dbm.Create(claim); err != nil {
			return err
		}

		return ctx.JSON(claim)
	}
}

func getClaimsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		q := app.dbm.ClaimQuery()

		if s := ctx.Query("attivo"); s != "" {
			active, err := strconv.ParseBool(s)
			if err != nil {
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid attivo value"})
			}

			q = q.Active(active)
		}

		return ctx.JSON(q.Get())
	}
}

func getClaimHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claim := app.dbm.ClaimQuery().Id(ctx.Params("id")).One()

		if claim == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Ricorso not found"})
		}

		return ctx.JSON(claim)
	}
}

func getClaimPutHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claim := app.dbm.ClaimQuery().Id(ctx.Params("id")).One()

		if claim == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Ricorso not found"})
		}

		var dto model.ClaimPutDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid body"})
		}

		// empty update is a no-op, updated_at stays put
		if dto.Apply(claim) {
			if err := app.dbm.Save(claim); err != nil {
				return err
			}
		}

		return ctx.JSON(claim)
	}
}

func getClaimDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		res := app.dbm.ClaimQuery().Id(ctx.Params("id")).Delete()

		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Ricorso not found"})
		}

		// submissions and uploaded files are left in place
		return ctx.JSON(fiber.Map{"message": "Ricorso deleted successfully"})
	}
}
