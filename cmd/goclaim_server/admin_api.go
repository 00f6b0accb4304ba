package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kdudkov/goclaim/internal/model"
)

type credentialsDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminPostDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"nome"`
	Surname  string `json:"cognome"`
	Email    string `json:"email"`
}

type invitePostDTO struct {
	Name    string `json:"nome"`
	Surname string `json:"cognome"`
	Email   string `json:"email"`
}

type inviteRegisterDTO struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// getAdminRegisterHandler is open only while no admin exists. After first
// run the manual or invite flows must be used.
func getAdminRegisterHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var dto credentialsDTO

		if err := ctx.BodyParser(&dto); err != nil || dto.Username == "" || dto.Password == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid body"})
		}

		if app.dbm.AdminQuery().Count() > 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Admin registration is closed"})
		}

		a := &model.Admin{ID: uuid.NewString(), Username: dto.Username, Role: "admin"}

		if err := a.SetPassword(dto.Password); err != nil {
			return err
		}

		if err := app.dbm.Create(a); err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{"message": "Admin created successfully"})
	}
}

func getLoginHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var dto credentialsDTO

		if err := ctx.BodyParser(&dto); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid body"})
		}

		admin := app.dbm.AdminQuery().Username(dto.Username).One()

		// same answer for a missing user and a bad password
		if admin == nil || !admin.CheckPassword(dto.Password) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid username or password"})
		}

		token, err := app.issueToken(admin.Username)
		if err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{"access_token": token, "token_type": "bearer"})
	}
}

func getCheckHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"username": Username(ctx), "authenticated": true})
	}
}

func getAdminCreateHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var dto adminPostDTO

		if err := ctx.BodyParser(&dto); err != nil || dto.Username == "" || dto.Password == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid body"})
		}

		if app.dbm.AdminQuery().Username(dto.Username).One() != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Username already exists"})
		}

		a := &model.Admin{
			ID:        uuid.NewString(),
			Username:  dto.Username,
			Name:      dto.Name,
			Surname:   dto.Surname,
			Email:     dto.Email,
			Role:      "admin",
			CreatedBy: Username(ctx),
		}

		if err := a.SetPassword(dto.Password); err != nil {
			return err
		}

		if err := app.dbm.Create(a); err != nil {
			return err
		}

		return ctx.JSON(a)
	}
}

func getInviteCreateHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var dto invitePostDTO

		if err := ctx.BodyParser(&dto); err != nil || dto.Email == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid body"})
		}

		i := &model.Invite{
			Token:     model.NewInviteToken(),
			Email:     dto.Email,
			Name:      dto.Name,
			Surname:   dto.Surname,
			CreatedBy: Username(ctx),
			ExpiresAt: time.Now().Add(app.config.InviteTTL()),
		}

		if err := app.dbm.Create(i); err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{
			"token":      i.Token,
			"email":      i.Email,
			"nome":       i.Name,
			"cognome":    i.Surname,
			"expires_at": i.ExpiresAt,
			"invite_url": "/admin/register/" + i.Token,
		})
	}
}

func getInviteValidateHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		invite := app.dbm.InviteQuery().Token(ctx.Params("token")).One()

		if invite == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Invite not found"})
		}

		if err := invite.CheckRedeemable(time.Now()); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}

		return ctx.JSON(fiber.Map{
			"valid":   true,
			"nome":    invite.Name,
			"cognome": invite.Surname,
			"email":   invite.Email,
		})
	}
}

func getInviteRegisterHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var dto inviteRegisterDTO

		if err := ctx.BodyParser(&dto); err != nil || dto.Token == "" || dto.Username == "" || dto.Password == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid body"})
		}

		invite := app.dbm.InviteQuery().Token(dto.Token).One()

		if invite == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Invite not found"})
		}

		if err := invite.CheckRedeemable(time.Now()); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}

		if app.dbm.AdminQuery().Username(dto.Username).One() != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Username already exists"})
		}

		a := &model.Admin{
			ID:        uuid.NewString(),
			Username:  dto.Username,
			Name:      invite.Name,
			Surname:   invite.Surname,
			Email:     invite.Email,
			Role:      "admin",
			CreatedBy: invite.CreatedBy,
		}

		if err := a.SetPassword(dto.Password); err != nil {
			return err
		}

		if err := app.dbm.Create(a); err != nil {
			return err
		}

		invite.Used = true

		if err := app.dbm.Save(invite); err != nil {
			return err
		}

		return ctx.JSON(fiber.Map{"message": "Admin created successfully"})
	}
}

func getAdminListHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.dbm.AdminQuery().Get())
	}
}

func getAdminDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		admin := app.dbm.AdminQuery().Id(ctx.Params("id")).One()

		if admin == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Admin not found"})
		}

		if admin.Username == Username(ctx) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot delete yourself"})
		}

		if res := app.dbm.AdminQuery().Id(admin.ID).Delete(); res.Error != nil {
			return res.Error
		}

		return ctx.JSON(fiber.Map{"message": "Admin deleted successfully"})
	}
}

func getInviteListHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.dbm.InviteQuery().Get())
	}
}
