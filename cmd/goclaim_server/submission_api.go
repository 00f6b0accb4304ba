package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kdudkov/goclaim/internal/files"
	"github.com/kdudkov/goclaim/internal/model"
	"github.com/kdudkov/goclaim/internal/stats"
)

// getSubmissionPostHandler accepts a form-encoded submission: the claim id
// plus the user data as a JSON string. The data is stored verbatim, the claim
// title is denormalized at this instant.
func getSubmissionPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claimID := ctx.FormValue("ricorso_id")

		claim := app.dbm.ClaimQuery().Id(claimID).One()

		if claim == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Ricorso not found"})
		}

		var userData map[string]any

		if err := json.Unmarshal([]byte(ctx.FormValue("dati_utente")), &userData); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid dati_utente format"})
		}

		now := time.Now()

		sub := &model.Submission{
			ID:          uuid.NewString(),
			ClaimID:     claim.ID,
			ClaimTitle:  claim.Title,
			UserData:    userData,
			Files:       map[string]string{},
			SubmittedAt: now,
			ReferenceID: model.NewReferenceID(now),
		}

		if err := app.dbm.Create(sub); err != nil {
			return err
		}

		return ctx.JSON(sub)
	}
}

// getUploadHandler stores one document file for a submission. The submission
// id is not checked: an unknown id writes the file and skips the metadata
// update.
func getUploadHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		submissionID := ctx.Params("submissionId")
		documentID := ctx.Params("documentId")

		fh, err := ctx.FormFile("file")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "No file provided"})
		}

		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		if err := app.files.SaveUpload(submissionID, documentID, fh.Filename, f); err != nil {
			if errors.Is(err, files.ErrBadFileType) {
				return ctx.Status(fiber.StatusBadRequest).
					JSON(fiber.Map{"detail": fmt.Sprintf("File type not allowed. Allowed: %v", files.AllowedExt())})
			}

			return err
		}

		if sub := app.dbm.SubmissionQuery().Id(submissionID).One(); sub != nil {
			if sub.Files == nil {
				sub.Files = map[string]string{}
			}

			sub.Files[documentID] = fh.Filename

			if err := app.dbm.Save(sub); err != nil {
				return err
			}
		}

		return ctx.JSON(fiber.Map{"message": "File uploaded successfully", "filename": fh.Filename})
	}
}

func getSubmissionsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		q := app.dbm.SubmissionQuery()

		if id := ctx.Query("ricorso_id"); id != "" {
			q = q.Claim(id)
		}

		return ctx.JSON(q.Get())
	}
}

func getStatsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claim := app.dbm.ClaimQuery().Id(ctx.Params("id")).One()

		if claim == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Ricorso not found"})
		}

		// store order, no explicit sort here
		subs := app.dbm.SubmissionQuery().Claim(claim.ID).Order("").Limit(10000).Get()

		return ctx.JSON(stats.Build(claim, subs, time.Now()))
	}
}
