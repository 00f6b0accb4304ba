package main

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/kdudkov/goclaim/internal/files"
)

// getExampleUploadHandler stores a reference file for a document slot and
// records its URL inside the claim's document list.
func getExampleUploadHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claimID := ctx.Params("claimId")
		documentID := ctx.Params("documentId")

		claim := app.dbm.ClaimQuery().Id(claimID).One()

		if claim == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Ricorso not found"})
		}

		fh, err := ctx.FormFile("file")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "No file provided"})
		}

		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		if err := app.files.SaveExample(claimID, documentID, fh.Filename, f); err != nil {
			if errors.Is(err, files.ErrBadFileType) {
				return ctx.Status(fiber.StatusBadRequest).
					JSON(fiber.Map{"detail": fmt.Sprintf("File type not allowed. Allowed: %v", files.AllowedExt())})
			}

			return err
		}

		url := fmt.Sprintf("/api/esempio/%s/%s", claimID, documentID)

		if d := claim.GetDocument(documentID); d != nil {
			d.ExampleURL = url

			if err := app.dbm.Save(claim); err != nil {
				return err
			}
		}

		return ctx.JSON(fiber.Map{"message": "Example file uploaded successfully", "url": url})
	}
}

func getExampleHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		path, err := app.files.FindExample(ctx.Params("claimId"), ctx.Params("documentId"))
		if err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Example file not found"})
		}

		return ctx.SendFile(path)
	}
}

func getExampleDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claimID := ctx.Params("claimId")
		documentID := ctx.Params("documentId")

		if err := app.files.DeleteExample(claimID, documentID); err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Example file not found"})
		}

		// clear the URL if the claim is still around
		if claim := app.dbm.ClaimQuery().Id(claimID).One(); claim != nil {
			if d := claim.GetDocument(documentID); d != nil && d.ExampleURL != "" {
				d.ExampleURL = ""

				if err := app.dbm.Save(claim); err != nil {
					return err
				}
			}
		}

		return ctx.JSON(fiber.Map{"message": "Example file deleted successfully"})
	}
}
