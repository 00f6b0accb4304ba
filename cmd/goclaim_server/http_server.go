package main

import (
	"runtime/pprof"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kdudkov/goclaim/pkg/log"
)

type HttpServer struct {
	app *App
	f   *fiber.App
}

func NewHttp(app *App) *HttpServer {
	f := fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true, BodyLimit: 64 * 1024 * 1024})

	f.Use(cors.New())
	f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "api", UserGetter: Username, DoMetrics: true}))

	auth := authRequired(app)

	api := f.Group("/api")

	api.Get("/", getRootHandler())

	api.Post("/admin/register", getAdminRegisterHandler(app))
	api.Post("/admin/login", getLoginHandler(app))
	api.Get("/admin/check", auth, getCheckHandler())
	api.Post("/admin/create-manual", auth, getAdminCreateHandler(app))
	api.Post("/admin/invite", auth, getInviteCreateHandler(app))
	api.Get("/admin/invite/validate/:token", getInviteValidateHandler(app))
	api.Post("/admin/register-with-invite", getInviteRegisterHandler(app))
	api.Get("/admin/list", auth, getAdminListHandler(app))
	api.Delete("/admin/delete/:id", auth, getAdminDeleteHandler(app))
	api.Get("/admin/invites", auth, getInviteListHandler(app))

	api.Post("/ricorsi", auth, getClaimPostHandler(app))
	api.Get("/ricorsi", getClaimsHandler(app))
	api.Get("/ricorsi/:id", getClaimHandler(app))
	api.Put("/ricorsi/:id", auth, getClaimPutHandler(app))
	api.Delete("/ricorsi/:id", auth, getClaimDeleteHandler(app))

	api.Post("/submissions", getSubmissionPostHandler(app))
	api.Get("/submissions", auth, getSubmissionsHandler(app))
	api.Get("/submissions/stats/:id", auth, getStatsHandler(app))
	api.Post("/upload/:submissionId/:documentId", getUploadHandler(app))

	api.Post("/upload-esempio/:claimId/:documentId", auth, getExampleUploadHandler(app))
	api.Get("/esempio/:claimId/:documentId", getExampleHandler(app))
	api.Delete("/esempio/:claimId/:documentId", auth, getExampleDeleteHandler(app))

	f.Get("/metrics", getMetricsHandler())
	f.Get("/stack", getStackHandler())

	return &HttpServer{app: app, f: f}
}

func (h *HttpServer) Listen(addr string) error {
	h.app.logger.Info("listening http at " + addr)

	return h.f.Listen(addr)
}

func (h *HttpServer) Shutdown() error {
	return h.f.Shutdown()
}

func getRootHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"message": "Ricorsi API v1.0"})
	}
}

func getStackHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return pprof.Lookup("goroutine").WriteTo(ctx.Response().BodyWriter(), 1)
	}
}

func getMetricsHandler() fiber.Handler {
	handler := promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})

	return adaptor.HTTPHandler(handler)
}
