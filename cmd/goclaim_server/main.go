package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/kdudkov/goclaim/internal/config"
	"github.com/kdudkov/goclaim/internal/database"
	"github.com/kdudkov/goclaim/internal/files"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

type App struct {
	logger *slog.Logger
	config *config.AppConfig
	dbm    *database.DatabaseManager
	files  *files.Manager

	tokenKey []byte
}

func NewApp(config *config.AppConfig) *App {
	db, err := database.GetDatabase(config.String("db"), config.Bool("debug"))
	if err != nil {
		panic(err)
	}

	app := &App{
		logger:   slog.Default(),
		config:   config,
		dbm:      database.New(db),
		files:    files.NewManager(config.UploadsDir(), config.ExamplesDir()),
		tokenKey: config.TokenKey(),
	}

	if len(app.tokenKey) == 0 {
		// tokens issued with a random key do not survive a restart
		app.tokenKey = []byte(uuid.NewString())
		app.logger.Warn("no token_key configured, using a random one")
	}

	return app
}

func (app *App) Run() {
	if err := app.dbm.Migrate(); err != nil {
		panic(err)
	}

	app.dbm.AddDefaults()

	if err := app.files.Start(); err != nil {
		panic(err)
	}

	srv := NewHttp(app)

	go func() {
		if err := srv.Listen(app.config.ApiAddr()); err != nil {
			panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	app.logger.Info("exiting...")
	_ = srv.Shutdown()
}

func main() {
	fmt.Printf("version %s %s\n", gitRevision, gitBranch)

	var debug = flag.Bool("debug", false, "debug mode")
	var conf = flag.String("config", "goclaim.yml", "name of config file")
	flag.Parse()

	cfg := config.NewAppConfig()
	cfg.Load(*conf)
	_ = cfg.LoadEnv("GOCLAIM_")

	if *debug {
		_ = cfg.Set("debug", true)
	}

	level := slog.LevelInfo
	if cfg.Bool("debug") {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	app := NewApp(cfg)
	app.Run()
}
