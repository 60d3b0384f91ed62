package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"follow-check/core/instagram"
	"follow-check/core/loader"
	"follow-check/core/logger"
	"follow-check/core/middleware/rayid"
	"follow-check/core/remote"
	"follow-check/feature/reciprocity"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd starts the local paste-based web UI. It is also the root
// command's default mode.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local paste-based web UI",
	Long: `Starts a small web server on a loopback port where follower and
following lists can be pasted and compared without any live API access.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	store, err := buildStore(cfg, "")
	if err != nil {
		return err
	}
	recorder := buildRecorder(cfg, logg)

	// A remote source is optional for the paste UI; wire one only when a
	// session file is explicitly configured.
	var source remote.Source
	if cfg.Remote.SessionFile != "" {
		client, err := instagram.NewClient(cfg.Remote, cfg.Server.Target, logg)
		if err != nil {
			logg.Warn("Remote session unavailable, paste-only mode", zap.Error(err))
		} else {
			source = client
		}
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})

	// RayID first so every request is traceable.
	app.Use(rayid.New())

	// Request logging with Zap + RayID.
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	mgr := loader.NewManager()
	mgr.Register(reciprocity.NewFeature(source, store, recorder, cfg.Server.Target, logg))

	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	go func() {
		logg.Info("Starting paste UI", zap.String("addr", cfg.Server.Addr()))
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			logg.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logg.Info("Shutting down server...")
	_ = app.Shutdown()
	return nil
}
