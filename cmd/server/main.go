package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configsdatabase"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/routes"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.LoadConfig()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		AppName:      "casamentop",
	})

	routes.SetupRoutes(app)

	go func() {
		configslog.SLog.Infof("server listening on %s", cfg.ListenAddr)
		if err := app.Listen(cfg.ListenAddr); err != nil {
			configslog.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("server shutting down")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		configslog.Log.Error("forced shutdown", zap.Error(err))
	}
	configslog.SLog.Info("server exited")
}
