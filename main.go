package main

import (
	"os"
	"os/signal"
	"syscall"

	"kart.link/configs"
	"kart.link/configs/configsdatabase"
	"kart.link/configs/configslog"
	"kart.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()
	configs.LoadEnv()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	configs.InitStripe()

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		AppName:     "kart.link",
		ProxyHeader: fiber.HeaderXForwardedFor,
	})

	routes.SetupRoutes(app)

	// Graceful shutdown: açık istekler tamamlanana kadar beklenir.
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdownChan
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
	}()

	addr := configs.GetListenAddr()
	configslog.SLog.Infof("Sunucu %s adresinde dinliyor", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	configslog.SLog.Info("Sunucu durduruldu.")
}
