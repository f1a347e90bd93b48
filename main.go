package main

import (
	"log"

	_ "raspisanie/docs"
	"raspisanie/internal/config"
	"raspisanie/internal/handlers"
	"raspisanie/internal/routes"
	"raspisanie/internal/storage"
	"raspisanie/internal/tasks"
	"raspisanie/internal/timetable"
	"raspisanie/internal/ws"

	"github.com/gin-gonic/gin"
)

// @Title						Составление расписания занятий
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg := config.Load()

	storage.ConnectDatabase(cfg)

	if err := storage.Migrate(storage.DB); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis(cfg)

	handlers.SetSecrets(cfg.AccessSecret, cfg.RefreshSecret)
	handlers.Service = timetable.NewService(storage.DB, cfg.SaveRetries)

	tasks.InitScheduler(handlers.Service, cfg.AuditCron)

	go ws.HubInstance.Run()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	routes.SetupRoutes(r)

	cfg.Debugf("Сервер слушает порт %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
