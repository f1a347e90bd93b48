package storage

import (
	"context"
	"fmt"
	"log"

	"raspisanie/internal/config"
	"raspisanie/internal/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase открывает подключение к PostgreSQL и сохраняет его в DB.
func ConnectDatabase(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         NewGormLogger(cfg.SlowQuery, cfg.Debug),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Ошибка подключения к базе данных:", err)
	}

	DB = db
	fmt.Println("Подключение к базе данных успешно!")
}

// Migrate создает и обновляет таблицы расписаний.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("миграция: %w", err)
	}
	return nil
}

var RedisClient *redis.Client

// InitRedis подключает кэш справочников. Без REDIS_ADDR кэш отключен.
func InitRedis(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR не задан, кэш справочников отключен")
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis недоступен, кэш справочников отключен:", err)
		RedisClient = nil
	}
}
