package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessSecret  string
	RefreshSecret string

	Port string

	// AuditCron задает расписание проверки пересечений (формат cron с секундами)
	AuditCron string
	// SaveRetries задает число повторов сохранения при конфликте сериализации
	SaveRetries int
	SlowQuery   time.Duration
	Debug       bool
}

// Load читает конфигурацию из окружения. Если ENV_CHEK не задан, сначала подключается .env.
func Load() *Config {
	if os.Getenv("ENV_CHEK") == "" {
		log.Println("Подключение к .env")
		if err := godotenv.Load(); err != nil {
			log.Println("Файл .env не найден, используются переменные окружения")
		}
	}

	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "postgres"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		AccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
		RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
		Port:          getEnv("PORT", "8080"),
		AuditCron:     getEnv("AUDIT_CRON", "0 0 3 * * *"),
		SaveRetries:   getEnvInt("SAVE_RETRIES", 3),
		SlowQuery:     getEnvDuration("SLOW_QUERY", 200*time.Millisecond),
		Debug:         getEnvBool("DEBUG", false),
	}
}

// DSN собирает строку подключения к PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Debugf пишет сообщение только при включенном DEBUG
func (c *Config) Debugf(format string, v ...interface{}) {
	if c.Debug {
		log.Printf("[DEBUG] "+format, v...)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
