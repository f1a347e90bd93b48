// Package testdb поднимает SQLite в памяти со схемой расписаний для тестов.
package testdb

import (
	"testing"

	"raspisanie/internal/storage"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Open возвращает изолированную базу. Одно соединение: база ":memory:" живет в нем,
// а транзакции сериализуются так же, как на PostgreSQL при SERIALIZABLE.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("не удалось открыть sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("не удалось получить sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := storage.Migrate(db); err != nil {
		t.Fatalf("миграция тестовой базы: %v", err)
	}
	return db
}
