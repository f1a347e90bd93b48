package timetable

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Коды SQLSTATE, после которых транзакцию сохранения можно повторить
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateUniqueViolation      = "23505"
)

// Service выполняет операции над профилями и расписаниями поверх GORM.
type Service struct {
	DB *gorm.DB
	// MaxRetries задает, сколько раз повторить транзакцию после конфликта сериализации
	MaxRetries int
}

func NewService(db *gorm.DB, maxRetries int) *Service {
	return &Service{DB: db, MaxRetries: maxRetries}
}

// txOptions: на PostgreSQL сохранение идет при SERIALIZABLE, чтобы два параллельных
// сохранения не прошли проверку занятости одновременно. SQLite сериализует запись сам.
func (s *Service) txOptions() *sql.TxOptions {
	if s.DB.Dialector.Name() == "postgres" {
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return nil
}

// inTx выполняет fn в одной транзакции и повторяет ее целиком при конфликте сериализации.
// Ошибки предметной области возвращаются как есть, остальные оборачиваются в PersistenceError.
func (s *Service) inTx(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	db := s.DB.WithContext(ctx)
	opts := s.txOptions()

	var err error
	for attempt := 0; ; attempt++ {
		if opts != nil {
			err = db.Transaction(fn, opts)
		} else {
			err = db.Transaction(fn)
		}
		if err == nil || !isRetryable(err) || attempt >= s.MaxRetries {
			break
		}
		log.Printf("%s: конфликт сериализации, повтор %d из %d", op, attempt+1, s.MaxRetries)
	}
	return wrapPersistence(op, err)
}

func wrapPersistence(op string, err error) error {
	if err == nil || isDomainError(err) || errors.Is(err, ErrPersistence) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
