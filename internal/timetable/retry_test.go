package timetable

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"raspisanie/internal/testdb"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// failing возвращает fn, которая первые n вызовов падает с ошибкой err
func failing(n int, err error, calls *int) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		*calls++
		if *calls <= n {
			return err
		}
		return nil
	}
}

func TestInTxRetriesSerializationFailures(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "serialization failure", code: "40001"},
		{name: "deadlock detected", code: "40P01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(testdb.Open(t), 2)
			calls := 0

			err := svc.inTx(context.Background(), "сохранение", failing(2, &pgconn.PgError{Code: tt.code}, &calls))
			require.NoError(t, err)
			assert.Equal(t, 3, calls)
		})
	}
}

func TestInTxGivesUpAfterMaxRetries(t *testing.T) {
	svc := NewService(testdb.Open(t), 2)
	calls := 0

	err := svc.inTx(context.Background(), "сохранение", failing(100, &pgconn.PgError{Code: "40001"}, &calls))
	require.Error(t, err)
	assert.Equal(t, 3, calls, "первая попытка и два повтора")
	assert.ErrorIs(t, err, ErrPersistence)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "40001", pgErr.Code)
}

func TestInTxDoesNotRetryOtherErrors(t *testing.T) {
	svc := NewService(testdb.Open(t), 3)

	calls := 0
	err := svc.inTx(context.Background(), "сохранение", failing(100, &pgconn.PgError{Code: "23505"}, &calls))
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, ErrPersistence)

	calls = 0
	conflict := &ConflictError{Resource: ResourceRoom, Name: "101"}
	err = svc.inTx(context.Background(), "сохранение", failing(100, conflict, &calls))
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrPersistence)
}

func TestInTxWithoutRetries(t *testing.T) {
	svc := NewService(testdb.Open(t), 0)
	calls := 0

	err := svc.inTx(context.Background(), "сохранение", failing(1, &pgconn.PgError{Code: "40001"}, &calls))
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, isRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isRetryable(&PersistenceError{Op: "x", Err: &pgconn.PgError{Code: "40P01"}}))
	assert.False(t, isRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryable(errors.New("connection reset")))

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "40001"}))
}

func TestTxOptionsByDialect(t *testing.T) {
	assert.Nil(t, NewService(testdb.Open(t), 0).txOptions())

	pg := &gorm.DB{Config: &gorm.Config{Dialector: postgres.Dialector{Config: &postgres.Config{}}}}
	opts := NewService(pg, 0).txOptions()
	require.NotNil(t, opts)
	assert.Equal(t, sql.LevelSerializable, opts.Isolation)
}
