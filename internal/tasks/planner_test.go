package tasks

import (
	"context"
	"testing"

	"raspisanie/internal/models"
	"raspisanie/internal/testdb"
	"raspisanie/internal/timetable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditConflictsCountsViolations(t *testing.T) {
	db := testdb.Open(t)
	svc := timetable.NewService(db, 0)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, "101")
	require.NoError(t, err)
	profile, err := svc.CreateProfile(ctx, "P1", []timetable.Interval{{Number: 1, Start: "09:00", End: "10:30"}})
	require.NoError(t, err)
	s1, err := svc.CreateSchedule(ctx, profile.ID, "S1", models.KindSingle)
	require.NoError(t, err)
	s2, err := svc.CreateSchedule(ctx, profile.ID, "S2", models.KindSingle)
	require.NoError(t, err)

	n, err := AuditConflicts(svc)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, id := range []uint{s1.ID, s2.ID} {
		require.NoError(t, db.Create(&models.ScheduleEntry{
			ScheduleID: id, WeekDay: "Понедельник", PairNumber: 1, RoomID: &room.ID, TimeInterval: "09:00 - 10:30",
		}).Error)
	}
	n, err = AuditConflicts(svc)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAuditConflictsReturnsStoreError(t *testing.T) {
	db := testdb.Open(t)
	svc := timetable.NewService(db, 0)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	n, err := AuditConflicts(svc)
	assert.ErrorIs(t, err, timetable.ErrPersistence)
	assert.Zero(t, n)

	// задача cron только пишет ошибку в лог
	assert.NotPanics(t, func() { runAudit(svc) })
}

func TestInitSchedulerRegistersJob(t *testing.T) {
	svc := timetable.NewService(testdb.Open(t), 0)

	c := InitScheduler(svc, "0 0 3 * * *")
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)

	bad := InitScheduler(svc, "не cron")
	defer bad.Stop()
	assert.Empty(t, bad.Entries())
}
