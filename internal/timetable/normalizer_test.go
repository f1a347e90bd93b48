package timetable

import (
	"errors"
	"testing"

	"raspisanie/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type busyKey struct {
	name   string
	day    string
	period int
	parity models.WeekParity
}

// fakeChecker хранит занятость как карту ячейка -> расписание-владелец
type fakeChecker struct {
	rooms    map[busyKey]uint
	teachers map[busyKey]uint
	calls    int
}

func (f *fakeChecker) IsRoomBusy(name, day string, period int, parity models.WeekParity, excluding uint) (bool, error) {
	f.calls++
	owner, ok := f.rooms[busyKey{name, day, period, parity}]
	return ok && owner != excluding, nil
}

func (f *fakeChecker) IsTeacherBusy(name, day string, period int, parity models.WeekParity, excluding uint) (bool, error) {
	f.calls++
	owner, ok := f.teachers[busyKey{name, day, period, parity}]
	return ok && owner != excluding, nil
}

type failingChecker struct{}

func (failingChecker) IsRoomBusy(string, string, int, models.WeekParity, uint) (bool, error) {
	return false, errors.New("connection reset")
}

func (failingChecker) IsTeacherBusy(string, string, int, models.WeekParity, uint) (bool, error) {
	return false, errors.New("connection reset")
}

func testDirectory() *Directory {
	return NewDirectory(
		[]models.Room{{ID: 1, Name: "101"}, {ID: 2, Name: "102"}},
		[]models.Teacher{{ID: 7, Name: "Иванов"}, {ID: 8, Name: "Петров"}},
	)
}

func testGrid() Grid {
	return NewGrid([]Interval{
		{Number: 1, Start: "09:00", End: "10:30"},
		{Number: 2, Start: "10:40", End: "12:10"},
	})
}

func newNormalizer(kind models.ScheduleKind, checker BusyChecker) *Normalizer {
	return &Normalizer{ScheduleID: 5, Kind: kind, Directory: testDirectory(), Grid: testGrid(), Checker: checker}
}

func TestNormalizeSingle(t *testing.T) {
	n := newNormalizer(models.KindSingle, &fakeChecker{})

	res, err := n.Normalize([]Row{
		{Weekday: "Понедельник", Period: 1, Slot: &Payload{Room: " 101 ", Teacher: "Иванов", LessonType: "Лекция", Discipline: "Физика"}},
		{Weekday: "Понедельник", Period: 2, Slot: &Payload{}},
	})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	first := res.Entries[0]
	assert.Equal(t, uint(5), first.ScheduleID)
	assert.Equal(t, models.ParityNone, first.WeekType)
	require.NotNil(t, first.RoomID)
	assert.Equal(t, uint(1), *first.RoomID)
	require.NotNil(t, first.TeacherID)
	assert.Equal(t, uint(7), *first.TeacherID)
	assert.Equal(t, "09:00 - 10:30", first.TimeInterval)

	empty := res.Entries[1]
	assert.Nil(t, empty.RoomID, "пустое имя означает отсутствие аудитории")
	assert.Nil(t, empty.TeacherID)
	assert.Equal(t, "10:40 - 12:10", empty.TimeInterval)
}

func TestNormalizeSingleIgnoresWeekBlocks(t *testing.T) {
	n := newNormalizer(models.KindSingle, &fakeChecker{})

	res, err := n.Normalize([]Row{
		{Weekday: "Вторник", Period: 1, Odd: &Payload{Room: "101"}, Even: &Payload{Room: "102"}},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
}

func TestNormalizeBiWeeklyParities(t *testing.T) {
	n := newNormalizer(models.KindBiWeekly, &fakeChecker{})

	res, err := n.Normalize([]Row{
		{Weekday: "Понедельник", Period: 1, Odd: &Payload{Room: "101"}, Even: &Payload{Room: "102"}},
		{Weekday: "Понедельник", Period: 2, Even: &Payload{Teacher: "Петров"}},
	})
	require.NoError(t, err)
	require.Len(t, res.Entries, 3)
	assert.Equal(t, models.ParityOdd, res.Entries[0].WeekType)
	assert.Equal(t, models.ParityEven, res.Entries[1].WeekType)
	assert.Equal(t, models.ParityEven, res.Entries[2].WeekType)
	for _, e := range res.Entries {
		assert.Contains(t, []models.WeekParity{models.ParityOdd, models.ParityEven}, e.WeekType)
	}
}

func TestNormalizeDuplicateKeepsFirst(t *testing.T) {
	n := newNormalizer(models.KindSingle, &fakeChecker{})

	res, err := n.Normalize([]Row{
		{Weekday: "Среда", Period: 1, Slot: &Payload{Room: "101", Discipline: "Первая"}},
		{Weekday: "Среда", Period: 1, Slot: &Payload{Room: "Нет такой", Discipline: "Вторая"}},
		{Weekday: " Среда ", Period: 1, Slot: &Payload{Room: "102", Discipline: "Третья"}},
	})
	require.NoError(t, err, "повтор не проверяется и не вызывает ошибку")
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Первая", res.Entries[0].Discipline)
	assert.Equal(t, 2, res.Skipped)
}

func TestNormalizeDropsPeriodsWithoutInterval(t *testing.T) {
	n := newNormalizer(models.KindSingle, &fakeChecker{})

	res, err := n.Normalize([]Row{
		{Weekday: "Четверг", Period: 1, Slot: &Payload{Room: "101"}},
		{Weekday: "Четверг", Period: 3, Slot: &Payload{Room: "102"}},
	})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, 1, res.Dropped)
}

func TestNormalizeRoomNotFound(t *testing.T) {
	n := newNormalizer(models.KindBiWeekly, &fakeChecker{})

	_, err := n.Normalize([]Row{
		{Weekday: "Пятница", Period: 2, Odd: &Payload{Room: "101"}, Even: &Payload{Room: "999"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, ResourceRoom, nf.Resource)
	assert.Equal(t, "999", nf.Name)
	require.NotNil(t, nf.Slot)
	assert.Equal(t, Slot{Weekday: "Пятница", Period: 2, Parity: models.ParityEven}, *nf.Slot)
	assert.Contains(t, err.Error(), "четная неделя")
}

func TestNormalizeTeacherNotFound(t *testing.T) {
	n := newNormalizer(models.KindSingle, &fakeChecker{})

	_, err := n.Normalize([]Row{{Weekday: "Пятница", Period: 1, Slot: &Payload{Teacher: "Сидоров"}}})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, ResourceTeacher, nf.Resource)
}

func TestNormalizeConflicts(t *testing.T) {
	checker := &fakeChecker{
		rooms:    map[busyKey]uint{{"101", "Понедельник", 1, models.ParityNone}: 9},
		teachers: map[busyKey]uint{{"Иванов", "Понедельник", 2, models.ParityNone}: 9},
	}
	n := newNormalizer(models.KindSingle, checker)

	_, err := n.Normalize([]Row{{Weekday: "Понедельник", Period: 1, Slot: &Payload{Room: "101"}}})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, ResourceRoom, ce.Resource)
	assert.Equal(t, "101", ce.Name)

	_, err = n.Normalize([]Row{{Weekday: "Понедельник", Period: 2, Slot: &Payload{Room: "101", Teacher: "Иванов"}}})
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ResourceTeacher, ce.Resource)

	// своя же запись не считается занятостью
	checker.rooms[busyKey{"102", "Вторник", 1, models.ParityNone}] = 5
	_, err = n.Normalize([]Row{{Weekday: "Вторник", Period: 1, Slot: &Payload{Room: "102"}}})
	assert.NoError(t, err)
}

func TestNormalizeParityIsExact(t *testing.T) {
	checker := &fakeChecker{rooms: map[busyKey]uint{{"101", "Понедельник", 1, models.ParityNone}: 9}}
	n := newNormalizer(models.KindBiWeekly, checker)

	res, err := n.Normalize([]Row{{Weekday: "Понедельник", Period: 1, Odd: &Payload{Room: "101"}, Even: &Payload{Room: "101"}}})
	require.NoError(t, err, "занятость в обычном расписании не пересекается с нечетной и четной неделями")
	assert.Len(t, res.Entries, 2)
}

func TestNormalizeAbortsOnFirstFailure(t *testing.T) {
	checker := &fakeChecker{}
	n := newNormalizer(models.KindSingle, checker)

	res, err := n.Normalize([]Row{
		{Weekday: "Понедельник", Period: 1, Slot: &Payload{Room: "101"}},
		{Weekday: "Понедельник", Period: 2, Slot: &Payload{Room: "000"}},
		{Weekday: "Вторник", Period: 1, Slot: &Payload{Room: "102"}},
	})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, 1, checker.calls, "после ошибки проверка не продолжается")
}

func TestNormalizeUnknownWeekday(t *testing.T) {
	n := newNormalizer(models.KindSingle, &fakeChecker{})

	_, err := n.Normalize([]Row{{Weekday: "Воскресенье", Period: 1, Slot: &Payload{}}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizeCheckerFailure(t *testing.T) {
	n := newNormalizer(models.KindSingle, failingChecker{})

	_, err := n.Normalize([]Row{{Weekday: "Понедельник", Period: 1, Slot: &Payload{Room: "101"}}})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestNormalizeRejectsUnknownKind(t *testing.T) {
	n := newNormalizer(models.ScheduleKind("monthly"), &fakeChecker{})

	_, err := n.Normalize(nil)
	assert.ErrorIs(t, err, ErrValidation)
}
