package timetable

import (
	"raspisanie/internal/models"

	"gorm.io/gorm"
)

// BusyChecker отвечает, занят ли ресурс в ячейке в каком-либо другом расписании.
type BusyChecker interface {
	IsRoomBusy(roomName, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (bool, error)
	IsTeacherBusy(teacherName, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (bool, error)
}

// Checker выполняет проверку занятости прямыми запросами к таблице schedules.
// Кэша нет: при сохранении Checker строится на транзакции, чтобы проверка и вставка
// были атомарны относительно параллельных сохранений.
type Checker struct {
	db *gorm.DB
}

func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

func (c *Checker) IsRoomBusy(roomName, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (bool, error) {
	_, busy, err := c.RoomOwner(roomName, weekday, period, parity, excludingScheduleID)
	return busy, err
}

func (c *Checker) IsTeacherBusy(teacherName, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (bool, error) {
	_, busy, err := c.TeacherOwner(teacherName, weekday, period, parity, excludingScheduleID)
	return busy, err
}

// RoomOwner возвращает расписание, в котором аудитория уже занята в этой ячейке.
func (c *Checker) RoomOwner(roomName, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (uint, bool, error) {
	return c.owner("JOIN rooms AS d ON s.room_id = d.id", roomName, weekday, period, parity, excludingScheduleID)
}

// TeacherOwner возвращает расписание, в котором преподаватель уже занят в этой ячейке.
func (c *Checker) TeacherOwner(teacherName, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (uint, bool, error) {
	return c.owner("JOIN teachers AS d ON s.teacher_id = d.id", teacherName, weekday, period, parity, excludingScheduleID)
}

// Четность сравнивается строго: 0 совпадает только с 0, 1 с 1, 2 с 2.
func (c *Checker) owner(join, name, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (uint, bool, error) {
	var owners []uint
	err := c.db.Table("schedules AS s").
		Joins(join).
		Where("d.name = ? AND s.week_day = ? AND s.pair_number = ? AND s.week_type = ? AND s.schedule_id <> ?",
			name, weekday, period, parity, excludingScheduleID).
		Limit(1).
		Pluck("s.schedule_id", &owners).Error
	if err != nil {
		return 0, false, err
	}
	if len(owners) == 0 {
		return 0, false, nil
	}
	return owners[0], true, nil
}
