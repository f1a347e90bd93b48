package timetable

import (
	"context"
	"errors"
	"strconv"

	"raspisanie/internal/models"

	"gorm.io/gorm"
)

// SaveResult содержит итог сохранения расписания
type SaveResult struct {
	Schedule models.Schedule        `json:"schedule"`
	Entries  []models.ScheduleEntry `json:"entries"`
	Skipped  int                    `json:"skipped"`
	Dropped  int                    `json:"dropped"`
}

// EntryView представляет запись расписания с именами аудитории и преподавателя для повторного редактирования
type EntryView struct {
	WeekDay      string            `json:"week_day"`
	PairNumber   int               `json:"pair_number"`
	Room         string            `json:"room"`
	Teacher      string            `json:"teacher"`
	LessonType   string            `json:"lesson_type"`
	Discipline   string            `json:"discipline"`
	WeekType     models.WeekParity `json:"week_type"`
	TimeInterval string            `json:"time_interval"`
}

// SaveEntries проверяет строки редактора и заменяет все записи расписания.
// Снимок справочников, проверки занятости, удаление и вставка выполняются в одной
// транзакции: при любой ошибке прежние записи остаются нетронутыми.
func (s *Service) SaveEntries(ctx context.Context, scheduleID uint, rows []Row) (*SaveResult, error) {
	var result *SaveResult
	err := s.inTx(ctx, "сохранение расписания", func(tx *gorm.DB) error {
		result = nil

		sched, err := findSchedule(tx, scheduleID)
		if err != nil {
			return err
		}
		dir, err := LoadDirectory(tx)
		if err != nil {
			return err
		}
		intervals, err := GetIntervals(tx, sched.ProfileID)
		if err != nil {
			return err
		}

		n := &Normalizer{
			ScheduleID: sched.ID,
			Kind:       sched.ScheduleType,
			Directory:  dir,
			Grid:       NewGrid(intervals),
			Checker:    NewChecker(tx),
		}
		res, err := n.Normalize(rows)
		if err != nil {
			return err
		}
		if err := ReplaceEntries(tx, sched.ID, res.Entries); err != nil {
			return err
		}

		result = &SaveResult{Schedule: *sched, Entries: res.Entries, Skipped: res.Skipped, Dropped: res.Dropped}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReplaceEntries удаляет все записи расписания и вставляет переданные.
// Вызывается только внутри транзакции сохранения.
func ReplaceEntries(tx *gorm.DB, scheduleID uint, entries []models.ScheduleEntry) error {
	if err := tx.Where("schedule_id = ?", scheduleID).Delete(&models.ScheduleEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		entries[i].ScheduleID = scheduleID
	}
	return tx.CreateInBatches(&entries, 200).Error
}

// LoadEntries возвращает записи расписания в порядке сохранения.
func (s *Service) LoadEntries(ctx context.Context, scheduleID uint) ([]EntryView, error) {
	db := s.DB.WithContext(ctx)
	if _, err := findSchedule(db, scheduleID); err != nil {
		return nil, wrapPersistence("загрузка расписания", err)
	}

	var views []EntryView
	err := db.Table("schedules AS s").
		Select(`s.week_day, s.pair_number,
			COALESCE(r.name, '') AS room,
			COALESCE(t.name, '') AS teacher,
			s.lesson_type, s.discipline, s.week_type, s.time_interval`).
		Joins("LEFT JOIN rooms AS r ON r.id = s.room_id").
		Joins("LEFT JOIN teachers AS t ON t.id = s.teacher_id").
		Where("s.schedule_id = ?", scheduleID).
		Order("s.id").
		Scan(&views).Error
	if err != nil {
		return nil, wrapPersistence("загрузка расписания", err)
	}
	return views, nil
}

// IsRoomBusy проверяет занятость аудитории вне сохранения (подсказка в редакторе).
func (s *Service) IsRoomBusy(ctx context.Context, roomName, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (bool, error) {
	busy, err := NewChecker(s.DB.WithContext(ctx)).IsRoomBusy(roomName, weekday, period, parity, excludingScheduleID)
	return busy, wrapPersistence("проверка занятости аудитории", err)
}

// IsTeacherBusy проверяет занятость преподавателя вне сохранения.
func (s *Service) IsTeacherBusy(ctx context.Context, teacherName, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (bool, error) {
	busy, err := NewChecker(s.DB.WithContext(ctx)).IsTeacherBusy(teacherName, weekday, period, parity, excludingScheduleID)
	return busy, wrapPersistence("проверка занятости преподавателя", err)
}

func findSchedule(db *gorm.DB, scheduleID uint) (*models.Schedule, error) {
	var sched models.Schedule
	if err := db.First(&sched, scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: ResourceSchedule, Name: strconv.FormatUint(uint64(scheduleID), 10)}
		}
		return nil, err
	}
	return &sched, nil
}

func findProfile(db *gorm.DB, profileID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := db.First(&profile, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: ResourceProfile, Name: strconv.FormatUint(uint64(profileID), 10)}
		}
		return nil, err
	}
	return &profile, nil
}
