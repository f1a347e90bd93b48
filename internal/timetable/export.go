package timetable

import (
	"context"

	"raspisanie/internal/export"
	"raspisanie/internal/models"
)

type exportRow struct {
	WeekDay    string
	PairNumber int
	WeekType   models.WeekParity
	Room       string
	LessonType string
	Teacher    string
	Discipline string
	StartTime  string
	EndTime    string
}

// ExportSchedule собирает таблицу для выгрузки. Время берется из текущих интервалов
// профиля, записи без интервала в выгрузку не попадают.
func (s *Service) ExportSchedule(ctx context.Context, scheduleID uint) (*models.Schedule, export.Table, error) {
	db := s.DB.WithContext(ctx)
	sched, err := findSchedule(db, scheduleID)
	if err != nil {
		return nil, export.Table{}, wrapPersistence("выгрузка расписания", err)
	}

	var rows []exportRow
	err = db.Table("schedules AS s").
		Select(`s.week_day, s.pair_number, s.week_type,
			COALESCE(r.name, '') AS room,
			COALESCE(s.lesson_type, '') AS lesson_type,
			COALESCE(t.name, '') AS teacher,
			COALESCE(s.discipline, '') AS discipline,
			pt.start_time, pt.end_time`).
		Joins("LEFT JOIN rooms AS r ON r.id = s.room_id").
		Joins("LEFT JOIN teachers AS t ON t.id = s.teacher_id").
		Joins("JOIN profile_times AS pt ON pt.profile_id = ? AND pt.pair_number = s.pair_number", sched.ProfileID).
		Where("s.schedule_id = ?", scheduleID).
		Scan(&rows).Error
	if err != nil {
		return nil, export.Table{}, wrapPersistence("выгрузка расписания", err)
	}

	records := make([]export.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, export.Record{
			Weekday:    r.WeekDay,
			Period:     r.PairNumber,
			Parity:     r.WeekType,
			Room:       r.Room,
			LessonType: r.LessonType,
			Teacher:    r.Teacher,
			Discipline: r.Discipline,
			TimeRange:  Interval{Start: r.StartTime, End: r.EndTime}.Label(),
		})
	}
	return sched, export.BuildTable(sched.ScheduleType, records), nil
}
