package timetable

import (
	"context"
	"fmt"
	"strings"

	"raspisanie/internal/models"

	"gorm.io/gorm"
)

// CreateProfile создает профиль вместе с интервалами пар.
func (s *Service) CreateProfile(ctx context.Context, name string, intervals []Interval) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "введите название профиля"}
	}
	intervals = normalizeIntervals(intervals)
	if err := ValidateIntervals(intervals); err != nil {
		return nil, err
	}

	var profile models.Profile
	err := s.inTx(ctx, "создание профиля", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Profile{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ValidationError{Field: "name", Message: fmt.Sprintf("профиль с названием «%s» уже существует", name)}
		}

		profile = models.Profile{Name: name, MaxPairs: len(intervals)}
		if err := tx.Create(&profile).Error; err != nil {
			if isUniqueViolation(err) {
				return &ValidationError{Field: "name", Message: fmt.Sprintf("профиль с названием «%s» уже существует", name)}
			}
			return err
		}
		return SetIntervals(tx, profile.ID, intervals)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfileTimes заменяет интервалы профиля. Записи с исчезнувшими номерами пар
// остаются в базе и отбрасываются при следующем сохранении расписания.
func (s *Service) UpdateProfileTimes(ctx context.Context, profileID uint, intervals []Interval) error {
	intervals = normalizeIntervals(intervals)
	if err := ValidateIntervals(intervals); err != nil {
		return err
	}
	return s.inTx(ctx, "обновление интервалов профиля", func(tx *gorm.DB) error {
		if _, err := findProfile(tx, profileID); err != nil {
			return err
		}
		return SetIntervals(tx, profileID, intervals)
	})
}

func (s *Service) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.DB.WithContext(ctx).Order("id").Find(&profiles).Error; err != nil {
		return nil, wrapPersistence("список профилей", err)
	}
	return profiles, nil
}

func (s *Service) GetProfileTimes(ctx context.Context, profileID uint) ([]Interval, error) {
	db := s.DB.WithContext(ctx)
	if _, err := findProfile(db, profileID); err != nil {
		return nil, wrapPersistence("интервалы профиля", err)
	}
	intervals, err := GetIntervals(db, profileID)
	return intervals, wrapPersistence("интервалы профиля", err)
}

// DeleteProfile удаляет профиль со всеми его расписаниями и интервалами.
func (s *Service) DeleteProfile(ctx context.Context, profileID uint) error {
	return s.inTx(ctx, "удаление профиля", func(tx *gorm.DB) error {
		if _, err := findProfile(tx, profileID); err != nil {
			return err
		}
		scheduleIDs := tx.Model(&models.Schedule{}).Select("id").Where("profile_id = ?", profileID)
		if err := tx.Where("schedule_id IN (?)", scheduleIDs).Delete(&models.ScheduleEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.ProfileTime{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Profile{}, profileID).Error
	})
}

// CreateSchedule создает пустое расписание в профиле. Название уникально в пределах профиля.
func (s *Service) CreateSchedule(ctx context.Context, profileID uint, name string, kind models.ScheduleKind) (*models.Schedule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "введите название расписания"}
	}
	if !kind.Valid() {
		return nil, &ValidationError{Field: "schedule_type", Message: fmt.Sprintf("неизвестный тип расписания «%s»", kind)}
	}

	var sched models.Schedule
	err := s.inTx(ctx, "создание расписания", func(tx *gorm.DB) error {
		if _, err := findProfile(tx, profileID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Schedule{}).Where("profile_id = ? AND name = ?", profileID, name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ValidationError{Field: "name", Message: fmt.Sprintf("расписание с названием «%s» уже существует", name)}
		}
		sched = models.Schedule{ProfileID: profileID, Name: name, ScheduleType: kind}
		if err := tx.Create(&sched).Error; err != nil {
			if isUniqueViolation(err) {
				return &ValidationError{Field: "name", Message: fmt.Sprintf("расписание с названием «%s» уже существует", name)}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

func (s *Service) ListSchedules(ctx context.Context, profileID uint) ([]models.Schedule, error) {
	db := s.DB.WithContext(ctx)
	if _, err := findProfile(db, profileID); err != nil {
		return nil, wrapPersistence("список расписаний", err)
	}
	var schedules []models.Schedule
	if err := db.Where("profile_id = ?", profileID).Order("id").Find(&schedules).Error; err != nil {
		return nil, wrapPersistence("список расписаний", err)
	}
	return schedules, nil
}

func (s *Service) GetSchedule(ctx context.Context, scheduleID uint) (*models.Schedule, error) {
	sched, err := findSchedule(s.DB.WithContext(ctx), scheduleID)
	if err != nil {
		return nil, wrapPersistence("загрузка расписания", err)
	}
	return sched, nil
}

// DeleteSchedule удаляет расписание вместе с записями и возвращает удаленное.
func (s *Service) DeleteSchedule(ctx context.Context, scheduleID uint) (*models.Schedule, error) {
	var sched *models.Schedule
	err := s.inTx(ctx, "удаление расписания", func(tx *gorm.DB) error {
		found, err := findSchedule(tx, scheduleID)
		if err != nil {
			return err
		}
		if err := tx.Where("schedule_id = ?", scheduleID).Delete(&models.ScheduleEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Schedule{}, scheduleID).Error; err != nil {
			return err
		}
		sched = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sched, nil
}

// CreateRoom добавляет аудиторию в справочник.
func (s *Service) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	room := models.Room{Name: strings.TrimSpace(name)}
	if err := s.createNamed(ctx, "аудитория", room.Name, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// CreateTeacher добавляет преподавателя в справочник.
func (s *Service) CreateTeacher(ctx context.Context, name string) (*models.Teacher, error) {
	teacher := models.Teacher{Name: strings.TrimSpace(name)}
	if err := s.createNamed(ctx, "преподаватель", teacher.Name, &teacher); err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (s *Service) createNamed(ctx context.Context, what, name string, value interface{}) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "название не может быть пустым"}
	}
	err := s.DB.WithContext(ctx).Create(value).Error
	if err != nil && isUniqueViolation(err) {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("%s «%s» уже есть в справочнике", what, name)}
	}
	return wrapPersistence("справочник", err)
}

// ListRooms возвращает имена аудиторий по алфавиту.
func (s *Service) ListRooms(ctx context.Context) ([]string, error) {
	return s.listNames(ctx, &models.Room{})
}

// ListTeachers возвращает имена преподавателей по алфавиту.
func (s *Service) ListTeachers(ctx context.Context) ([]string, error) {
	return s.listNames(ctx, &models.Teacher{})
}

func (s *Service) listNames(ctx context.Context, model interface{}) ([]string, error) {
	names := []string{}
	if err := s.DB.WithContext(ctx).Model(model).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, wrapPersistence("справочник", err)
	}
	return names, nil
}

func normalizeIntervals(intervals []Interval) []Interval {
	out := make([]Interval, len(intervals))
	for i, iv := range intervals {
		out[i] = Interval{Number: iv.Number, Start: NormalizeClock(strings.TrimSpace(iv.Start)), End: NormalizeClock(strings.TrimSpace(iv.End))}
	}
	return out
}
