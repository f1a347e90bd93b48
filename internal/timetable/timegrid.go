package timetable

import (
	"fmt"
	"sort"
	"time"

	"raspisanie/internal/models"

	"gorm.io/gorm"
)

const clockLayout = "15:04"

// Interval представляет время одной пары профиля
type Interval struct {
	Number int    `json:"pair_number" binding:"required,min=1"`
	Start  string `json:"start_time" binding:"required,hhmm"`
	End    string `json:"end_time" binding:"required,hhmm"`
}

// Label возвращает подпись вида "09:00 - 10:30"
func (i Interval) Label() string {
	return i.Start + " - " + i.End
}

// Grid хранит интервалы профиля по номеру пары. Загружается один раз на сессию сохранения.
type Grid map[int]Interval

func NewGrid(intervals []Interval) Grid {
	g := make(Grid, len(intervals))
	for _, iv := range intervals {
		g[iv.Number] = iv
	}
	return g
}

func (g Grid) Lookup(period int) (Interval, bool) {
	iv, ok := g[period]
	return iv, ok
}

// GetIntervals возвращает интервалы профиля по возрастанию номера пары.
func GetIntervals(db *gorm.DB, profileID uint) ([]Interval, error) {
	var rows []models.ProfileTime
	if err := db.Where("profile_id = ?", profileID).Order("pair_number").Find(&rows).Error; err != nil {
		return nil, err
	}
	intervals := make([]Interval, 0, len(rows))
	for _, r := range rows {
		intervals = append(intervals, Interval{Number: r.PairNumber, Start: r.StartTime, End: r.EndTime})
	}
	return intervals, nil
}

// SetIntervals полностью заменяет интервалы профиля в одной транзакции.
// Проверку порядка выполняет вызывающий код через ValidateIntervals.
func SetIntervals(db *gorm.DB, profileID uint, intervals []Interval) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.ProfileTime{}).Error; err != nil {
			return err
		}
		if len(intervals) > 0 {
			rows := make([]models.ProfileTime, 0, len(intervals))
			for _, iv := range intervals {
				rows = append(rows, models.ProfileTime{
					ProfileID:  profileID,
					PairNumber: iv.Number,
					StartTime:  iv.Start,
					EndTime:    iv.End,
				})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Profile{}).Where("id = ?", profileID).Update("max_pairs", len(intervals)).Error
	})
}

// ValidateIntervals проверяет, что пары пронумерованы подряд с 1, не пересекаются
// и идут по порядку: начало раньше конца, конец пары не позже начала следующей.
func ValidateIntervals(intervals []Interval) error {
	if len(intervals) == 0 {
		return &ValidationError{Field: "intervals", Message: "нужно задать хотя бы одну пару"}
	}

	type parsed struct {
		number     int
		start, end time.Time
	}
	list := make([]parsed, 0, len(intervals))
	seen := make(map[int]bool, len(intervals))
	for _, iv := range intervals {
		if iv.Number < 1 {
			return &ValidationError{Field: "pair_number", Message: fmt.Sprintf("номер пары %d должен быть положительным", iv.Number)}
		}
		if seen[iv.Number] {
			return &ValidationError{Field: "pair_number", Message: fmt.Sprintf("пара %d указана дважды", iv.Number)}
		}
		seen[iv.Number] = true

		start, err := time.Parse(clockLayout, iv.Start)
		if err != nil {
			return &ValidationError{Field: "start_time", Message: fmt.Sprintf("у занятия %d неверное время начала «%s»", iv.Number, iv.Start)}
		}
		end, err := time.Parse(clockLayout, iv.End)
		if err != nil {
			return &ValidationError{Field: "end_time", Message: fmt.Sprintf("у занятия %d неверное время окончания «%s»", iv.Number, iv.End)}
		}
		if !start.Before(end) {
			return &ValidationError{Field: "start_time", Message: fmt.Sprintf("у занятия %d время начала не может быть позже или равно времени окончания", iv.Number)}
		}
		list = append(list, parsed{number: iv.Number, start: start, end: end})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].number < list[j].number })
	for i, cur := range list {
		if cur.number != i+1 {
			return &ValidationError{Field: "pair_number", Message: fmt.Sprintf("пропущено занятие %d: номера должны идти подряд с 1", i+1)}
		}
		if i == 0 {
			continue
		}
		if prev := list[i-1]; cur.start.Before(prev.end) {
			return &ValidationError{Field: "start_time", Message: fmt.Sprintf("у занятия %d начало раньше окончания предыдущего занятия", cur.number)}
		}
	}
	return nil
}

// NormalizeClock приводит "9:00" к "09:00". Возвращает исходную строку, если это не время.
func NormalizeClock(value string) string {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return value
	}
	return t.Format(clockLayout)
}
