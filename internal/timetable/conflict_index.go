package timetable

import (
	"context"

	"raspisanie/internal/models"
)

// ResourceKey задает ячейку сетки вместе с конкретной аудиторией или преподавателем.
type ResourceKey struct {
	Weekday    string            `json:"week_day"`
	Period     int               `json:"pair_number"`
	Parity     models.WeekParity `json:"week_type"`
	Resource   Resource          `json:"resource"`
	ResourceID uint              `json:"resource_id"`
}

// Violation описывает один ресурс, занятый в одной ячейке двумя разными расписаниями.
type Violation struct {
	ResourceKey
	ScheduleID      uint `json:"schedule_id"`
	OtherScheduleID uint `json:"other_schedule_id"`
}

// ConflictIndex отображает (день, пара, четность, ресурс) на расписание-владельца.
type ConflictIndex struct {
	owners map[ResourceKey]uint
}

func NewConflictIndex() *ConflictIndex {
	return &ConflictIndex{owners: make(map[ResourceKey]uint)}
}

// Add регистрирует аудиторию и преподавателя записи. Если ресурс в этой ячейке уже
// принадлежит другому расписанию, возвращается нарушение; владельцем остается первое.
func (ix *ConflictIndex) Add(e models.ScheduleEntry) []Violation {
	var out []Violation
	if e.RoomID != nil {
		if v, ok := ix.claim(keyOf(e, ResourceRoom, *e.RoomID), e.ScheduleID); ok {
			out = append(out, v)
		}
	}
	if e.TeacherID != nil {
		if v, ok := ix.claim(keyOf(e, ResourceTeacher, *e.TeacherID), e.ScheduleID); ok {
			out = append(out, v)
		}
	}
	return out
}

// Owner возвращает расписание, которому принадлежит ресурс в ячейке.
func (ix *ConflictIndex) Owner(key ResourceKey) (uint, bool) {
	id, ok := ix.owners[key]
	return id, ok
}

func (ix *ConflictIndex) Len() int { return len(ix.owners) }

func (ix *ConflictIndex) claim(key ResourceKey, scheduleID uint) (Violation, bool) {
	owner, taken := ix.owners[key]
	if !taken {
		ix.owners[key] = scheduleID
		return Violation{}, false
	}
	if owner == scheduleID {
		return Violation{}, false
	}
	return Violation{ResourceKey: key, ScheduleID: scheduleID, OtherScheduleID: owner}, true
}

func keyOf(e models.ScheduleEntry, kind Resource, id uint) ResourceKey {
	return ResourceKey{Weekday: e.WeekDay, Period: e.PairNumber, Parity: e.WeekType, Resource: kind, ResourceID: id}
}

// Audit проходит по всем сохраненным записям и возвращает нарушения межрасписанийного
// инварианта. Такие записи могли появиться в обход сохранения (ручные правки в базе).
func (s *Service) Audit(ctx context.Context) ([]Violation, error) {
	var entries []models.ScheduleEntry
	if err := s.DB.WithContext(ctx).Order("id").Find(&entries).Error; err != nil {
		return nil, wrapPersistence("проверка пересечений", err)
	}
	ix := NewConflictIndex()
	violations := []Violation{}
	for _, e := range entries {
		violations = append(violations, ix.Add(e)...)
	}
	return violations, nil
}
