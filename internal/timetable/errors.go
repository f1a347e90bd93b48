package timetable

import (
	"errors"
	"fmt"

	"raspisanie/internal/models"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("resource conflict")
	ErrValidation  = errors.New("validation error")
	ErrPersistence = errors.New("persistence failure")
)

// Resource обозначает вид сущности, о которой сообщает ошибка
type Resource string

const (
	ResourceRoom     Resource = "room"
	ResourceTeacher  Resource = "teacher"
	ResourceProfile  Resource = "profile"
	ResourceSchedule Resource = "schedule"
)

func (r Resource) title() string {
	switch r {
	case ResourceRoom:
		return "Аудитория"
	case ResourceTeacher:
		return "Преподаватель"
	case ResourceProfile:
		return "Профиль"
	case ResourceSchedule:
		return "Расписание"
	}
	return string(r)
}

// Slot указывает ячейку сетки, к которой относится ошибка
type Slot struct {
	Weekday string            `json:"week_day"`
	Period  int               `json:"pair_number"`
	Parity  models.WeekParity `json:"week_type"`
}

func (s Slot) String() string {
	text := fmt.Sprintf("%s, занятие %d", s.Weekday, s.Period)
	if s.Parity != models.ParityNone {
		text += " (" + s.Parity.String() + ")"
	}
	return text
}

// NotFoundError возвращается, если имени нет в справочнике либо нет профиля/расписания
type NotFoundError struct {
	Resource Resource
	Name     string
	Slot     *Slot
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s «%s» не найден(а) в базе", e.Resource.title(), e.Name)
	if e.Slot != nil {
		msg += ": " + e.Slot.String()
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError возвращается, если аудитория или преподаватель уже заняты в другом расписании
type ConflictError struct {
	Resource Resource
	Name     string
	Slot     Slot
	// OtherScheduleID указывает расписание, в котором ресурс уже занят
	OtherScheduleID uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s «%s» занят(а) в %s", e.Resource.title(), e.Name, e.Slot)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// ValidationError сообщает о некорректных входных данных
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PersistenceError сообщает, что хранилище недоступно или транзакция прервана
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func isDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrValidation)
}
