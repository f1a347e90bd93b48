package timetable

import (
	"errors"
	"fmt"
	"strings"

	"raspisanie/internal/models"
)

// Payload представляет содержимое одной ячейки редактора
type Payload struct {
	Room       string `json:"room"`
	Teacher    string `json:"teacher"`
	LessonType string `json:"lesson_type"`
	Discipline string `json:"discipline"`
}

// Row представляет строку редактора: день и номер пары. Для обычного расписания заполняется Slot,
// для двухнедельного — Odd и Even. Пустой указатель означает, что ячейка не передана.
type Row struct {
	Weekday string   `json:"week_day" binding:"required"`
	Period  int      `json:"pair_number" binding:"required"`
	Slot    *Payload `json:"slot,omitempty"`
	Odd     *Payload `json:"odd,omitempty"`
	Even    *Payload `json:"even,omitempty"`
}

// Resolver сопоставляет имена аудиторий и преподавателей с их идентификаторами
type Resolver interface {
	ResolveRoom(name string) (*uint, error)
	ResolveTeacher(name string) (*uint, error)
}

type ownerFinder interface {
	RoomOwner(roomName, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (uint, bool, error)
	TeacherOwner(teacherName, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (uint, bool, error)
}

// Normalizer превращает строки редактора в записи schedules для одного расписания.
type Normalizer struct {
	ScheduleID uint
	Kind       models.ScheduleKind
	Directory  Resolver
	Grid       Grid
	Checker    BusyChecker
}

// Result содержит нормализованные записи в порядке первой подачи
type Result struct {
	Entries []models.ScheduleEntry
	// Skipped считает повторно поданные ячейки (оставлена первая)
	Skipped int
	// Dropped считает ячейки без интервала в профиле
	Dropped int
}

type slotKey struct {
	weekday string
	period  int
	parity  models.WeekParity
}

type payloadAt struct {
	parity  models.WeekParity
	payload *Payload
}

func (n *Normalizer) payloads(row Row) []payloadAt {
	if n.Kind == models.KindBiWeekly {
		return []payloadAt{{models.ParityOdd, row.Odd}, {models.ParityEven, row.Even}}
	}
	return []payloadAt{{models.ParityNone, row.Slot}}
}

// Normalize проверяет все ячейки и возвращает записи для замены. Первая же ошибка
// прерывает обработку целиком.
func (n *Normalizer) Normalize(rows []Row) (*Result, error) {
	if !n.Kind.Valid() {
		return nil, &ValidationError{Field: "schedule_type", Message: fmt.Sprintf("неизвестный тип расписания «%s»", n.Kind)}
	}

	seen := make(map[slotKey]struct{})
	res := &Result{Entries: make([]models.ScheduleEntry, 0, len(rows))}

	for _, row := range rows {
		weekday := strings.TrimSpace(row.Weekday)
		for _, p := range n.payloads(row) {
			if p.payload == nil {
				continue
			}
			key := slotKey{weekday: weekday, period: row.Period, parity: p.parity}
			if _, dup := seen[key]; dup {
				res.Skipped++
				continue
			}
			seen[key] = struct{}{}

			slot := Slot{Weekday: weekday, Period: row.Period, Parity: p.parity}
			entry, err := n.validate(slot, p.payload)
			if err != nil {
				return nil, err
			}

			iv, ok := n.Grid.Lookup(row.Period)
			if !ok {
				res.Dropped++
				continue
			}
			entry.TimeInterval = iv.Label()
			res.Entries = append(res.Entries, entry)
		}
	}
	return res, nil
}

func (n *Normalizer) validate(slot Slot, p *Payload) (models.ScheduleEntry, error) {
	if _, ok := models.WeekdayIndex(slot.Weekday); !ok {
		return models.ScheduleEntry{}, &ValidationError{Field: "week_day", Message: fmt.Sprintf("неизвестный день недели «%s»", slot.Weekday)}
	}

	room := strings.TrimSpace(p.Room)
	teacher := strings.TrimSpace(p.Teacher)

	roomID, err := n.Directory.ResolveRoom(room)
	if err != nil {
		return models.ScheduleEntry{}, withSlot(err, slot)
	}
	teacherID, err := n.Directory.ResolveTeacher(teacher)
	if err != nil {
		return models.ScheduleEntry{}, withSlot(err, slot)
	}

	if roomID != nil {
		if err := n.checkBusy(ResourceRoom, room, slot); err != nil {
			return models.ScheduleEntry{}, err
		}
	}
	if teacherID != nil {
		if err := n.checkBusy(ResourceTeacher, teacher, slot); err != nil {
			return models.ScheduleEntry{}, err
		}
	}

	return models.ScheduleEntry{
		ScheduleID: n.ScheduleID,
		WeekDay:    slot.Weekday,
		PairNumber: slot.Period,
		RoomID:     roomID,
		TeacherID:  teacherID,
		LessonType: strings.TrimSpace(p.LessonType),
		Discipline: strings.TrimSpace(p.Discipline),
		WeekType:   slot.Parity,
	}, nil
}

func (n *Normalizer) checkBusy(kind Resource, name string, slot Slot) error {
	var (
		owner uint
		busy  bool
		err   error
	)
	finder, canFind := n.Checker.(ownerFinder)
	switch {
	case kind == ResourceRoom && canFind:
		owner, busy, err = finder.RoomOwner(name, slot.Weekday, slot.Period, slot.Parity, n.ScheduleID)
	case kind == ResourceRoom:
		busy, err = n.Checker.IsRoomBusy(name, slot.Weekday, slot.Period, slot.Parity, n.ScheduleID)
	case canFind:
		owner, busy, err = finder.TeacherOwner(name, slot.Weekday, slot.Period, slot.Parity, n.ScheduleID)
	default:
		busy, err = n.Checker.IsTeacherBusy(name, slot.Weekday, slot.Period, slot.Parity, n.ScheduleID)
	}
	if err != nil {
		return &PersistenceError{Op: "проверка занятости", Err: err}
	}
	if busy {
		return &ConflictError{Resource: kind, Name: name, Slot: slot, OtherScheduleID: owner}
	}
	return nil
}

func withSlot(err error, slot Slot) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		s := slot
		nf.Slot = &s
	}
	return err
}
