package models

// ScheduleKind задает тип расписания
type ScheduleKind string

const (
	KindSingle   ScheduleKind = "single"   // Обычное расписание, одна неделя
	KindBiWeekly ScheduleKind = "biweekly" // Нечетная и четная недели
)

func (k ScheduleKind) Valid() bool {
	return k == KindSingle || k == KindBiWeekly
}

// Parities возвращает четности недели, из которых состоит расписание данного типа.
func (k ScheduleKind) Parities() []WeekParity {
	if k == KindBiWeekly {
		return []WeekParity{ParityOdd, ParityEven}
	}
	return []WeekParity{ParityNone}
}

// WeekParity задает четность недели записи
type WeekParity int

const (
	ParityNone WeekParity = 0 // Обычное расписание
	ParityOdd  WeekParity = 1 // Нечетная неделя
	ParityEven WeekParity = 2 // Четная неделя
)

func (p WeekParity) String() string {
	switch p {
	case ParityOdd:
		return "нечетная неделя"
	case ParityEven:
		return "четная неделя"
	default:
		return ""
	}
}

// Weekdays перечисляет дни недели, которые видит оператор
var Weekdays = []string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"}

// WeekdayIndex возвращает позицию дня на оси или false, если такого дня нет.
func WeekdayIndex(day string) (int, bool) {
	for i, d := range Weekdays {
		if d == day {
			return i, true
		}
	}
	return -1, false
}

// Schedule представляет именованное расписание внутри профиля
type Schedule struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ProfileID    uint         `gorm:"not null;uniqueIndex:idx_schedules_list_profile_name,priority:1" json:"profile_id"`
	Name         string       `gorm:"not null;uniqueIndex:idx_schedules_list_profile_name,priority:2" json:"name"`
	ScheduleType ScheduleKind `gorm:"type:varchar(16);not null" json:"schedule_type"`
}

func (Schedule) TableName() string { return "schedules_list" }
