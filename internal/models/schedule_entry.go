package models

// ScheduleEntry представляет занятие в ячейке (день, пара, четность) расписания.
// Индексы idx_entry_room_slot и idx_entry_teacher_slot обслуживают проверку занятости.
type ScheduleEntry struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	ScheduleID   uint       `gorm:"not null;uniqueIndex:idx_entry_key,priority:1" json:"schedule_id"`
	WeekDay      string     `gorm:"not null;uniqueIndex:idx_entry_key,priority:2;index:idx_entry_room_slot,priority:1;index:idx_entry_teacher_slot,priority:1" json:"week_day"`
	PairNumber   int        `gorm:"not null;uniqueIndex:idx_entry_key,priority:3;index:idx_entry_room_slot,priority:2;index:idx_entry_teacher_slot,priority:2" json:"pair_number"`
	RoomID       *uint      `gorm:"index:idx_entry_room_slot,priority:4" json:"room_id"`
	TeacherID    *uint      `gorm:"index:idx_entry_teacher_slot,priority:4" json:"teacher_id"`
	LessonType   string     `gorm:"not null" json:"lesson_type"`
	Discipline   string     `gorm:"not null" json:"discipline"`
	WeekType     WeekParity `gorm:"not null;uniqueIndex:idx_entry_key,priority:4;index:idx_entry_room_slot,priority:3;index:idx_entry_teacher_slot,priority:3" json:"week_type"`
	TimeInterval string     `gorm:"type:varchar(16);not null" json:"time_interval"` // "HH:MM - HH:MM"
}

func (ScheduleEntry) TableName() string { return "schedules" }
