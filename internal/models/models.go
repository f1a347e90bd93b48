package models

import (
	"gorm.io/gorm"
)

// Operator представляет администратора, который редактирует профили и расписания
type Operator struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Surname      string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

func (Operator) TableName() string { return "operators" }

// Room представляет аудиторию из общего справочника учебного заведения
type Room struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (Room) TableName() string { return "rooms" }

// Teacher представляет преподавателя из общего справочника
type Teacher struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (Teacher) TableName() string { return "teachers" }

// All возвращает все модели для миграции
func All() []interface{} {
	return []interface{}{
		&Operator{},
		&Room{},
		&Teacher{},
		&Profile{},
		&ProfileTime{},
		&Schedule{},
		&ScheduleEntry{},
	}
}
