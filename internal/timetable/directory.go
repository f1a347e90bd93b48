package timetable

import (
	"strings"

	"raspisanie/internal/models"

	"gorm.io/gorm"
)

// Directory хранит снимок справочников аудиторий и преподавателей на один проход проверки.
type Directory struct {
	rooms    map[string]uint
	teachers map[string]uint
}

func NewDirectory(rooms []models.Room, teachers []models.Teacher) *Directory {
	d := &Directory{
		rooms:    make(map[string]uint, len(rooms)),
		teachers: make(map[string]uint, len(teachers)),
	}
	for _, r := range rooms {
		d.rooms[r.Name] = r.ID
	}
	for _, t := range teachers {
		d.teachers[t.Name] = t.ID
	}
	return d
}

// LoadDirectory читает справочники через переданный дескриптор (обычно транзакцию сохранения).
func LoadDirectory(db *gorm.DB) (*Directory, error) {
	var rooms []models.Room
	if err := db.Find(&rooms).Error; err != nil {
		return nil, err
	}
	var teachers []models.Teacher
	if err := db.Find(&teachers).Error; err != nil {
		return nil, err
	}
	return NewDirectory(rooms, teachers), nil
}

// ResolveRoom возвращает идентификатор аудитории. Пустое имя означает «без аудитории».
func (d *Directory) ResolveRoom(name string) (*uint, error) {
	return resolve(d.rooms, ResourceRoom, name)
}

// ResolveTeacher возвращает идентификатор преподавателя. Пустое имя означает «без преподавателя».
func (d *Directory) ResolveTeacher(name string) (*uint, error) {
	return resolve(d.teachers, ResourceTeacher, name)
}

func resolve(names map[string]uint, kind Resource, name string) (*uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	id, ok := names[name]
	if !ok {
		return nil, &NotFoundError{Resource: kind, Name: name}
	}
	return &id, nil
}
