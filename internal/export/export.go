// Package export строит табличное представление расписания и пишет его в xlsx.
package export

import (
	"io"
	"sort"

	"raspisanie/internal/models"

	"github.com/xuri/excelize/v2"
)

// Record представляет запись расписания с подписью интервала из текущей сетки профиля
type Record struct {
	Weekday    string
	Period     int
	Parity     models.WeekParity
	Room       string
	LessonType string
	Teacher    string
	Discipline string
	TimeRange  string
}

// Table содержит заголовок и строки листа
type Table struct {
	Header []string
	Rows   [][]interface{}
}

var singleHeader = []string{"День недели", "№ занятия", "Время", "Аудитория", "Вид занятия", "Преподаватель", "Дисциплина"}

var biWeeklyHeader = []string{
	"День недели", "№ занятия", "Время",
	"Аудитория (Нечет)", "Вид занятия (Нечет)", "Преподаватель (Нечет)", "Дисциплина (Нечет)",
	"Аудитория (Чет)", "Вид занятия (Чет)", "Преподаватель (Чет)", "Дисциплина (Чет)",
}

// BuildTable раскладывает записи по строкам: для обычного расписания строка на
// (день, пара), для двухнедельного — нечетный и четный блоки рядом.
func BuildTable(kind models.ScheduleKind, records []Record) Table {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ai, _ := models.WeekdayIndex(a.Weekday)
		bi, _ := models.WeekdayIndex(b.Weekday)
		if ai != bi {
			return ai < bi
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.Parity < b.Parity
	})

	if kind == models.KindBiWeekly {
		return buildBiWeekly(sorted)
	}

	t := Table{Header: singleHeader, Rows: [][]interface{}{}}
	for _, r := range sorted {
		if r.Parity != models.ParityNone {
			continue
		}
		t.Rows = append(t.Rows, []interface{}{r.Weekday, r.Period, r.TimeRange, r.Room, r.LessonType, r.Teacher, r.Discipline})
	}
	return t
}

type groupKey struct {
	weekday   string
	period    int
	timeRange string
}

func buildBiWeekly(sorted []Record) Table {
	var order []groupKey
	blocks := make(map[groupKey]*[2][]string)
	for _, r := range sorted {
		if r.Parity != models.ParityOdd && r.Parity != models.ParityEven {
			continue
		}
		key := groupKey{r.Weekday, r.Period, r.TimeRange}
		b, ok := blocks[key]
		if !ok {
			b = &[2][]string{}
			blocks[key] = b
			order = append(order, key)
		}
		b[r.Parity-1] = []string{r.Room, r.LessonType, r.Teacher, r.Discipline}
	}

	t := Table{Header: biWeeklyHeader, Rows: make([][]interface{}, 0, len(order))}
	for _, key := range order {
		row := []interface{}{key.weekday, key.period, key.timeRange}
		for _, block := range blocks[key] {
			if block == nil {
				block = []string{"", "", "", ""}
			}
			for _, v := range block {
				row = append(row, v)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// WriteXLSX пишет таблицу на первый лист новой книги.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}
