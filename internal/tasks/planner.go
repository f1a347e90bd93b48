package tasks

import (
	"context"
	"log"
	"time"

	"raspisanie/internal/timetable"

	"github.com/robfig/cron/v3"
)

// AuditConflicts ищет в сохраненных расписаниях аудитории и преподавателей,
// занятых одновременно в двух расписаниях, и пишет их в лог.
// Ошибка хранилища возвращается вызывающему коду.
func AuditConflicts(svc *timetable.Service) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	violations, err := svc.Audit(ctx)
	if err != nil {
		return 0, err
	}
	if len(violations) == 0 {
		log.Println("Пересечений в расписаниях не найдено.")
		return 0, nil
	}
	for _, v := range violations {
		log.Printf("Пересечение: %s %d в %s, занятие %d (неделя %d): расписания %d и %d\n",
			v.Resource, v.ResourceID, v.Weekday, v.Period, v.Parity, v.ScheduleID, v.OtherScheduleID)
	}
	return len(violations), nil
}

func runAudit(svc *timetable.Service) {
	if _, err := AuditConflicts(svc); err != nil {
		log.Println("Ошибка проверки пересечений:", err)
	}
}

// InitScheduler инициализирует планировщик cron-задач. Выражение cronExpr задается с секундами.
func InitScheduler(svc *timetable.Service, cronExpr string) *cron.Cron {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(cronExpr, func() { runAudit(svc) })
	if err != nil {
		log.Println("Ошибка запуска cron-задачи AuditConflicts:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
