package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"raspisanie/internal/export"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportSchedule отдает расписание файлом xlsx
// @Summary		Выгрузка расписания
// @Description	Время занятий берется из текущих интервалов профиля
// @Tags			schedules
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param			id	path	int	true	"ID расписания"
// @Success		200	{file}	file
// @Failure		404	{object}	response.ErrorResponse	"Расписание не найдено (SCHEDULE_NOT_FOUND)"
// @Router			/api/schedules/{id}/export [get]
func ExportSchedule(c *gin.Context) {
	id, ok := idParam(c, "id", "INVALID_SCHEDULE_ID")
	if !ok {
		return
	}
	sched, table, err := Service.ExportSchedule(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := sched.Name + ".xlsx"
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"schedule_%d.xlsx\"; filename*=UTF-8''%s", sched.ID, url.PathEscape(filename)))
	c.Status(http.StatusOK)
	if err := export.WriteXLSX(c.Writer, table); err != nil {
		log.Println("Ошибка записи xlsx:", err)
	}
}
