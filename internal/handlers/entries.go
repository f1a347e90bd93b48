package handlers

import (
	"net/http"

	"raspisanie/internal/response"
	"raspisanie/internal/timetable"
	"raspisanie/internal/ws"

	"github.com/gin-gonic/gin"
)

type SaveEntriesRequest struct {
	Rows []timetable.Row `json:"rows" binding:"dive"`
}

// GetEntries возвращает записи расписания для повторного редактирования
// @Summary		Записи расписания
// @Tags			schedules
// @Produce		json
// @Param			id	path		int	true	"ID расписания"
// @Success		200	{array}		timetable.EntryView
// @Failure		404	{object}	response.ErrorResponse	"Расписание не найдено (SCHEDULE_NOT_FOUND)"
// @Router			/api/schedules/{id}/entries [get]
func GetEntries(c *gin.Context) {
	id, ok := idParam(c, "id", "INVALID_SCHEDULE_ID")
	if !ok {
		return
	}
	entries, err := Service.LoadEntries(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entries == nil {
		entries = []timetable.EntryView{}
	}
	c.JSON(http.StatusOK, entries)
}

// SaveEntries проверяет и сохраняет сетку расписания целиком
// @Summary		Сохранение расписания
// @Description	Заменяет все записи расписания. При ненайденной аудитории/преподавателе или занятости
// @Description	в другом расписании ничего не сохраняется. Повторные ячейки (день, пара, неделя)
// @Description	пропускаются, пары без интервала в профиле отбрасываются.
// @Tags			schedules
// @Accept			json
// @Produce		json
// @Param			id		path		int					true	"ID расписания"
// @Param			rows	body		SaveEntriesRequest	true	"Строки редактора"
// @Security		BearerAuth
// @Success		200	{object}	response.SaveResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Расписание не найдено (SCHEDULE_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Ресурс занят (ROOM_CONFLICT, TEACHER_CONFLICT)"
// @Failure		422	{object}	response.ErrorResponse	"Нет в справочнике (ROOM_NOT_FOUND, TEACHER_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/schedules/{id}/entries [put]
func SaveEntries(c *gin.Context) {
	id, ok := idParam(c, "id", "INVALID_SCHEDULE_ID")
	if !ok {
		return
	}
	var req SaveEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := Service.SaveEntries(c.Request.Context(), id, req.Rows)
	if err != nil {
		respondError(c, err)
		return
	}

	out := response.SaveResponse{Saved: len(res.Entries), Skipped: res.Skipped, Dropped: res.Dropped}
	ws.HubInstance.Broadcast(ws.Event{
		EventType:  ws.EventScheduleSaved,
		ProfileID:  res.Schedule.ProfileID,
		ScheduleID: res.Schedule.ID,
		Data:       out,
	})
	c.JSON(http.StatusOK, out)
}
