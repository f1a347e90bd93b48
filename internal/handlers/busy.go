package handlers

import (
	"context"
	"net/http"

	"raspisanie/internal/models"
	"raspisanie/internal/response"

	"github.com/gin-gonic/gin"
)

// BusyQuery описывает ячейку, для которой проверяется занятость
type BusyQuery struct {
	Name    string `form:"name" binding:"required"`
	Day     string `form:"day" binding:"required"`
	Pair    int    `form:"pair" binding:"required,min=1"`
	Week    int    `form:"week" binding:"min=0,max=2"`
	Exclude uint   `form:"exclude"`
}

type busyFunc func(ctx context.Context, name, weekday string, period int, parity models.WeekParity, excludingScheduleID uint) (bool, error)

func checkBusy(c *gin.Context, check busyFunc) {
	var q BusyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	busy, err := check(c.Request.Context(), q.Name, q.Day, q.Pair, models.WeekParity(q.Week), q.Exclude)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.BusyResponse{Busy: busy})
}

// RoomBusy
// @Summary		Занятость аудитории
// @Description	Занята ли аудитория в ячейке в любом расписании, кроме exclude. week: 0 — обычное, 1 — нечетная, 2 — четная
// @Tags			busy
// @Produce		json
// @Param			name	query		string	true	"Аудитория"
// @Param			day		query		string	true	"День недели"
// @Param			pair	query		int		true	"Номер пары"
// @Param			week	query		int		false	"Четность недели"
// @Param			exclude	query		int		false	"ID расписания, которое не учитывается"
// @Success		200		{object}	response.BusyResponse
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Router			/api/busy/rooms [get]
func RoomBusy(c *gin.Context) {
	checkBusy(c, Service.IsRoomBusy)
}

// TeacherBusy
// @Summary		Занятость преподавателя
// @Tags			busy
// @Produce		json
// @Param			name	query		string	true	"Преподаватель"
// @Param			day		query		string	true	"День недели"
// @Param			pair	query		int		true	"Номер пары"
// @Param			week	query		int		false	"Четность недели"
// @Param			exclude	query		int		false	"ID расписания, которое не учитывается"
// @Success		200		{object}	response.BusyResponse
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Router			/api/busy/teachers [get]
func TeacherBusy(c *gin.Context) {
	checkBusy(c, Service.IsTeacherBusy)
}
