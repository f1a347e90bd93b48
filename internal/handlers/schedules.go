package handlers

import (
	"net/http"

	"raspisanie/internal/models"
	"raspisanie/internal/response"
	"raspisanie/internal/ws"

	"github.com/gin-gonic/gin"
)

type CreateScheduleRequest struct {
	Name         string              `json:"name" binding:"required"`
	ScheduleType models.ScheduleKind `json:"schedule_type" binding:"required,oneof=single biweekly"`
}

// ListSchedules возвращает расписания профиля
// @Summary		Расписания профиля
// @Tags			schedules
// @Produce		json
// @Param			id	path		int	true	"ID профиля"
// @Success		200	{array}		models.Schedule
// @Failure		404	{object}	response.ErrorResponse	"Профиль не найден (PROFILE_NOT_FOUND)"
// @Router			/api/profiles/{id}/schedules [get]
func ListSchedules(c *gin.Context) {
	id, ok := idParam(c, "id", "INVALID_PROFILE_ID")
	if !ok {
		return
	}
	schedules, err := Service.ListSchedules(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// CreateSchedule создает пустое расписание в профиле
// @Summary		Создание расписания
// @Description	Тип single — обычное, biweekly — нечетная и четная недели
// @Tags			schedules
// @Accept			json
// @Produce		json
// @Param			id			path		int						true	"ID профиля"
// @Param			schedule	body		CreateScheduleRequest	true	"Название и тип"
// @Security		BearerAuth
// @Success		201	{object}	models.Schedule
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Профиль не найден (PROFILE_NOT_FOUND)"
// @Router			/api/profiles/{id}/schedules [post]
func CreateSchedule(c *gin.Context) {
	id, ok := idParam(c, "id", "INVALID_PROFILE_ID")
	if !ok {
		return
	}
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sched, err := Service.CreateSchedule(c.Request.Context(), id, req.Name, req.ScheduleType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sched)
}

// GetSchedule
// @Summary		Расписание
// @Tags			schedules
// @Produce		json
// @Param			id	path		int	true	"ID расписания"
// @Success		200	{object}	models.Schedule
// @Failure		404	{object}	response.ErrorResponse	"Расписание не найдено (SCHEDULE_NOT_FOUND)"
// @Router			/api/schedules/{id} [get]
func GetSchedule(c *gin.Context) {
	id, ok := idParam(c, "id", "INVALID_SCHEDULE_ID")
	if !ok {
		return
	}
	sched, err := Service.GetSchedule(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// DeleteSchedule удаляет расписание с записями и уведомляет операторов профиля
// @Summary		Удаление расписания
// @Tags			schedules
// @Produce		json
// @Param			id	path	int	true	"ID расписания"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"Расписание не найдено (SCHEDULE_NOT_FOUND)"
// @Router			/api/schedules/{id} [delete]
func DeleteSchedule(c *gin.Context) {
	id, ok := idParam(c, "id", "INVALID_SCHEDULE_ID")
	if !ok {
		return
	}
	sched, err := Service.DeleteSchedule(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	ws.HubInstance.Broadcast(ws.Event{
		EventType:  ws.EventScheduleDeleted,
		ProfileID:  sched.ProfileID,
		ScheduleID: sched.ID,
	})
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Расписание удалено"})
}
