package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"raspisanie/internal/response"
	"raspisanie/internal/timetable"

	"github.com/gin-gonic/gin"
)

// Service задается в main до запуска роутера
var Service *timetable.Service

// respondError переводит ошибку сервиса в ответ API
func respondError(c *gin.Context, err error) {
	var (
		notFound   *timetable.NotFoundError
		conflict   *timetable.ConflictError
		validation *timetable.ValidationError
	)
	switch {
	case errors.As(err, &conflict):
		code := "ROOM_CONFLICT"
		if conflict.Resource == timetable.ResourceTeacher {
			code = "TEACHER_CONFLICT"
		}
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    code,
			Message: conflict.Error(),
			Details: conflict.Slot.String(),
		})
	case errors.As(err, &notFound):
		status, code := http.StatusNotFound, "NOT_FOUND"
		switch notFound.Resource {
		case timetable.ResourceRoom:
			status, code = http.StatusUnprocessableEntity, "ROOM_NOT_FOUND"
		case timetable.ResourceTeacher:
			status, code = http.StatusUnprocessableEntity, "TEACHER_NOT_FOUND"
		case timetable.ResourceProfile:
			code = "PROFILE_NOT_FOUND"
		case timetable.ResourceSchedule:
			code = "SCHEDULE_NOT_FOUND"
		}
		c.JSON(status, response.ErrorResponse{Code: code, Message: notFound.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: validation.Message,
			Details: validation.Field,
		})
	default:
		log.Println("Ошибка базы данных:", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при работе с базой данных",
		})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Ошибка валидации данных",
		Details: err.Error(),
	})
}

// idParam читает положительный числовой параметр пути
func idParam(c *gin.Context, name, code string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    code,
			Message: "Неверный идентификатор",
		})
		return 0, false
	}
	return uint(id), true
}
