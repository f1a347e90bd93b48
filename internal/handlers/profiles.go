package handlers

import (
	"net/http"

	"raspisanie/internal/response"
	"raspisanie/internal/timetable"

	"github.com/gin-gonic/gin"
)

type CreateProfileRequest struct {
	Name      string               `json:"name" binding:"required"`
	Intervals []timetable.Interval `json:"intervals" binding:"required,min=1,dive"`
}

type UpdateTimesRequest struct {
	Intervals []timetable.Interval `json:"intervals" binding:"required,min=1,dive"`
}

// ListProfiles возвращает все профили
// @Summary		Список профилей
// @Tags			profiles
// @Produce		json
// @Success		200	{array}		models.Profile
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/profiles [get]
func ListProfiles(c *gin.Context) {
	profiles, err := Service.ListProfiles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// CreateProfile создает профиль с интервалами пар
// @Summary		Создание профиля
// @Description	Название уникально, интервалы идут по порядку и не пересекаются
// @Tags			profiles
// @Accept			json
// @Produce		json
// @Param			profile	body		CreateProfileRequest	true	"Профиль и интервалы"
// @Security		BearerAuth
// @Success		201	{object}	models.Profile
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/profiles [post]
func CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	profile, err := Service.CreateProfile(c.Request.Context(), req.Name, req.Intervals)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetProfileTimes возвращает интервалы пар профиля
// @Summary		Интервалы профиля
// @Tags			profiles
// @Produce		json
// @Param			id	path		int	true	"ID профиля"
// @Success		200	{array}		timetable.Interval
// @Failure		404	{object}	response.ErrorResponse	"Профиль не найден (PROFILE_NOT_FOUND)"
// @Router			/api/profiles/{id}/times [get]
func GetProfileTimes(c *gin.Context) {
	id, ok := idParam(c, "id", "INVALID_PROFILE_ID")
	if !ok {
		return
	}
	intervals, err := Service.GetProfileTimes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intervals)
}

// UpdateProfileTimes заменяет интервалы профиля
// @Summary		Изменение интервалов профиля
// @Description	Записи на пары, которых больше нет в профиле, отбрасываются при следующем сохранении расписания
// @Tags			profiles
// @Accept			json
// @Produce		json
// @Param			id		path		int					true	"ID профиля"
// @Param			times	body		UpdateTimesRequest	true	"Интервалы"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Профиль не найден (PROFILE_NOT_FOUND)"
// @Router			/api/profiles/{id}/times [put]
func UpdateProfileTimes(c *gin.Context) {
	id, ok := idParam(c, "id", "INVALID_PROFILE_ID")
	if !ok {
		return
	}
	var req UpdateTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := Service.UpdateProfileTimes(c.Request.Context(), id, req.Intervals); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Интервалы профиля сохранены"})
}

// DeleteProfile удаляет профиль вместе с расписаниями
// @Summary		Удаление профиля
// @Tags			profiles
// @Produce		json
// @Param			id	path	int	true	"ID профиля"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"Профиль не найден (PROFILE_NOT_FOUND)"
// @Router			/api/profiles/{id} [delete]
func DeleteProfile(c *gin.Context) {
	id, ok := idParam(c, "id", "INVALID_PROFILE_ID")
	if !ok {
		return
	}
	if err := Service.DeleteProfile(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Профиль удален"})
}
