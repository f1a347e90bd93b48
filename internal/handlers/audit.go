package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuditConflicts
// @Summary		Проверка пересечений
// @Description	Ищет в сохраненных записях аудитории и преподавателей, занятых в двух расписаниях одновременно
// @Tags			audit
// @Produce		json
// @Success		200	{array}		timetable.Violation
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/audit/conflicts [get]
func AuditConflicts(c *gin.Context) {
	violations, err := Service.Audit(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, violations)
}
