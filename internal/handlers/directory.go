package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"raspisanie/internal/storage"

	"github.com/gin-gonic/gin"
)

const (
	roomsCacheKey    = "rooms_all"
	teachersCacheKey = "teachers_all"
	directoryTTL     = 10 * time.Minute
)

type NameRequest struct {
	Name string `json:"name" binding:"required"`
}

// cachedNames отдает список из Redis, при промахе читает его через load и кладет в кэш.
// Без Redis список всегда читается из базы.
func cachedNames(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	redisClient := storage.RedisClient
	if redisClient != nil {
		cached, err := redisClient.Get(ctx, key).Result()
		if err == nil && cached != "" {
			var names []string
			if err := json.Unmarshal([]byte(cached), &names); err == nil {
				return names, nil
			}
		}
	}

	names, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if redisClient != nil {
		if data, err := json.Marshal(names); err == nil {
			if err := redisClient.Set(ctx, key, data, directoryTTL).Err(); err != nil {
				log.Println("Ошибка записи справочника в Redis:", err)
			}
		}
	}
	return names, nil
}

func invalidate(ctx context.Context, key string) {
	if storage.RedisClient == nil {
		return
	}
	if err := storage.RedisClient.Del(ctx, key).Err(); err != nil {
		log.Println("Ошибка сброса кэша справочника:", err)
	}
}

// ListRooms возвращает имена аудиторий для автодополнения
// @Summary		Список аудиторий
// @Description	Имена аудиторий по алфавиту, кэшируется в Redis
// @Tags			directory
// @Produce		json
// @Success		200	{array}		string
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/rooms [get]
func ListRooms(c *gin.Context) {
	names, err := cachedNames(c.Request.Context(), roomsCacheKey, Service.ListRooms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// ListTeachers возвращает имена преподавателей для автодополнения
// @Summary		Список преподавателей
// @Description	Имена преподавателей по алфавиту, кэшируется в Redis
// @Tags			directory
// @Produce		json
// @Success		200	{array}		string
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/teachers [get]
func ListTeachers(c *gin.Context) {
	names, err := cachedNames(c.Request.Context(), teachersCacheKey, Service.ListTeachers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// CreateRoom
// @Summary		Добавление аудитории
// @Tags			directory
// @Accept			json
// @Produce		json
// @Param			room	body	NameRequest	true	"Название аудитории"
// @Security		BearerAuth
// @Success		201	{object}	models.Room
// @Failure		400	{object}	response.ErrorResponse	"Пустое имя или уже есть (VALIDATION_ERROR)"
// @Router			/api/rooms [post]
func CreateRoom(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	room, err := Service.CreateRoom(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	invalidate(c.Request.Context(), roomsCacheKey)
	c.JSON(http.StatusCreated, room)
}

// CreateTeacher
// @Summary		Добавление преподавателя
// @Tags			directory
// @Accept			json
// @Produce		json
// @Param			teacher	body	NameRequest	true	"Имя преподавателя"
// @Security		BearerAuth
// @Success		201	{object}	models.Teacher
// @Failure		400	{object}	response.ErrorResponse	"Пустое имя или уже есть (VALIDATION_ERROR)"
// @Router			/api/teachers [post]
func CreateTeacher(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	teacher, err := Service.CreateTeacher(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	invalidate(c.Request.Context(), teachersCacheKey)
	c.JSON(http.StatusCreated, teacher)
}
