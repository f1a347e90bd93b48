package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"raspisanie/internal/models"
	"raspisanie/internal/response"
	"raspisanie/internal/storage"
	"raspisanie/internal/timetable"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	slot := timetable.Slot{Weekday: "Вторник", Period: 3, Parity: models.ParityOdd}

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"room conflict", &timetable.ConflictError{Resource: timetable.ResourceRoom, Name: "101", Slot: slot}, http.StatusConflict, "ROOM_CONFLICT"},
		{"teacher conflict", &timetable.ConflictError{Resource: timetable.ResourceTeacher, Name: "Иванов", Slot: slot}, http.StatusConflict, "TEACHER_CONFLICT"},
		{"room not found", &timetable.NotFoundError{Resource: timetable.ResourceRoom, Name: "999", Slot: &slot}, http.StatusUnprocessableEntity, "ROOM_NOT_FOUND"},
		{"teacher not found", &timetable.NotFoundError{Resource: timetable.ResourceTeacher, Name: "Сидоров"}, http.StatusUnprocessableEntity, "TEACHER_NOT_FOUND"},
		{"schedule not found", &timetable.NotFoundError{Resource: timetable.ResourceSchedule, Name: "7"}, http.StatusNotFound, "SCHEDULE_NOT_FOUND"},
		{"profile not found", &timetable.NotFoundError{Resource: timetable.ResourceProfile, Name: "7"}, http.StatusNotFound, "PROFILE_NOT_FOUND"},
		{"validation", &timetable.ValidationError{Field: "name", Message: "пусто"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"persistence", &timetable.PersistenceError{Op: "сохранение", Err: errors.New("conn reset")}, http.StatusInternalServerError, "DB_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestConflictResponseNamesSlot(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, &timetable.ConflictError{
		Resource: timetable.ResourceRoom,
		Name:     "101",
		Slot:     timetable.Slot{Weekday: "Вторник", Period: 3, Parity: models.ParityEven},
	})

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "101")
	assert.Equal(t, "Вторник, занятие 3 (четная неделя)", body.Details)
}

func TestCachedNamesWithoutRedis(t *testing.T) {
	storage.RedisClient = nil
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"101"}, nil
	}

	for i := 0; i < 2; i++ {
		names, err := cachedNames(context.Background(), roomsCacheKey, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"101"}, names)
	}
	assert.Equal(t, 2, calls, "без Redis список читается каждый раз")
}

func TestParseToken(t *testing.T) {
	SetSecrets("a", "r")

	token, err := generateToken(42, accessTTL, AccessSecret)
	require.NoError(t, err)
	id, err := ParseToken(token, AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = ParseToken(token, refreshSecret)
	assert.Error(t, err)

	expired, err := generateToken(42, -accessTTL, AccessSecret)
	require.NoError(t, err)
	_, err = ParseToken(expired, AccessSecret)
	assert.Error(t, err)
}
