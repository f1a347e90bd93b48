package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"raspisanie/internal/handlers"
	"raspisanie/internal/response"
	"raspisanie/internal/storage"
	"raspisanie/internal/testdb"
	"raspisanie/internal/timetable"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (a *apiClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var e response.ErrorResponse
	decode(t, w, &e)
	return e.Code
}

func setup(t *testing.T) (*apiClient, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.Open(t)
	storage.DB = db
	handlers.Service = timetable.NewService(db, 0)
	handlers.SetSecrets("access-test", "refresh-test")

	mr := miniredis.RunT(t)
	storage.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		storage.RedisClient.Close()
		storage.RedisClient = nil
	})

	r := gin.New()
	SetupRoutes(r)
	return &apiClient{t: t, router: r}, mr
}

func (a *apiClient) login() {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/register", gin.H{
		"name": "Анна", "surname": "Смирнова", "email": "anna@example.com", "password": "secret1",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/auth/login", gin.H{"email": "anna@example.com", "password": "secret1"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var tokens response.TokenResponse
	decode(a.t, w, &tokens)
	require.NotEmpty(a.t, tokens.AccessToken)
	a.token = tokens.AccessToken
}

func TestWriteRoutesRequireToken(t *testing.T) {
	api, _ := setup(t)

	w := api.do(http.MethodPost, "/api/profiles", gin.H{"name": "P1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "NO_AUTH_HEADER", errorCode(t, w))

	api.token = "garbage"
	w = api.do(http.MethodPut, "/api/schedules/1/entries", gin.H{"rows": []interface{}{}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, w))

	w = api.do(http.MethodGet, "/api/profiles", nil)
	assert.Equal(t, http.StatusOK, w.Code, "чтение доступно без токена")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRefreshToken(t *testing.T) {
	api, _ := setup(t)
	api.do(http.MethodPost, "/auth/register", gin.H{
		"name": "Анна", "surname": "Смирнова", "email": "anna@example.com", "password": "secret1",
	})
	w := api.do(http.MethodPost, "/auth/login", gin.H{"email": "anna@example.com", "password": "secret1"})
	var tokens response.TokenResponse
	decode(t, w, &tokens)

	w = api.do(http.MethodPost, "/auth/refresh", gin.H{"refresh_token": tokens.RefreshToken})
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPost, "/auth/refresh", gin.H{"refresh_token": tokens.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "access токен подписан другим ключом")

	w = api.do(http.MethodPost, "/auth/login", gin.H{"email": "anna@example.com", "password": "wrong"})
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))
}

func TestScheduleEditingFlow(t *testing.T) {
	api, mr := setup(t)
	api.login()

	// интервалы проверяются тегом hhmm
	w := api.do(http.MethodPost, "/api/profiles", gin.H{
		"name":      "P1",
		"intervals": []gin.H{{"pair_number": 1, "start_time": "25:00", "end_time": "10:30"}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/api/profiles", gin.H{
		"name": "P1",
		"intervals": []gin.H{
			{"pair_number": 1, "start_time": "09:00", "end_time": "10:30"},
			{"pair_number": 2, "start_time": "10:40", "end_time": "12:10"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var profile struct {
		ID uint `json:"id"`
	}
	decode(t, w, &profile)

	scheduleIDs := map[string]uint{}
	for _, name := range []string{"S1", "S2"} {
		w = api.do(http.MethodPost, "/api/profiles/"+itoa(profile.ID)+"/schedules", gin.H{"name": name, "schedule_type": "single"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var sched struct {
			ID uint `json:"id"`
		}
		decode(t, w, &sched)
		scheduleIDs[name] = sched.ID
	}
	w = api.do(http.MethodPost, "/api/profiles/"+itoa(profile.ID)+"/schedules", gin.H{"name": "S3", "schedule_type": "monthly"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// справочник и кэш
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/rooms", gin.H{"name": "101"}).Code)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/teachers", gin.H{"name": "Иванов"}).Code)
	w = api.do(http.MethodGet, "/api/rooms", nil)
	var rooms []string
	decode(t, w, &rooms)
	assert.Equal(t, []string{"101"}, rooms)
	assert.True(t, mr.Exists("rooms_all"))

	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/rooms", gin.H{"name": "102"}).Code)
	assert.False(t, mr.Exists("rooms_all"), "добавление сбрасывает кэш")
	decode(t, api.do(http.MethodGet, "/api/rooms", nil), &rooms)
	assert.Equal(t, []string{"101", "102"}, rooms)

	w = api.do(http.MethodPost, "/api/rooms", gin.H{"name": "101"})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	// сохранение и конфликт
	row := func(room string) gin.H {
		return gin.H{"rows": []gin.H{{
			"week_day": "Понедельник", "pair_number": 1,
			"slot": gin.H{"room": room, "teacher": "Иванов", "lesson_type": "Лекция", "discipline": "Физика"},
		}}}
	}
	w = api.do(http.MethodPut, "/api/schedules/"+itoa(scheduleIDs["S1"])+"/entries", row("101"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved response.SaveResponse
	decode(t, w, &saved)
	assert.Equal(t, 1, saved.Saved)

	w = api.do(http.MethodPut, "/api/schedules/"+itoa(scheduleIDs["S2"])+"/entries", row("101"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ROOM_CONFLICT", errorCode(t, w))

	w = api.do(http.MethodPut, "/api/schedules/"+itoa(scheduleIDs["S2"])+"/entries", row("Спортзал"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "ROOM_NOT_FOUND", errorCode(t, w))

	w = api.do(http.MethodPut, "/api/schedules/"+itoa(scheduleIDs["S2"])+"/entries", row("102"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "TEACHER_CONFLICT", errorCode(t, w))

	// занятость и чтение
	w = api.do(http.MethodGet, "/api/busy/rooms?"+busyQuery("101", "1", ""), nil)
	var busy response.BusyResponse
	decode(t, w, &busy)
	assert.True(t, busy.Busy)

	w = api.do(http.MethodGet, "/api/busy/rooms?"+busyQuery("101", "1", itoa(scheduleIDs["S1"])), nil)
	decode(t, w, &busy)
	assert.False(t, busy.Busy)

	w = api.do(http.MethodGet, "/api/busy/teachers?"+url.Values{"name": {"Иванов"}, "day": {"Понедельник"}}.Encode(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/schedules/"+itoa(scheduleIDs["S1"])+"/entries", nil)
	var entries []timetable.EntryView
	decode(t, w, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "101", entries[0].Room)
	assert.Equal(t, "09:00 - 10:30", entries[0].TimeInterval)

	// выгрузка
	w = api.do(http.MethodGet, "/api/schedules/"+itoa(scheduleIDs["S1"])+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	book, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	cell, err := book.GetCellValue(book.GetSheetName(0), "F2")
	require.NoError(t, err)
	assert.Equal(t, "Иванов", cell)

	w = api.do(http.MethodGet, "/api/audit/conflicts", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	// удаление
	w = api.do(http.MethodDelete, "/api/schedules/"+itoa(scheduleIDs["S1"]), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodGet, "/api/schedules/"+itoa(scheduleIDs["S1"]), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SCHEDULE_NOT_FOUND", errorCode(t, w))

	w = api.do(http.MethodDelete, "/api/profiles/"+itoa(profile.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodGet, "/api/profiles/"+itoa(profile.ID)+"/times", nil)
	assert.Equal(t, "PROFILE_NOT_FOUND", errorCode(t, w))
}

func TestBadIdentifier(t *testing.T) {
	api, _ := setup(t)

	w := api.do(http.MethodGet, "/api/schedules/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SCHEDULE_ID", errorCode(t, w))
}

func busyQuery(name, pair, exclude string) string {
	q := url.Values{"name": {name}, "day": {"Понедельник"}, "pair": {pair}, "week": {"0"}}
	if exclude != "" {
		q.Set("exclude", exclude)
	}
	return q.Encode()
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
