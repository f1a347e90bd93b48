package response

// SuccessResponse представляет ответ на изменение без тела
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: ROOM_CONFLICT
	Code string `json:"code"`

	// Сообщение для оператора
	// example: Аудитория «101» занят(а) в Понедельник, занятие 1
	Message string `json:"message"`

	// Ячейка сетки или поле, к которому относится ошибка (опционально)
	// example: Понедельник, занятие 1 (нечетная неделя)
	Details string `json:"details,omitempty"`
}

// TokenResponse содержит пару токенов оператора
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SaveResponse содержит итог сохранения сетки расписания
type SaveResponse struct {
	// Сохранено записей
	Saved int `json:"saved"`
	// Повторно поданные ячейки, оставлена первая
	Skipped int `json:"skipped"`
	// Ячейки на парах, которых нет в профиле
	Dropped int `json:"dropped"`
}

// BusyResponse содержит результат проверки занятости ячейки
type BusyResponse struct {
	Busy bool `json:"busy"`
}
