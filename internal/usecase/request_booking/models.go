package request_booking

import (
	"time"
)

// Request модель запроса пользователя на бронирование
type Request struct {
	UserID          string    // ID пользователя
	Email           string    // Email пользователя (денормализуется в бронирование)
	Start           time.Time // Начало бронирования
	DurationMinutes int       // Длительность в минутах
	Notes           string    // Заметки пользователя
}
