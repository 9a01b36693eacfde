package create_booking

import (
	"time"
)

// Request модель запроса администратора на создание бронирования
// Без UserID создается блокировка студии (block-out)
type Request struct {
	AdminID         string    // ID администратора (для логов)
	UserID          *string   // ID участника для walk-in (опционально)
	UserEmail       *string   // Email участника (опционально)
	Start           time.Time // Начало бронирования
	DurationMinutes int       // Длительность в минутах
	Notes           string    // Заметки
}

// IsBlock возвращает true, если запрос создает блокировку без владельца
func (r *Request) IsBlock() bool {
	return r.UserID == nil
}
