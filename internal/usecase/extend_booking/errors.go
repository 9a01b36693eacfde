package extend_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("extend_booking: booking not found")

	// ErrNotEditable возвращается для отклоненных и отмененных бронирований
	ErrNotEditable = errors.New("extend_booking: only pending or approved bookings can be edited")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("extend_booking: invalid input data")

	// ErrRetry возвращается при конфликте конкурентных транзакций, запрос можно повторить
	ErrRetry = errors.New("extend_booking: concurrent update, please retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("extend_booking: internal error")
)
