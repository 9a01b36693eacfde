package request_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_booking: invalid input data")

	// ErrStartInPast возвращается, когда начало бронирования уже прошло
	ErrStartInPast = errors.New("request_booking: booking start is in the past")

	// ErrRetry возвращается при конфликте конкурентных транзакций, запрос можно повторить
	ErrRetry = errors.New("request_booking: concurrent update, please retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_booking: internal error")
)
