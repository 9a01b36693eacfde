package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrRetry возвращается при конфликте конкурентных транзакций, запрос можно повторить
	ErrRetry = errors.New("create_booking: concurrent update, please retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
