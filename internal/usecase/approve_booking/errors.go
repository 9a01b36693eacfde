package approve_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("approve_booking: booking not found")

	// ErrMemberNotFound возвращается, когда владелец бронирования не найден в UserService
	ErrMemberNotFound = errors.New("approve_booking: member not found")

	// ErrNotPending возвращается, когда бронирование уже не ожидает подтверждения
	ErrNotPending = errors.New("approve_booking: only pending bookings can be approved")

	// ErrRetry возвращается при конфликте конкурентных транзакций, запрос можно повторить
	ErrRetry = errors.New("approve_booking: concurrent update, please retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_booking: internal error")
)
