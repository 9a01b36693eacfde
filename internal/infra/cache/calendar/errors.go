package calendar

import "errors"

var (
	// ErrCacheMiss возвращается, когда сетки недели нет в кэше
	ErrCacheMiss = errors.New("calendar.cache: cache miss")

	// ErrCache возвращается при ошибке обращения к Redis
	ErrCache = errors.New("calendar.cache: redis error")

	// ErrDecode возвращается, если закэшированное значение не удалось разобрать
	ErrDecode = errors.New("calendar.cache: failed to decode cached grid")
)
