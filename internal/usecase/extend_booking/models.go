package extend_booking

// Request модель запроса на изменение длительности бронирования
// Начало бронирования не меняется
type Request struct {
	BookingID       string
	DurationMinutes int
	AdminNotes      *string // nil - заметки не меняются
}
