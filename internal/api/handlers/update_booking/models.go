package update_booking

// UpdateBookingRequest HTTP request model
// durationMinutes меняет конец бронирования при неизменном начале
type UpdateBookingRequest struct {
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	AdminNotes      *string `json:"adminNotes,omitempty"`
}

// IsEmpty возвращает true, если не передано ни одного поля
func (r *UpdateBookingRequest) IsEmpty() bool {
	return r.DurationMinutes == nil && r.AdminNotes == nil
}
