package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusDeclined  BookingStatus = "declined"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// IsLive returns true if a booking in this status occupies calendar space
func (s BookingStatus) IsLive() bool {
	return s == StatusPending || s == StatusApproved
}

// Booking represents a studio room booking
type Booking struct {
	ID        string
	UserID    *string // nil for admin block-outs
	UserEmail *string

	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          BookingStatus
	IsExtra         bool // approved over the weekly quota by admin override

	UserNotes  string
	AdminNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booking's [start, end) interval
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// IsLive returns true if the booking participates in conflict checks
func (b *Booking) IsLive() bool {
	return b.Status.IsLive()
}

// IsBlock returns true for an approved booking with no owner (admin block-out)
func (b *Booking) IsBlock() bool {
	return b.Status == StatusApproved && b.UserID == nil
}

// IsOwnedBy returns true if the booking belongs to the user
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID != nil && *b.UserID == userID
}

// CanBeApproved returns true if the booking can transition to approved
func (b *Booking) CanBeApproved() bool {
	return b.Status == StatusPending
}

// CanBeDeclined returns true if the booking can transition to declined
func (b *Booking) CanBeDeclined() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// CanBeEdited returns true if the booking's time can still be changed
func (b *Booking) CanBeEdited() bool {
	return b.IsLive()
}

// SetDuration moves the end so that the booking lasts the given number of minutes
// and keeps DurationMinutes consistent with the timestamps
func (b *Booking) SetDuration(minutes int) {
	b.EndTime = b.StartTime.Add(time.Duration(minutes) * time.Minute)
	b.DurationMinutes = minutes
}

// SyncDuration recomputes DurationMinutes from the timestamps
func (b *Booking) SyncDuration() {
	b.DurationMinutes = int(b.EndTime.Sub(b.StartTime) / time.Minute)
}

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if both ends are set and Start < End
func (i Interval) IsValid() bool {
	return !i.Start.IsZero() && !i.End.IsZero() && i.Start.Before(i.End)
}

// Overlaps returns true if the two half-open intervals intersect
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains returns true if t lies within [Start, End)
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Expand returns the interval widened by d on both sides
func (i Interval) Expand(d time.Duration) Interval {
	return Interval{Start: i.Start.Add(-d), End: i.End.Add(d)}
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	From            *time.Time     // бронирования, заканчивающиеся после From
	To              *time.Time     // бронирования, начинающиеся до To
	UserID          *string        // только бронирования пользователя
	Status          *BookingStatus // конкретный статус
	IncludeInactive bool           // включать declined/cancelled
}
