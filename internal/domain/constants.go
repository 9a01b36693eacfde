package domain

import "github.com/m04kA/SMC-StudioBooking/pkg/types"

// Default settings values (seeded when the settings row is missing)
const (
	DefaultOpenTime            types.TimeString = "06:00"
	DefaultCloseTime           types.TimeString = "00:00"
	DefaultBufferMinutes                        = 30
	DefaultSlotIntervalMinutes                  = 30
	DefaultTimezone                             = "Europe/London"
)

// Business validation constants
const (
	MinBufferMinutes          = 0
	MaxBufferMinutes          = 240
	MinBookingDurationMinutes = 60
	MaxBookingDurationMinutes = 480 // 8 hours
	MaxUserNotesLength        = 200
	MaxAdminNotesLength       = 1000
)

// AllowedSlotIntervals supported calendar granularities in minutes
var AllowedSlotIntervals = []int{30, 60}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot labels shown on the calendar
const (
	LabelBooked  = "Booked"
	LabelPending = "Pending"
)

// InactiveStatuses statuses that never occupy calendar space
var InactiveStatuses = []BookingStatus{
	StatusDeclined,
	StatusCancelled,
}

// LiveStatuses statuses that participate in conflict checks
var LiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}
