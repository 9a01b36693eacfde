package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

var (
	// ErrInvalidSettings is returned when settings violate their invariants
	ErrInvalidSettings = errors.New("invalid settings")
)

// Settings is the singleton, admin-editable studio configuration
type Settings struct {
	OpenTime            types.TimeString
	CloseTime           types.TimeString // "00:00" means midnight at the end of the day
	BufferMinutes       int
	SlotIntervalMinutes int
	UpdatedAt           time.Time
}

// DefaultSettings returns the settings used when none are stored
func DefaultSettings() Settings {
	return Settings{
		OpenTime:            DefaultOpenTime,
		CloseTime:           DefaultCloseTime,
		BufferMinutes:       DefaultBufferMinutes,
		SlotIntervalMinutes: DefaultSlotIntervalMinutes,
	}
}

// OpenMinutes returns the opening time as minutes from midnight
func (s Settings) OpenMinutes() (int, error) {
	return s.OpenTime.Minutes()
}

// CloseMinutes returns the closing time as minutes from midnight.
// A closing time of 00:00 is hour 24 of the same day, never hour 0.
func (s Settings) CloseMinutes() (int, error) {
	m, err := s.CloseTime.Minutes()
	if err != nil {
		return 0, err
	}
	if m == 0 {
		return types.MinutesPerDay, nil
	}
	return m, nil
}

// Buffer returns the buffer as a duration
func (s Settings) Buffer() time.Duration {
	return time.Duration(s.BufferMinutes) * time.Minute
}

// SlotInterval returns the calendar granularity as a duration
func (s Settings) SlotInterval() time.Duration {
	return time.Duration(s.SlotIntervalMinutes) * time.Minute
}

// Validate checks the settings invariants
func (s Settings) Validate() error {
	open, err := s.OpenMinutes()
	if err != nil {
		return fmt.Errorf("%w: openTime: %v", ErrInvalidSettings, err)
	}
	if open == types.MinutesPerDay {
		return fmt.Errorf("%w: openTime cannot be 24:00", ErrInvalidSettings)
	}

	closing, err := s.CloseMinutes()
	if err != nil {
		return fmt.Errorf("%w: closeTime: %v", ErrInvalidSettings, err)
	}

	if open >= closing {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidSettings)
	}

	if s.BufferMinutes < MinBufferMinutes || s.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidSettings, MinBufferMinutes, MaxBufferMinutes)
	}

	if !IsAllowedSlotInterval(s.SlotIntervalMinutes) {
		return fmt.Errorf("%w: slotIntervalMinutes must be one of %v",
			ErrInvalidSettings, AllowedSlotIntervals)
	}

	return nil
}

// IsAllowedSlotInterval returns true for a supported calendar granularity
func IsAllowedSlotInterval(minutes int) bool {
	for _, allowed := range AllowedSlotIntervals {
		if minutes == allowed {
			return true
		}
	}
	return false
}
