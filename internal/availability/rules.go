package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Rules нормализованные настройки студии, с которыми работает движок
type Rules struct {
	OpenMinutes  int // минуты от начала суток
	CloseMinutes int // 1440, если студия закрывается в полночь
	Buffer       time.Duration
	Step         time.Duration
	Location     *time.Location
}

// NewRules нормализует настройки: closeTime "00:00" превращается в 24:00 того же дня
func NewRules(settings domain.Settings, loc *time.Location) (Rules, error) {
	if err := settings.Validate(); err != nil {
		return Rules{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	open, err := settings.OpenMinutes()
	if err != nil {
		return Rules{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	closing, err := settings.CloseMinutes()
	if err != nil {
		return Rules{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	if loc == nil {
		loc = time.UTC
	}

	return Rules{
		OpenMinutes:  open,
		CloseMinutes: closing,
		Buffer:       settings.Buffer(),
		Step:         settings.SlotInterval(),
		Location:     loc,
	}, nil
}

// OpenAt возвращает момент открытия в календарный день t (в зоне студии)
func (r Rules) OpenAt(t time.Time) time.Time {
	return r.atMinute(t, r.OpenMinutes)
}

// CloseAt возвращает момент закрытия в календарный день t
// При CloseMinutes == 1440 это полночь следующего дня
func (r Rules) CloseAt(t time.Time) time.Time {
	return r.atMinute(t, r.CloseMinutes)
}

// DayStart возвращает полночь календарного дня t в зоне студии
func (r Rules) DayStart(t time.Time) time.Time {
	return r.atMinute(t, 0)
}

func (r Rules) atMinute(t time.Time, minute int) time.Time {
	y, m, d := t.In(r.location()).Date()
	// time.Date нормализует переполнение минут, 1440 дает 00:00 следующего дня
	return time.Date(y, m, d, 0, minute, 0, 0, r.location())
}

func (r Rules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}
