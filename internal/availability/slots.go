package availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// SlotState состояние слота в календаре
type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotTentative SlotState = "tentative"
	SlotBlocked   SlotState = "blocked"
)

// SlotStatus результат классификации одного момента календаря
type SlotStatus struct {
	State     SlotState
	Label     string // "Booked", "Pending" или пусто
	BookingID string // бронирование, определившее состояние
}

// Blocked слот покрыт буферной зоной подтвержденного бронирования
func (s SlotStatus) Blocked() bool {
	return s.State == SlotBlocked
}

// Tentative слот покрыт только ожидающими бронированиями
func (s SlotStatus) Tentative() bool {
	return s.State == SlotTentative
}

// ClassifySlot определяет состояние момента instant для отображения
// Начало буферной зоны включается, конец исключается
// Если момент покрыт и approved, и pending бронированием, побеждает approved
func ClassifySlot(instant time.Time, bookings []*domain.Booking, buffer time.Duration) SlotStatus {
	result := SlotStatus{State: SlotAvailable}

	for _, b := range bookings {
		if b == nil || !b.IsLive() {
			continue
		}
		if !b.Interval().Expand(buffer).Contains(instant) {
			continue
		}

		if b.Status == domain.StatusApproved {
			return SlotStatus{State: SlotBlocked, Label: domain.LabelBooked, BookingID: b.ID}
		}

		if result.State == SlotAvailable {
			result = SlotStatus{State: SlotTentative, Label: domain.LabelPending, BookingID: b.ID}
		}
	}

	return result
}

// SlotStarts генерирует моменты слотов дня day: от открытия с шагом Step, пока момент раньше закрытия
func SlotStarts(day time.Time, rules Rules) []time.Time {
	if rules.Step <= 0 {
		return nil
	}

	minutes := SlotMinutes(rules)
	y, m, d := day.In(rules.location()).Date()

	slots := make([]time.Time, 0, len(minutes))
	for _, minute := range minutes {
		slots = append(slots, time.Date(y, m, d, 0, minute, 0, 0, rules.location()))
	}
	return slots
}

// SlotMinutes возвращает минуты от начала суток для всех слотов дня
func SlotMinutes(rules Rules) []int {
	step := int(rules.Step / time.Minute)
	if step <= 0 {
		return nil
	}

	minutes := make([]int, 0, (rules.CloseMinutes-rules.OpenMinutes)/step+1)
	for minute := rules.OpenMinutes; minute < rules.CloseMinutes; minute += step {
		minutes = append(minutes, minute)
	}
	return minutes
}
