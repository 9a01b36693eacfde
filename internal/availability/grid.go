package availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// WeekGrid недельная сетка календаря: строки - время слота, колонки - дни
type WeekGrid struct {
	WeekStart time.Time
	Days      []time.Time
	Rows      []GridRow
}

// GridRow строка сетки для одного времени суток
type GridRow struct {
	Time  types.TimeString
	Cells []GridCell // по одной на день недели
}

// GridCell ячейка сетки
type GridCell struct {
	Start time.Time
	State SlotState
	Label string

	// Заполняются только для администратора
	BookingIDs    []string
	ApprovedCount int
	PendingCount  int
}

// BuildWeekGrid строит сетку недели, начинающейся с weekStart
// Для всех ролей состояние ячейки вычисляет ClassifySlot с буфером
// Администратор дополнительно видит бронирования, чей собственный интервал покрывает слот
func BuildWeekGrid(weekStart time.Time, bookings []*domain.Booking, rules Rules, role domain.Role) *WeekGrid {
	loc := rules.location()
	start := WeekStart(weekStart, loc)

	live := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil && b.IsLive() {
			live = append(live, b)
		}
	}

	days := make([]time.Time, DaysInWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}

	minutes := SlotMinutes(rules)
	rows := make([]GridRow, 0, len(minutes))

	for _, minute := range minutes {
		label, err := types.NewTimeStringFromMinutes(minute)
		if err != nil {
			continue
		}

		row := GridRow{Time: label, Cells: make([]GridCell, 0, DaysInWeek)}
		for _, day := range days {
			y, m, d := day.Date()
			instant := time.Date(y, m, d, 0, minute, 0, 0, loc)
			row.Cells = append(row.Cells, buildCell(instant, live, rules.Buffer, role))
		}
		rows = append(rows, row)
	}

	return &WeekGrid{
		WeekStart: start,
		Days:      days,
		Rows:      rows,
	}
}

func buildCell(instant time.Time, live []*domain.Booking, buffer time.Duration, role domain.Role) GridCell {
	status := ClassifySlot(instant, live, buffer)
	cell := GridCell{
		Start: instant,
		State: status.State,
		Label: status.Label,
	}

	if !role.IsAdmin() {
		return cell
	}

	for _, b := range live {
		if !b.Interval().Contains(instant) {
			continue
		}
		cell.BookingIDs = append(cell.BookingIDs, b.ID)
		switch b.Status {
		case domain.StatusApproved:
			cell.ApprovedCount++
		case domain.StatusPending:
			cell.PendingCount++
		}
	}

	return cell
}
