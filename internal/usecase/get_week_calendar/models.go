package get_week_calendar

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Request модель запроса недельного календаря
type Request struct {
	Date time.Time   // Любой день нужной недели
	Role domain.Role // Роль определяет детализацию ячеек
}

// Response недельная сетка календаря
type Response struct {
	WeekStart string   `json:"weekStart"` // "2024-06-03"
	Year      int      `json:"year"`      // ISO год недели
	Week      int      `json:"week"`      // ISO номер недели
	Days      []string `json:"days"`
	Rows      []Row    `json:"rows"`
}

// Row строка сетки
type Row struct {
	Time  string `json:"time"` // "14:00"
	Cells []Cell `json:"cells"`
}

// Cell ячейка сетки
type Cell struct {
	Date  string `json:"date"`
	State string `json:"state"` // available, tentative, blocked
	Label string `json:"label,omitempty"`

	// Только для администратора
	BookingIDs    []string `json:"bookingIds,omitempty"`
	ApprovedCount int      `json:"approvedCount,omitempty"`
	PendingCount  int      `json:"pendingCount,omitempty"`
}

// fromWeekGrid конвертирует сетку движка в ответ
func fromWeekGrid(grid *availability.WeekGrid, loc *time.Location) *Response {
	weekStart := grid.WeekStart.In(loc)
	year, week := availability.ISOWeek(weekStart, loc)

	resp := &Response{
		WeekStart: weekStart.Format(domain.DateFormat),
		Year:      year,
		Week:      week,
		Days:      make([]string, len(grid.Days)),
		Rows:      make([]Row, len(grid.Rows)),
	}

	for i, day := range grid.Days {
		resp.Days[i] = day.In(loc).Format(domain.DateFormat)
	}

	for i, row := range grid.Rows {
		cells := make([]Cell, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = Cell{
				Date:          c.Start.In(loc).Format(domain.DateFormat),
				State:         string(c.State),
				Label:         c.Label,
				BookingIDs:    c.BookingIDs,
				ApprovedCount: c.ApprovedCount,
				PendingCount:  c.PendingCount,
			}
		}
		resp.Rows[i] = Row{Time: row.Time.String(), Cells: cells}
	}

	return resp
}
