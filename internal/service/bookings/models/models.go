package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetBookingsRequest запрос администратора на получение бронирований
type GetBookingsRequest struct {
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	UserID          *string    `json:"userId,omitempty"`          // Фильтр по пользователю (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отклоненные и отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		From:            r.From,
		To:              r.To,
		UserID:          r.UserID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        string  `json:"id"`
	UserID    *string `json:"userId,omitempty"`
	UserEmail *string `json:"userEmail,omitempty"`

	Date      string    `json:"date"`      // "2024-06-01" в зоне студии
	StartTime string    `json:"startTime"` // "14:00"
	EndTime   string    `json:"endTime"`   // "16:00"
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`

	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	IsExtra         bool   `json:"isExtra"`
	IsBlock         bool   `json:"isBlock"`

	UserNotes  string  `json:"userNotes,omitempty"`
	AdminNotes *string `json:"adminNotes,omitempty"` // только для администратора

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// DayOverviewResponse счетчики бронирований за день
type DayOverviewResponse struct {
	Date     string `json:"date"`
	Approved int    `json:"approved"`
	Pending  int    `json:"pending"`
	Blocks   int    `json:"blocks"`
}

// MonthOverviewResponse обзор месяца для администратора
type MonthOverviewResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Days  []DayOverviewResponse `json:"days"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Заметки администратора видны только администратору
func FromDomainBooking(b *domain.Booking, loc *time.Location, role domain.Role) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	start := b.StartTime.In(loc)
	end := b.EndTime.In(loc)

	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		UserEmail:       b.UserEmail,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         end.Format(domain.TimeFormat),
		Start:           start,
		End:             end,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		IsExtra:         b.IsExtra,
		IsBlock:         b.IsBlock(),
		UserNotes:       b.UserNotes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if role.IsAdmin() {
		notes := b.AdminNotes
		resp.AdminNotes = &notes
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location, role domain.Role) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc, role); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromMonthOverview конвертирует обзор месяца в DTO
func FromMonthOverview(year int, month time.Month, days []availability.DayOverview) *MonthOverviewResponse {
	resp := &MonthOverviewResponse{
		Year:  year,
		Month: int(month),
		Days:  make([]DayOverviewResponse, len(days)),
	}

	for i, day := range days {
		resp.Days[i] = DayOverviewResponse{
			Date:     day.Date.Format(domain.DateFormat),
			Approved: day.Approved,
			Pending:  day.Pending,
			Blocks:   day.Blocks,
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
