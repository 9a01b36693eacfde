package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек студии
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	OpenTime            *string `json:"openTime,omitempty"`  // "06:00"
	CloseTime           *string `json:"closeTime,omitempty"` // "00:00" - полночь
	BufferMinutes       *int    `json:"bufferMinutes,omitempty"`
	SlotIntervalMinutes *int    `json:"slotIntervalMinutes,omitempty"`
}

// Response модели

// SettingsResponse ответ с настройками студии
type SettingsResponse struct {
	OpenTime            string     `json:"openTime"`
	CloseTime           string     `json:"closeTime"`
	BufferMinutes       int        `json:"bufferMinutes"`
	SlotIntervalMinutes int        `json:"slotIntervalMinutes"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		OpenTime:            s.OpenTime.String(),
		CloseTime:           s.CloseTime.String(),
		BufferMinutes:       s.BufferMinutes,
		SlotIntervalMinutes: s.SlotIntervalMinutes,
	}

	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
