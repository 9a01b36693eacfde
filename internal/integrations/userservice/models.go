package userservice

import "github.com/m04kA/SMC-StudioBooking/internal/domain"

// Profile профиль участника студии из UserService
type Profile struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Membership string `json:"membership"` // standard | subscribed
}

// ToDomain конвертирует профиль в доменную модель
// Неизвестное членство считается standard
func (p *Profile) ToDomain() *domain.Member {
	membership := domain.Membership(p.Membership)
	if membership != domain.MembershipSubscribed {
		membership = domain.MembershipStandard
	}

	return &domain.Member{
		ID:         p.ID,
		Email:      p.Email,
		Name:       p.Name,
		Membership: membership,
	}
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
