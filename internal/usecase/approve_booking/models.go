package approve_booking

import (
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

// Причины, по которым подтверждение требует явного override
const (
	ReasonWeeklyQuota       = "This user already has an approved booking this week. Approve anyway as an extra session?"
	ReasonMembershipUnknown = "Membership could not be verified. Approve anyway?"
)

// Response результат попытки подтверждения
// Либо Approved и Booking заполнены, либо NeedsOverrideConfirmation и Reason
type Response struct {
	Approved                  bool
	NeedsOverrideConfirmation bool
	Reason                    string
	Booking                   *models.BookingResponse
}
