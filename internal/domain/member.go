package domain

// Membership is a studio member's plan
type Membership string

const (
	MembershipStandard   Membership = "standard"
	MembershipSubscribed Membership = "subscribed"
)

// Member is the subset of a user profile the booking service needs
type Member struct {
	ID         string
	Email      string
	Name       string
	Membership Membership
}

// HasWeeklyQuota returns true if the member is limited to one approved booking per week
func (m *Member) HasWeeklyQuota() bool {
	return m.Membership == MembershipSubscribed
}

// Role of the caller as asserted by the fronting auth service
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsAdmin returns true for the admin role
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Caller identity of the request initiator, set by the fronting auth service
type Caller struct {
	UserID string
	Email  string
	Role   Role
}

// IsAdmin returns true if the caller acts as studio admin
func (c Caller) IsAdmin() bool {
	return c.Role.IsAdmin()
}

// CanAccess returns true if the caller owns the booking or is an admin
func (c Caller) CanAccess(b *Booking) bool {
	return c.IsAdmin() || b.IsOwnedBy(c.UserID)
}
