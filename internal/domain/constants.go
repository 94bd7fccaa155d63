package domain

const (
	RoleVolunteer = "volunteer"
	RoleNGO       = "ngo"
)

const (
	OpportunityOpen   = "open"
	OpportunityClosed = "closed"
)

const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

const (
	NotifApplicationReceived = "APPLICATION_RECEIVED"
	NotifApplicationAccepted = "APPLICATION_ACCEPTED"
	NotifApplicationRejected = "APPLICATION_REJECTED"
	NotifNewMessage          = "NEW_MESSAGE"
)

// ValidRole reports whether role is one of the two account roles.
func ValidRole(role string) bool {
	return role == RoleVolunteer || role == RoleNGO
}

// ValidDecision reports whether status is a terminal application status an
// NGO may move a pending application into.
func ValidDecision(status string) bool {
	return status == ApplicationAccepted || status == ApplicationRejected
}
