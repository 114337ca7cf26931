package domain

// StaffProfile identifies the operator of a session.
type StaffProfile struct {
	Name               string
	Email              string
	Phone              string
	AssignedProperties []string
}

// ID is the identifier stored in Ticket.AssignedTo.
func (s StaffProfile) ID() string {
	return s.Name
}
