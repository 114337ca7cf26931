package domain

// HistoricalTicket summarizes a past ticket for a unit. Read-only.
type HistoricalTicket struct {
	ID            string
	IssueType     string
	Status        TicketStatus
	DateCompleted string
	StaffAssigned string
	Priority      TicketPriority
}
