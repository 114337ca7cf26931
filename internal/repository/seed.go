package repository

import "github.com/spec-kit/maintenance-desk/internal/domain"

func strPtr(s string) *string { return &s }

// DemoTickets returns the demo ticket set in queue order.
func DemoTickets() []domain.Ticket {
	return []domain.Ticket{
		{
			ID:            "T-2024-001",
			PropertyName:  "Sunset Apartments",
			UnitNumber:    "204",
			IssueType:     "Plumbing",
			Priority:      domain.TicketPriorityHigh,
			Status:        domain.TicketStatusOpen,
			CreatedDate:   "Oct 8, 2025",
			Description:   "Leaking pipe under kitchen sink. Water pooling on floor.",
			TenantName:    strPtr("Sarah Johnson"),
			TenantContact: strPtr("(555) 123-4567"),
			TenantPhotos:  []string{"https://images.unsplash.com/photo-1700174542278-4f8fc5ab6565"},
		},
		{
			ID:            "T-2024-002",
			PropertyName:  "Harbor View Complex",
			UnitNumber:    "105",
			IssueType:     "Electrical",
			Priority:      domain.TicketPriorityMedium,
			Status:        domain.TicketStatusInProgress,
			CreatedDate:   "Oct 7, 2025",
			Description:   "Outlet in bedroom not working. No power to the left wall.",
			AssignedTo:    strPtr("John Smith"),
			TenantName:    strPtr("Michael Chen"),
			TenantContact: strPtr("(555) 234-5678"),
			Notes:         []string{"Checked breaker box - circuit is fine", "Scheduled replacement for tomorrow"},
			TenantPhotos:  []string{"https://images.unsplash.com/photo-1467733238130-bb6846885316"},
		},
		{
			ID:            "T-2024-003",
			PropertyName:  "Oak Street Residences",
			UnitNumber:    "301",
			IssueType:     "HVAC",
			Priority:      domain.TicketPriorityLow,
			Status:        domain.TicketStatusOpen,
			CreatedDate:   "Oct 6, 2025",
			Description:   "Air conditioning not cooling effectively. Temperature stays at 78°F.",
			TenantName:    strPtr("Emma Davis"),
			TenantContact: strPtr("(555) 345-6789"),
			TenantPhotos:  []string{"https://images.unsplash.com/photo-1647022528152-52ed9338611d"},
		},
		{
			ID:            "T-2024-004",
			PropertyName:  "Sunset Apartments",
			UnitNumber:    "102",
			IssueType:     "Appliance",
			Priority:      domain.TicketPriorityMedium,
			Status:        domain.TicketStatusInProgress,
			CreatedDate:   "Oct 5, 2025",
			Description:   "Refrigerator making loud noise and not keeping food cold.",
			AssignedTo:    strPtr("John Smith"),
			TenantName:    strPtr("Robert Wilson"),
			TenantContact: strPtr("(555) 456-7890"),
			Notes:         []string{"Compressor issue confirmed", "Ordered replacement parts"},
			TenantPhotos:  []string{"https://images.unsplash.com/photo-1582484898866-ac15ca496f0d"},
		},
		{
			ID:            "T-2024-005",
			PropertyName:  "Harbor View Complex",
			UnitNumber:    "210",
			IssueType:     "Plumbing",
			Priority:      domain.TicketPriorityHigh,
			Status:        domain.TicketStatusOpen,
			CreatedDate:   "Oct 9, 2025",
			Description:   "Toilet constantly running. Water bill concerns.",
			TenantName:    strPtr("Lisa Anderson"),
			TenantContact: strPtr("(555) 567-8901"),
		},
		{
			ID:            "T-2024-006",
			PropertyName:  "Oak Street Residences",
			UnitNumber:    "204",
			IssueType:     "General Maintenance",
			Priority:      domain.TicketPriorityLow,
			Status:        domain.TicketStatusComplete,
			CreatedDate:   "Oct 3, 2025",
			Description:   "Window screen needs replacement in living room.",
			AssignedTo:    strPtr("John Smith"),
			TenantName:    strPtr("David Martinez"),
			TenantContact: strPtr("(555) 678-9012"),
			Notes:         []string{"Measured window", "Installed new screen", "Completed and verified with tenant"},
		},
		{
			ID:            "T-2024-007",
			PropertyName:  "Sunset Apartments",
			UnitNumber:    "305",
			IssueType:     "Electrical",
			Priority:      domain.TicketPriorityHigh,
			Status:        domain.TicketStatusOpen,
			CreatedDate:   "Oct 9, 2025",
			Description:   "Multiple outlets not working in main bedroom. Possible circuit issue.",
			TenantName:    strPtr("Jessica Taylor"),
			TenantContact: strPtr("(555) 789-0123"),
		},
		{
			ID:            "T-2024-008",
			PropertyName:  "Harbor View Complex",
			UnitNumber:    "115",
			IssueType:     "Door/Lock",
			Priority:      domain.TicketPriorityMedium,
			Status:        domain.TicketStatusArchive,
			CreatedDate:   "Oct 2, 2025",
			Description:   "Front door lock sticking. Difficult to unlock.",
			AssignedTo:    strPtr("John Smith"),
			TenantName:    strPtr("Amanda White"),
			TenantContact: strPtr("(555) 890-1234"),
			Notes:         []string{"Lubricated lock mechanism", "Replaced worn key", "Lock functioning properly"},
		},
	}
}

// DemoUnitHistory returns the past tickets shown for demo units.
func DemoUnitHistory() []domain.HistoricalTicket {
	return []domain.HistoricalTicket{
		{ID: "T-2024-020", IssueType: "Plumbing", Status: domain.TicketStatusComplete, DateCompleted: "Sep 15, 2025", StaffAssigned: "Mike Johnson", Priority: domain.TicketPriorityMedium},
		{ID: "T-2024-015", IssueType: "Electrical", Status: domain.TicketStatusComplete, DateCompleted: "Aug 22, 2025", StaffAssigned: "John Smith", Priority: domain.TicketPriorityHigh},
		{ID: "T-2024-008", IssueType: "HVAC", Status: domain.TicketStatusArchive, DateCompleted: "Jul 10, 2025", StaffAssigned: "Mike Johnson", Priority: domain.TicketPriorityLow},
		{ID: "T-2024-003", IssueType: "General Maintenance", Status: domain.TicketStatusArchive, DateCompleted: "Jun 5, 2025", StaffAssigned: "John Smith", Priority: domain.TicketPriorityLow},
	}
}
