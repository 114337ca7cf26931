package repository

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-desk/internal/domain"
)

const historyDateLayout = "Jan 2, 2006"

// UnitHistoryRepository reads past tickets recorded for a unit.
type UnitHistoryRepository interface {
	ListByUnit(ctx context.Context, propertyName, unitNumber string) ([]domain.HistoricalTicket, error)
}

type unitHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewUnitHistoryRepository builds the Postgres-backed repository.
func NewUnitHistoryRepository(pool *pgxpool.Pool) UnitHistoryRepository {
	return &unitHistoryRepository{pool: pool}
}

func (r *unitHistoryRepository) ListByUnit(ctx context.Context, propertyName, unitNumber string) ([]domain.HistoricalTicket, error) {
	const query = `
        SELECT ticket_id, issue_type, status, completed_on, staff_assigned, priority
        FROM unit_history
        WHERE property_name=$1 AND unit_number=$2
        ORDER BY completed_on DESC, ticket_id ASC`
	rows, err := r.pool.Query(ctx, query, propertyName, unitNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistory(rows)
}

func scanHistory(rows pgx.Rows) ([]domain.HistoricalTicket, error) {
	result := []domain.HistoricalTicket{}
	for rows.Next() {
		var (
			entry       domain.HistoricalTicket
			completedOn time.Time
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.IssueType,
			&entry.Status,
			&completedOn,
			&entry.StaffAssigned,
			&entry.Priority,
		); err != nil {
			return nil, err
		}
		entry.DateCompleted = completedOn.Format(historyDateLayout)
		result = append(result, entry)
	}
	return result, rows.Err()
}

// UnitKey identifies a unit within a property.
type UnitKey struct {
	PropertyName string
	UnitNumber   string
}

type memoryUnitHistoryRepository struct {
	mu      sync.RWMutex
	records map[UnitKey][]domain.HistoricalTicket
}

// NewMemoryUnitHistoryRepository serves history from a fixed in-memory set.
func NewMemoryUnitHistoryRepository(records map[UnitKey][]domain.HistoricalTicket) UnitHistoryRepository {
	copied := make(map[UnitKey][]domain.HistoricalTicket, len(records))
	for key, entries := range records {
		copied[key] = append([]domain.HistoricalTicket{}, entries...)
	}
	return &memoryUnitHistoryRepository{records: copied}
}

// NewDemoUnitHistoryRepository attaches the demo history to every unit that
// appears in tickets.
func NewDemoUnitHistoryRepository(tickets []domain.Ticket) UnitHistoryRepository {
	records := make(map[UnitKey][]domain.HistoricalTicket)
	for _, ticket := range tickets {
		records[UnitKey{PropertyName: ticket.PropertyName, UnitNumber: ticket.UnitNumber}] = DemoUnitHistory()
	}
	return NewMemoryUnitHistoryRepository(records)
}

func (r *memoryUnitHistoryRepository) ListByUnit(ctx context.Context, propertyName, unitNumber string) ([]domain.HistoricalTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.records[UnitKey{PropertyName: propertyName, UnitNumber: unitNumber}]
	return append([]domain.HistoricalTicket{}, entries...), nil
}
