package pgsql

import (
	"context"
	"database/sql/driver"
	"fmt"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new repository for the append-only history log.
func NewHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepositoryFacade {
	return &historyRepository{pool: pool}
}

var _ portsrepo.HistoryRepositoryFacade = (*historyRepository)(nil)

// ListRawEvents retrieves every history row as a raw column->value map.
// SELECT * is deliberate: the table has gone through several column renames
// and the mapping layer resolves whichever layout is live.
func (r *historyRepository) ListRawEvents(ctx context.Context) ([]map[string]any, error) {
	query := `SELECT * FROM history ORDER BY created_at DESC;`
	return r.queryRawRows(ctx, query)
}

// ListRawEventsRange retrieves a page of raw history rows, newest first.
func (r *historyRepository) ListRawEventsRange(ctx context.Context, limit, offset int) ([]map[string]any, error) {
	query := `SELECT * FROM history ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	return r.queryRawRows(ctx, query, limit, offset)
}

func (r *historyRepository) queryRawRows(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history rows: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read history row values: %w", err)
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[string(fd.Name)] = plainValue(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading history rows: %w", err)
	}
	return out, nil
}

// plainValue flattens pgx driver types into plain Go values the mapping
// layer's coercers understand.
func plainValue(v any) any {
	switch tv := v.(type) {
	case [16]byte:
		return uuid.UUID(tv).String()
	case driver.Valuer:
		out, err := tv.Value()
		if err != nil {
			return nil
		}
		return out
	default:
		return v
	}
}

const appendEventQuery = `
	INSERT INTO history (event_id, type, member, amount, foundation_amount, interest_percent, total_due, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

// AppendEvent appends one history event outside any transaction.
func (r *historyRepository) AppendEvent(ctx context.Context, event domain.HistoryEvent) error {
	_, err := r.pool.Exec(ctx, appendEventQuery,
		event.EventID,
		string(event.Type),
		event.MemberName,
		event.Amount,
		event.FoundationAmount,
		event.InterestPercent,
		event.TotalDue,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append history event %s: %w", event.EventID, err)
	}
	return nil
}

// AppendEventInTx appends one history event within a given transaction.
func (r *historyRepository) AppendEventInTx(ctx context.Context, tx pgx.Tx, event domain.HistoryEvent) error {
	_, err := tx.Exec(ctx, appendEventQuery,
		event.EventID,
		string(event.Type),
		event.MemberName,
		event.Amount,
		event.FoundationAmount,
		event.InterestPercent,
		event.TotalDue,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append history event %s: %w", event.EventID, err)
	}
	return nil
}
