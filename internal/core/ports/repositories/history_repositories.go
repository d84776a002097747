package repositories

import (
	"context"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// HistoryReader defines read operations over the append-only history log.
type HistoryReader interface {
	// ListRawEvents retrieves every history row as a raw column->value map,
	// newest first. Raw maps preserve whatever column layout the table
	// currently has; callers normalize through the mapping layer.
	ListRawEvents(ctx context.Context) ([]map[string]any, error)

	// ListRawEventsRange retrieves a page of raw history rows, newest first.
	ListRawEventsRange(ctx context.Context, limit, offset int) ([]map[string]any, error)
}

// HistoryWriter defines append operations for history events.
// History rows are immutable; there is no update or delete.
type HistoryWriter interface {
	// AppendEvent appends one history event.
	AppendEvent(ctx context.Context, event domain.HistoryEvent) error

	// AppendEventInTx appends one history event within a given transaction,
	// so the append commits or rolls back together with the balance update.
	AppendEventInTx(ctx context.Context, tx pgx.Tx, event domain.HistoryEvent) error
}

// HistoryRepositoryFacade combines all history-related repository interfaces.
type HistoryRepositoryFacade interface {
	HistoryReader
	HistoryWriter
}
