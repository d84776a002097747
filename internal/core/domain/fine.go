package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fine is one penalty charged against a member, kept in its own table
// alongside the history log. Fines never move the member's ledger totals;
// replay ignores their history events.
type Fine struct {
	FineID     string          `json:"fineID"` // Primary Key (UUID)
	MemberName string          `json:"memberName"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	CreatedBy  string          `json:"createdBy"`
}
