package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PoolState is the singleton app_state record tracking the shared pool.
// Exactly one live row exists; it is overwritten in place.
type PoolState struct {
	StateID            string          `json:"stateID"`
	Foundation         decimal.Decimal `json:"foundation"`         // Current pool balance
	NextPayoutIndex    int             `json:"nextPayoutIndex"`    // 0-based offset into the position-sorted roster
	CumulativeInterest decimal.Decimal `json:"cumulativeInterest"` // Interest generated across all loans
	NextPayoutDate     *time.Time      `json:"nextPayoutDate,omitempty"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}
