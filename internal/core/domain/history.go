package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType tags a history event with the financial action that produced it.
// History rows written by older revisions of the app may carry free-form
// tags; anything unrecognized is kept verbatim and ignored during replay.
type EventType string

const (
	EventContribution EventType = "contribution"
	EventLoan         EventType = "loan"
	EventRepayment    EventType = "repayment"
	EventFine         EventType = "fine"
	EventMemberAdded  EventType = "member_added"
)

// HistoryEvent is the canonical, normalized form of one append-only history
// row. Raw rows arrive under several historical schema variants; the mapping
// layer resolves column aliases into this struct once, at ingestion.
type HistoryEvent struct {
	EventID          string          `json:"eventID"`
	Type             EventType       `json:"type"`       // Lower-cased type tag
	MemberName       string          `json:"memberName"` // Member reference as recorded (name, not ID)
	Amount           decimal.Decimal `json:"amount"`
	FoundationAmount *decimal.Decimal `json:"foundationAmount,omitempty"` // Contribution split recorded since the foundation_amount column was added; nil on legacy rows
	InterestPercent  decimal.Decimal `json:"interestPercent"` // Loans only
	TotalDue         decimal.Decimal `json:"totalDue"`        // Loan principal+interest, or resulting balance
	HasTotalDue      bool            `json:"-"`               // False when the source row had no due-total column
	CreatedAt        time.Time       `json:"createdAt"`
}
