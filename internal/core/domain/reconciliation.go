package domain

// ReconciledMember pairs a roster member with the ledger totals computed by
// replaying history from zero.
type ReconciledMember struct {
	Member   Member       `json:"member"`
	Proposed LedgerTotals `json:"proposed"`
}

// ReconciliationReport is the preview-mode output of the reconciliation
// engine. SchemaOK is false when the history table could not supply the
// minimum columns, in which case Members carries the roster unchanged.
type ReconciliationReport struct {
	SchemaOK bool               `json:"schemaOK"`
	Members  []ReconciledMember `json:"members"`
}

// MemberUpdateFailure identifies one member whose write-back failed, with
// enough context for the operator to retry manually.
type MemberUpdateFailure struct {
	MemberID  string `json:"memberID"`
	Name      string `json:"name"`
	Operation string `json:"operation"`
	Reason    string `json:"reason"`
}

// ApplyOutcome reports a reconciliation write-back. Per-member updates are
// independent, so partial application is possible and is reported rather
// than rolled back.
type ApplyOutcome struct {
	UpdatedCount int                   `json:"updatedCount"`
	Failures     []MemberUpdateFailure `json:"failures,omitempty"`
}

// RecordOutcome reports one recorder action. Warning carries best-effort
// side effects that failed without aborting the action (pool-state interest
// accrual on loans).
type RecordOutcome struct {
	Member  Member       `json:"member"`
	Event   HistoryEvent `json:"event"`
	Warning string       `json:"warning,omitempty"`
}
