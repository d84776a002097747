package ledger_test

import (
	"testing"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/Marceldinga/The-young-shall-grow/internal/utils/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(id, name string, position int) domain.Member {
	return domain.Member{MemberID: id, Name: name, Position: position}
}

func contribution(memberName string, amount float64) domain.HistoryEvent {
	return domain.HistoryEvent{
		Type:       domain.EventContribution,
		MemberName: memberName,
		Amount:     decimal.NewFromFloat(amount),
	}
}

func loan(memberName string, amount, totalDue float64) domain.HistoryEvent {
	return domain.HistoryEvent{
		Type:        domain.EventLoan,
		MemberName:  memberName,
		Amount:      decimal.NewFromFloat(amount),
		TotalDue:    decimal.NewFromFloat(totalDue),
		HasTotalDue: true,
	}
}

func repayment(memberName string, amount float64) domain.HistoryEvent {
	return domain.HistoryEvent{
		Type:       domain.EventRepayment,
		MemberName: memberName,
		Amount:     decimal.NewFromFloat(amount),
	}
}

func TestReplay_Scenario(t *testing.T) {
	roster := []domain.Member{member("m1", "A", 1)}
	history := []domain.HistoryEvent{
		contribution("A", 500),
		loan("A", 1000, 1050),
		repayment("A", 200),
	}

	totals := ledger.Replay(history, roster)

	require.Contains(t, totals, "m1")
	assert.True(t, totals["m1"].Contributed.Equal(decimal.NewFromInt(500)), "contributed should be 500, got %s", totals["m1"].Contributed)
	assert.True(t, totals["m1"].FoundationContrib.Equal(decimal.NewFromInt(500)), "foundation should mirror contributed for legacy rows")
	assert.True(t, totals["m1"].LoanDue.Equal(decimal.NewFromInt(850)), "loan due should be 850, got %s", totals["m1"].LoanDue)
}

func TestReplay_FineEventsLeaveTotalsUnchanged(t *testing.T) {
	roster := []domain.Member{member("m1", "A", 1)}
	withoutFine := []domain.HistoryEvent{
		contribution("A", 500),
		loan("A", 1000, 1050),
	}
	withFine := append([]domain.HistoryEvent{
		{Type: domain.EventFine, MemberName: "A", Amount: decimal.NewFromInt(25)},
	}, withoutFine...)

	base := ledger.Replay(withoutFine, roster)
	fined := ledger.Replay(withFine, roster)

	require.Contains(t, fined, "m1")
	assert.True(t, fined["m1"].Contributed.Equal(base["m1"].Contributed), "fines must not change contributed")
	assert.True(t, fined["m1"].FoundationContrib.Equal(base["m1"].FoundationContrib), "fines must not change the foundation total")
	assert.True(t, fined["m1"].LoanDue.Equal(base["m1"].LoanDue), "fines must not change loan due")
}

func TestReplay_Idempotent(t *testing.T) {
	roster := []domain.Member{member("m1", "A", 1), member("m2", "B", 2)}
	history := []domain.HistoryEvent{
		contribution("A", 100),
		contribution("B", 250),
		loan("A", 1000, 1050),
		repayment("A", 300),
	}

	first := ledger.Replay(history, roster)
	second := ledger.Replay(history, roster)

	require.Equal(t, len(first), len(second))
	for id, want := range first {
		got := second[id]
		assert.True(t, want.Contributed.Equal(got.Contributed))
		assert.True(t, want.FoundationContrib.Equal(got.FoundationContrib))
		assert.True(t, want.LoanDue.Equal(got.LoanDue))
	}
}

func TestReplay_OrderIndependent(t *testing.T) {
	roster := []domain.Member{member("m1", "A", 1)}
	history := []domain.HistoryEvent{
		contribution("A", 100),
		loan("A", 1000, 1100),
		repayment("A", 400),
		contribution("A", 50),
	}
	reversed := []domain.HistoryEvent{history[3], history[2], history[1], history[0]}

	forward := ledger.Replay(history, roster)
	backward := ledger.Replay(reversed, roster)

	assert.True(t, forward["m1"].Contributed.Equal(backward["m1"].Contributed))
	assert.True(t, forward["m1"].LoanDue.Equal(backward["m1"].LoanDue))
}

func TestReplay_RepaymentClampsAtZero(t *testing.T) {
	roster := []domain.Member{member("m1", "A", 1)}
	history := []domain.HistoryEvent{
		loan("A", 80, 80),
		repayment("A", 100),
	}

	totals := ledger.Replay(history, roster)

	assert.True(t, totals["m1"].LoanDue.Equal(decimal.Zero), "excess repayment must clamp at zero, got %s", totals["m1"].LoanDue)
	assert.False(t, totals["m1"].LoanDue.IsNegative())
}

func TestReplay_ConservationUnderPureContributions(t *testing.T) {
	roster := []domain.Member{member("m1", "A", 1), member("m2", "B", 2)}
	history := []domain.HistoryEvent{
		contribution("A", 100),
		contribution("A", 200),
		contribution("B", 50),
	}

	totals := ledger.Replay(history, roster)

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Contributed)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(350)))
	assert.True(t, totals["m1"].Contributed.Equal(decimal.NewFromInt(300)))
	assert.True(t, totals["m2"].Contributed.Equal(decimal.NewFromInt(50)))
}

func TestReplay_EmptyHistoryZeroesLedger(t *testing.T) {
	roster := []domain.Member{
		{
			MemberID:          "m1",
			Name:              "A",
			Contributed:       decimal.NewFromInt(999),
			FoundationContrib: decimal.NewFromInt(999),
			LoanDue:           decimal.NewFromInt(999),
		},
	}

	totals := ledger.Replay(nil, roster)

	require.Contains(t, totals, "m1")
	assert.True(t, totals["m1"].Contributed.IsZero())
	assert.True(t, totals["m1"].FoundationContrib.IsZero())
	assert.True(t, totals["m1"].LoanDue.IsZero())
}

func TestReplay_UnknownMemberReferencesDropped(t *testing.T) {
	roster := []domain.Member{member("m1", "A", 1)}
	history := []domain.HistoryEvent{
		contribution("A", 100),
		contribution("Ghost", 9999),
	}

	totals := ledger.Replay(history, roster)

	require.Len(t, totals, 1)
	assert.True(t, totals["m1"].Contributed.Equal(decimal.NewFromInt(100)))
}

func TestReplay_LoanFallsBackToAmountWithoutTotalDue(t *testing.T) {
	roster := []domain.Member{member("m1", "A", 1)}
	history := []domain.HistoryEvent{
		{Type: domain.EventLoan, MemberName: "A", Amount: decimal.NewFromInt(700)},
	}

	totals := ledger.Replay(history, roster)

	assert.True(t, totals["m1"].LoanDue.Equal(decimal.NewFromInt(700)))
}

func TestReplay_RecordedFoundationSplit(t *testing.T) {
	roster := []domain.Member{member("m1", "A", 1)}
	foundationPart := decimal.NewFromInt(40)
	history := []domain.HistoryEvent{
		{
			Type:             domain.EventContribution,
			MemberName:       "A",
			Amount:           decimal.NewFromInt(100),
			FoundationAmount: &foundationPart,
		},
	}

	totals := ledger.Replay(history, roster)

	assert.True(t, totals["m1"].Contributed.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals["m1"].FoundationContrib.Equal(decimal.NewFromInt(40)))
}

func TestLoanTotalDue(t *testing.T) {
	tests := []struct {
		name            string
		amount          float64
		interestPercent float64
		want            string
	}{
		{"five percent", 1000, 5, "1050"},
		{"zero interest", 500, 0, "500"},
		{"fractional result rounds to cents", 100, 7.5, "107.5"},
		{"small principal", 33, 10, "36.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.LoanTotalDue(decimal.NewFromFloat(tt.amount), decimal.NewFromFloat(tt.interestPercent))
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "want %s got %s", want, got)
		})
	}
}

func TestLoanTotalDue_InterestDelta(t *testing.T) {
	amount := decimal.NewFromInt(1000)
	due := ledger.LoanTotalDue(amount, decimal.NewFromInt(5))
	assert.True(t, due.Sub(amount).Equal(decimal.NewFromInt(50)), "pool interest delta should be exactly 50")
}

func TestClampRepayment(t *testing.T) {
	assert.True(t, ledger.ClampRepayment(decimal.NewFromInt(80), decimal.NewFromInt(100)).IsZero())
	assert.True(t, ledger.ClampRepayment(decimal.NewFromInt(100), decimal.NewFromInt(80)).Equal(decimal.NewFromInt(20)))
	assert.True(t, ledger.ClampRepayment(decimal.Zero, decimal.NewFromInt(10)).IsZero())
}

func TestRotationOrder(t *testing.T) {
	roster := []domain.Member{
		member("m3", "C", 3),
		member("m1", "A", 1),
		member("m2", "B", 2),
	}

	slots := ledger.RotationOrder(roster, 1)

	require.Len(t, slots, 3)
	assert.Equal(t, "A", slots[0].Member.Name)
	assert.Equal(t, "B", slots[1].Member.Name)
	assert.Equal(t, "C", slots[2].Member.Name)
	assert.False(t, slots[0].IsNext)
	assert.True(t, slots[1].IsNext)
	assert.False(t, slots[2].IsNext)
}

func TestRotationOrder_OutOfRangeFlagsNobody(t *testing.T) {
	roster := []domain.Member{member("m1", "A", 1), member("m2", "B", 2)}

	for _, idx := range []int{-1, 2, 50} {
		slots := ledger.RotationOrder(roster, idx)
		require.Len(t, slots, 2)
		for _, s := range slots {
			assert.False(t, s.IsNext, "index %d must flag nobody", idx)
		}
	}
}

func TestRotationOrder_EmptyRoster(t *testing.T) {
	slots := ledger.RotationOrder(nil, 0)
	assert.Empty(t, slots)
}

func TestNextIndexAfterPayout(t *testing.T) {
	assert.Equal(t, 1, ledger.NextIndexAfterPayout(0, 3))
	assert.Equal(t, 2, ledger.NextIndexAfterPayout(1, 3))
	assert.Equal(t, 0, ledger.NextIndexAfterPayout(2, 3), "pointer wraps after the last member")
	assert.Equal(t, 0, ledger.NextIndexAfterPayout(0, 0))
	assert.Equal(t, 0, ledger.NextIndexAfterPayout(-5, 3))
}
