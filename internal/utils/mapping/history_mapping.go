package mapping

import (
	"fmt"
	"strings"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// History rows have shipped under several column layouts over the life of
// the app. Each logical field declares its recognized aliases, resolved
// once per batch into the canonical domain.HistoryEvent.
var historyFieldAliases = map[string][]string{
	"id":               {"id", "event_id"},
	"type":             {"type", "event_type"},
	"member":           {"member", "member_name"},
	"amount":           {"amount", "value"},
	"total_due":        {"total_due", "due_total"},
	"interest_percent": {"interest_percent", "interest"},
	"foundation":       {"foundation_amount", "foundation_part"},
	"created_at":       {"created_at", "timestamp"},
}

// resolveHistoryColumns maps logical field names to the actual column names
// present in the row set. Fields with no matching column are absent from the
// result.
func resolveHistoryColumns(columns map[string]struct{}) map[string]string {
	resolved := make(map[string]string, len(historyFieldAliases))
	for field, aliases := range historyFieldAliases {
		for _, alias := range aliases {
			if _, ok := columns[alias]; ok {
				resolved[field] = alias
				break
			}
		}
	}
	return resolved
}

// NormalizeHistoryRows converts raw history rows into canonical events.
// Type tags are lower-cased, amount-like fields coerce to numeric (failures
// become zero), and member references coerce to string identity. If the row
// set cannot supply a type, member, and amount column, it returns
// apperrors.ErrSchemaInsufficient and no events.
func NormalizeHistoryRows(rows []map[string]any) ([]domain.HistoryEvent, error) {
	if len(rows) == 0 {
		return []domain.HistoryEvent{}, nil
	}

	columns := make(map[string]struct{})
	for col := range rows[0] {
		columns[strings.ToLower(col)] = struct{}{}
	}
	resolved := resolveHistoryColumns(columns)

	for _, required := range []string{"type", "member", "amount"} {
		if _, ok := resolved[required]; !ok {
			return nil, fmt.Errorf("missing %s column: %w", required, apperrors.ErrSchemaInsufficient)
		}
	}

	events := make([]domain.HistoryEvent, 0, len(rows))
	for _, row := range rows {
		lowered := make(map[string]any, len(row))
		for col, v := range row {
			lowered[strings.ToLower(col)] = v
		}

		ev := domain.HistoryEvent{
			Type:       domain.EventType(strings.ToLower(coerceString(lowered[resolved["type"]]))),
			MemberName: coerceString(lowered[resolved["member"]]),
			Amount:     coerceDecimal(lowered[resolved["amount"]]),
		}

		if col, ok := resolved["id"]; ok {
			ev.EventID = coerceString(lowered[col])
		}
		if col, ok := resolved["total_due"]; ok {
			if _, present := lowered[col]; present && lowered[col] != nil {
				ev.TotalDue = coerceDecimal(lowered[col])
				ev.HasTotalDue = true
			}
		}
		if col, ok := resolved["interest_percent"]; ok {
			ev.InterestPercent = coerceDecimal(lowered[col])
		}
		if col, ok := resolved["foundation"]; ok {
			if v, present := lowered[col]; present && v != nil {
				f := coerceDecimal(v)
				ev.FoundationAmount = &f
			}
		}
		if col, ok := resolved["created_at"]; ok {
			ev.CreatedAt = coerceTime(lowered[col])
		}

		events = append(events, ev)
	}

	return events, nil
}

// coerceDecimal converts an amount-like value to a decimal; anything
// unparseable becomes zero rather than an error.
func coerceDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case float64:
		return decimal.NewFromFloat(val)
	case float32:
		return decimal.NewFromFloat32(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int32:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case []byte:
		return parseDecimalString(string(val))
	case string:
		return parseDecimalString(val)
	case fmt.Stringer:
		return parseDecimalString(val.String())
	default:
		return decimal.Zero
	}
}

func parseDecimalString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// coerceTime parses time-like values; failures become the zero time.
func coerceTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, val); err == nil {
				return ts
			}
		}
	}
	return time.Time{}
}
