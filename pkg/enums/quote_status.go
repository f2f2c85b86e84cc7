package enums

import "fmt"

// QuoteStatus tracks the lifecycle of a quote request.
type QuoteStatus string

const (
	QuoteStatusNoRequest QuoteStatus = "no_request"
	QuoteStatusNew       QuoteStatus = "new"
	// QuoteStatusPending and QuoteStatusPendingActivation are carried in the
	// vocabulary for persisted legacy rows but have no inbound transitions.
	QuoteStatusPending           QuoteStatus = "pending"
	QuoteStatusPendingActivation QuoteStatus = "pending_activation"
	QuoteStatusRequested         QuoteStatus = "requested"
	QuoteStatusResponded         QuoteStatus = "responded"
	QuoteStatusAccepted          QuoteStatus = "accepted"
	QuoteStatusDeclined          QuoteStatus = "declined"
	QuoteStatusCancelled         QuoteStatus = "cancelled"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusNoRequest,
	QuoteStatusNew,
	QuoteStatusPending,
	QuoteStatusPendingActivation,
	QuoteStatusRequested,
	QuoteStatusResponded,
	QuoteStatusAccepted,
	QuoteStatusDeclined,
	QuoteStatusCancelled,
}

// String implements fmt.Stringer.
func (q QuoteStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuoteStatus.
func (q QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further negotiation transitions can leave the state.
func (q QuoteStatus) IsTerminal() bool {
	switch q {
	case QuoteStatusAccepted, QuoteStatusDeclined, QuoteStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
