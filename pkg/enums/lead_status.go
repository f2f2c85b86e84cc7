package enums

import "fmt"

// LeadStatus tracks the pre-quote sales funnel.
type LeadStatus string

const (
	LeadStatusNoLead                LeadStatus = "no_lead"
	LeadStatusNew                   LeadStatus = "new"
	LeadStatusConverted             LeadStatus = "converted"
	LeadStatusForwarded             LeadStatus = "forwarded"
	LeadStatusSentToDistributor     LeadStatus = "sent_to_distributor"
	LeadStatusAcceptedByDistributor LeadStatus = "accepted_by_distributor"
	LeadStatusRejectedByDistributor LeadStatus = "rejected_by_distributor"
)

var validLeadStatuses = []LeadStatus{
	LeadStatusNoLead,
	LeadStatusNew,
	LeadStatusConverted,
	LeadStatusForwarded,
	LeadStatusSentToDistributor,
	LeadStatusAcceptedByDistributor,
	LeadStatusRejectedByDistributor,
}

// String implements fmt.Stringer.
func (l LeadStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LeadStatus.
func (l LeadStatus) IsValid() bool {
	for _, candidate := range validLeadStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLeadStatus converts raw input into a LeadStatus.
func ParseLeadStatus(value string) (LeadStatus, error) {
	for _, candidate := range validLeadStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead status %q", value)
}
