package leads

import (
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
)

// Operation names a lead lifecycle action.
type Operation string

const (
	OpOpen              Operation = "open"
	OpConvert           Operation = "convert"
	OpForward           Operation = "forward"
	OpDistributorAccept Operation = "distributor_accept"
	OpDistributorReject Operation = "distributor_reject"
)

type transition struct {
	From enums.LeadStatus
	To   enums.LeadStatus
}

// transitionTable is the single source of truth for lead transitions. The
// forward operation additionally fans out a child lead; that side effect
// lives in the service, the table only gates the parent's status change.
var transitionTable = map[Operation]transition{
	OpOpen:              {From: enums.LeadStatusNoLead, To: enums.LeadStatusNew},
	OpConvert:           {From: enums.LeadStatusNew, To: enums.LeadStatusConverted},
	OpForward:           {From: enums.LeadStatusNew, To: enums.LeadStatusForwarded},
	OpDistributorAccept: {From: enums.LeadStatusSentToDistributor, To: enums.LeadStatusAcceptedByDistributor},
	OpDistributorReject: {From: enums.LeadStatusSentToDistributor, To: enums.LeadStatusRejectedByDistributor},
}

func nextStatus(op Operation, current enums.LeadStatus) (enums.LeadStatus, error) {
	t, ok := transitionTable[op]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict, "unknown lead operation "+string(op))
	}
	if current != t.From {
		return "", pkgerrors.NewInvalidTransition(current.String(), t.To.String())
	}
	return t.To, nil
}
