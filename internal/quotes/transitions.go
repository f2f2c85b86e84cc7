package quotes

import (
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
)

// Operation names a quote lifecycle action.
type Operation string

const (
	OpActivate      Operation = "activate"
	OpBuyerRequest  Operation = "buyer_request"
	OpSellerRespond Operation = "seller_respond"
	OpBuyerCounter  Operation = "buyer_counter"
	OpSellerRevise  Operation = "seller_revise"
	OpBuyerAccept   Operation = "buyer_accept"
)

type transition struct {
	From enums.QuoteStatus
	To   enums.QuoteStatus
}

// transitionTable is the single source of truth for gated quote transitions.
// Decline and cancel are escape hatches legal from any state and are not
// listed here. The revise operation is a deliberate self-loop.
var transitionTable = map[Operation]transition{
	OpActivate:      {From: enums.QuoteStatusNoRequest, To: enums.QuoteStatusNew},
	OpBuyerRequest:  {From: enums.QuoteStatusNew, To: enums.QuoteStatusRequested},
	OpSellerRespond: {From: enums.QuoteStatusRequested, To: enums.QuoteStatusResponded},
	OpBuyerCounter:  {From: enums.QuoteStatusResponded, To: enums.QuoteStatusRequested},
	OpSellerRevise:  {From: enums.QuoteStatusResponded, To: enums.QuoteStatusResponded},
	OpBuyerAccept:   {From: enums.QuoteStatusResponded, To: enums.QuoteStatusAccepted},
}

// nextStatus validates the operation against the current status and returns
// the target status. Unknown operations and wrong predecessors both fail with
// a state-conflict error naming the attempted states.
func nextStatus(op Operation, current enums.QuoteStatus) (enums.QuoteStatus, error) {
	t, ok := transitionTable[op]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict, "unknown quote operation "+string(op))
	}
	if current != t.From {
		return "", pkgerrors.NewInvalidTransition(current.String(), t.To.String())
	}
	return t.To, nil
}
