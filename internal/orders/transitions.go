package orders

import (
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
)

// predecessorTable drives the strictly linear fulfillment chain: each target
// status has exactly one legal predecessor. Cancel is not listed; it is an
// unconditional escape from any state. The declined and back_ordered
// vocabulary entries have no inbound edge on purpose.
var predecessorTable = map[enums.PurchaseOrderStatus]enums.PurchaseOrderStatus{
	enums.PurchaseOrderStatusAccepted:        enums.PurchaseOrderStatusNew,
	enums.PurchaseOrderStatusInProgress:      enums.PurchaseOrderStatusAccepted,
	enums.PurchaseOrderStatusInvoiced:        enums.PurchaseOrderStatusInProgress,
	enums.PurchaseOrderStatusShipped:         enums.PurchaseOrderStatusInvoiced,
	enums.PurchaseOrderStatusPaymentReceived: enums.PurchaseOrderStatusShipped,
	enums.PurchaseOrderStatusCompleted:       enums.PurchaseOrderStatusPaymentReceived,
}

// validateTransition checks that current is the single legal predecessor of
// target.
func validateTransition(current, target enums.PurchaseOrderStatus) error {
	from, ok := predecessorTable[target]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "status "+target.String()+" is not reachable")
	}
	if current != from {
		return pkgerrors.NewInvalidTransition(current.String(), target.String())
	}
	return nil
}
