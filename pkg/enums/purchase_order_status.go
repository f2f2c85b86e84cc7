package enums

import "fmt"

// PurchaseOrderStatus tracks the fulfillment lifecycle of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusNew             PurchaseOrderStatus = "new"
	PurchaseOrderStatusAccepted        PurchaseOrderStatus = "accepted"
	PurchaseOrderStatusInProgress      PurchaseOrderStatus = "in_progress"
	PurchaseOrderStatusInvoiced        PurchaseOrderStatus = "invoiced"
	PurchaseOrderStatusShipped         PurchaseOrderStatus = "shipped"
	PurchaseOrderStatusPaymentReceived PurchaseOrderStatus = "payment_received"
	PurchaseOrderStatusCompleted       PurchaseOrderStatus = "completed"
	PurchaseOrderStatusCancelled       PurchaseOrderStatus = "cancelled"
	// Declined and BackOrdered exist in the persisted vocabulary only; no
	// fulfillment transition may enter them.
	PurchaseOrderStatusDeclined    PurchaseOrderStatus = "declined"
	PurchaseOrderStatusBackOrdered PurchaseOrderStatus = "back_ordered"
)

var validPurchaseOrderStatuses = []PurchaseOrderStatus{
	PurchaseOrderStatusNew,
	PurchaseOrderStatusAccepted,
	PurchaseOrderStatusInProgress,
	PurchaseOrderStatusInvoiced,
	PurchaseOrderStatusShipped,
	PurchaseOrderStatusPaymentReceived,
	PurchaseOrderStatusCompleted,
	PurchaseOrderStatusCancelled,
	PurchaseOrderStatusDeclined,
	PurchaseOrderStatusBackOrdered,
}

// String implements fmt.Stringer.
func (p PurchaseOrderStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PurchaseOrderStatus.
func (p PurchaseOrderStatus) IsValid() bool {
	for _, candidate := range validPurchaseOrderStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePurchaseOrderStatus converts raw input into a PurchaseOrderStatus.
func ParsePurchaseOrderStatus(value string) (PurchaseOrderStatus, error) {
	for _, candidate := range validPurchaseOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchase order status %q", value)
}
