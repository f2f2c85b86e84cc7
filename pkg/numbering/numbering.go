// Package numbering generates human-readable document numbers for quotes and
// purchase orders. Numbers combine a millisecond timestamp with a random
// suffix so concurrent callers cannot collide; the database unique index on
// the number column is the final guard.
package numbering

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	QuotePrefix         = "QT"
	PurchaseOrderPrefix = "PO"

	suffixBytes = 3
)

// NewQuoteNumber returns a fresh quote request number.
func NewQuoteNumber() string {
	return generate(QuotePrefix)
}

// NewPurchaseOrderNumber returns a fresh purchase order number.
func NewPurchaseOrderNumber() string {
	return generate(PurchaseOrderPrefix)
}

func generate(prefix string) string {
	buf := make([]byte, suffixBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// nanoseconds rather than panic in a request path.
		return fmt.Sprintf("%s-%d-%06x", prefix, time.Now().UnixMilli(), time.Now().UnixNano()%0xffffff)
	}
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(buf))
}
