package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	prefixOrder       = "ORD"
	prefixInvoice     = "INV"
	prefixReport      = "RPT"
	prefixTicket      = "TKT"
	prefixTransaction = "TXN"
)

// newID returns an identifier in the format <PREFIX>-XXXXXXXX.
func newID(prefix string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%08X", prefix, time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("%s-%08X", prefix, b)
}
