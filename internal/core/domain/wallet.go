package domain

import (
	"errors"
	"time"
)

var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrPurchaseInProgress   = errors.New("a purchase with this idempotency key is in progress")
)

// MaxTopUp is the largest single wallet credit, $1,000,000.
const MaxTopUp = Money(100_000_000)

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPayPal PaymentMethod = "paypal"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCard || p == PaymentPayPal
}

type TransactionType string

const (
	TxPayment        TransactionType = "Payment"
	TxOrderDeduction TransactionType = "Order Deduction"
)

// WalletTransaction is one ledger line. Amount is signed: deductions are
// negative. BalanceAfter is the wallet balance once the line was applied.
type WalletTransaction struct {
	ID           string          `json:"id" bson:"_id"`
	ClientID     string          `json:"client_id" bson:"client_id"`
	Date         time.Time       `json:"date" bson:"date"`
	Description  string          `json:"description" bson:"description"`
	Type         TransactionType `json:"type" bson:"type"`
	Amount       Money           `json:"amount" bson:"amount"`
	BalanceAfter Money           `json:"balance_after" bson:"balance_after"`
	OrderID      string          `json:"order_id,omitempty" bson:"order_id,omitempty"`
}
