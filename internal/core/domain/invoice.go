package domain

import (
	"errors"
	"time"
)

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "Pending"
	InvoicePaid    InvoiceStatus = "Paid"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrEmptyInvoice    = errors.New("invoice requires at least one line item")
	ErrInvalidLineItem = errors.New("line items need a description and a non-negative quantity and unit price")
)

type LineItem struct {
	Description string `json:"description" bson:"description"`
	Quantity    int    `json:"quantity" bson:"quantity"`
	UnitPrice   Money  `json:"unit_price" bson:"unit_price"`
	Total       Money  `json:"total" bson:"total"`
}

type Invoice struct {
	ID        string        `json:"id" bson:"_id"`
	ClientID  string        `json:"client_id" bson:"client_id"`
	Date      time.Time     `json:"date" bson:"date"`
	DueDate   time.Time     `json:"due_date" bson:"due_date"`
	Amount    Money         `json:"amount" bson:"amount"`
	Status    InvoiceStatus `json:"status" bson:"status"`
	LineItems []LineItem    `json:"line_items" bson:"line_items"`
}

// NewInvoice builds a pending invoice. Line totals and the invoice amount are
// computed here so that Amount always equals the sum of line totals; a total
// that does not fit in Money fails with ErrAmountTooLarge.
func NewInvoice(id, clientID string, date, due time.Time, items []LineItem) (*Invoice, error) {
	if len(items) == 0 {
		return nil, ErrEmptyInvoice
	}
	inv := &Invoice{
		ID:        id,
		ClientID:  clientID,
		Date:      date,
		DueDate:   due,
		Status:    InvoicePending,
		LineItems: make([]LineItem, 0, len(items)),
	}
	for _, it := range items {
		if it.Description == "" || it.Quantity < 0 || it.UnitPrice < 0 {
			return nil, ErrInvalidLineItem
		}
		total, err := it.UnitPrice.Times(it.Quantity)
		if err != nil {
			return nil, err
		}
		amount, err := inv.Amount.Add(total)
		if err != nil {
			return nil, err
		}
		it.Total = total
		inv.Amount = amount
		inv.LineItems = append(inv.LineItems, it)
	}
	return inv, nil
}
