package handler

import (
	"strings"
	"testing"

	"github.com/copebusiness/portal/internal/core/domain"
)

func TestValidator_MessagesUseJSONNamesAndDecimalBounds(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		req  any
		want string
	}{
		{"top-up over the limit", &addFundsRequest{Amount: domain.MaxTopUp + 1, PaymentMethod: "card"}, "amount must be at most 1000000.00"},
		{"negative top-up", &addFundsRequest{Amount: -1000, PaymentMethod: "card"}, "amount must be greater than 0.00"},
		{"progress out of range", &updateProgressRequest{Progress: intPtr(101)}, "progress must be at most 100"},
		{"quantity over the limit", &lineItemRequest{Description: "x", Quantity: 1_000_001}, "quantity must be at most 1000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

func intPtr(n int) *int { return &n }
