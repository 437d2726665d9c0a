package domain

import (
	"errors"
	"time"
)

type TicketStatus string

const (
	TicketOpen     TicketStatus = "Open"
	TicketResolved TicketStatus = "Resolved"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "Low"
	PriorityMedium TicketPriority = "Medium"
	PriorityHigh   TicketPriority = "High"
)

func (p TicketPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// SupportAuthor is the author shown on messages posted by admins.
const SupportAuthor = "Admin"

var (
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrTicketResolved    = errors.New("ticket is resolved")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyMessage      = errors.New("message must not be empty")
)

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketOpen:     {TicketResolved},
	TicketResolved: {TicketOpen},
}

func (s TicketStatus) Valid() bool {
	_, ok := ticketTransitions[s]
	return ok
}

// CanTransitionTo reports whether an admin may move a ticket from s to next.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Message struct {
	Author    string    `json:"author" bson:"author"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Message   string    `json:"message" bson:"message"`
	IsSupport bool      `json:"is_support" bson:"is_support"`
}

type Ticket struct {
	ID          string         `json:"id" bson:"_id"`
	ClientID    string         `json:"client_id" bson:"client_id"`
	ClientName  string         `json:"client_name" bson:"client_name"`
	Subject     string         `json:"subject" bson:"subject"`
	Status      TicketStatus   `json:"status" bson:"status"`
	Priority    TicketPriority `json:"priority" bson:"priority"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	LastUpdated time.Time      `json:"last_updated" bson:"last_updated"`
	Messages    []Message      `json:"messages" bson:"messages"`
}

// Append adds a message. Clients may only reply while the ticket is open;
// support may reply at any time.
func (t *Ticket) Append(m Message) error {
	if m.Message == "" {
		return ErrEmptyMessage
	}
	if !m.IsSupport && t.Status != TicketOpen {
		return ErrTicketResolved
	}
	t.Messages = append(t.Messages, m)
	t.LastUpdated = m.Timestamp
	return nil
}

// SetStatus applies an admin status change. Setting the current status is a
// no-op and reports false.
func (t *Ticket) SetStatus(next TicketStatus, at time.Time) (bool, error) {
	if t.Status == next {
		return false, nil
	}
	if !t.Status.CanTransitionTo(next) {
		return false, ErrInvalidTransition
	}
	t.Status = next
	t.LastUpdated = at
	return true, nil
}
