package domain

import (
	"errors"
	"time"
)

type ReportStatus string

const (
	ReportDraft ReportStatus = "Draft"
	ReportSent  ReportStatus = "Sent"
)

var ErrReportNotFound = errors.New("report not found")

type Report struct {
	ID       string       `json:"id" bson:"_id"`
	ClientID string       `json:"client_id" bson:"client_id"`
	Title    string       `json:"title" bson:"title"`
	Date     time.Time    `json:"date" bson:"date"`
	Status   ReportStatus `json:"status" bson:"status"`
	Content  string       `json:"content" bson:"content"`
}

// Send moves a draft to Sent. It reports false when the report was already
// sent, in which case nothing changes.
func (r *Report) Send() bool {
	if r.Status == ReportSent {
		return false
	}
	r.Status = ReportSent
	return true
}

// VisibleTo reports whether the actor may read the report. Clients only see
// their own sent reports.
func (r *Report) VisibleTo(a Actor) bool {
	if a.IsAdmin() {
		return true
	}
	return r.ClientID == a.ID && r.Status == ReportSent
}
