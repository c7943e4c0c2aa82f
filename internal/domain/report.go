package domain

import "time"

// ReportType names the kinds of advisory report the service assembles.
type ReportType string

const (
	ReportNeedsAnalysis  ReportType = "needs_analysis"
	ReportRecommendation ReportType = "recommendation"
	ReportComparison     ReportType = "comparison"
)

// Report is a stored advisory document. Reference is an opaque unique id
// handed to the caller for later retrieval; Content is the rendered JSON
// body.
type Report struct {
	ID          int64      `json:"id,omitempty"`
	Reference   string     `json:"reference"`
	CustomerID  int64      `json:"customer_id"`
	ReportType  ReportType `json:"report_type"`
	Content     string     `json:"content"`
	GeneratedAt time.Time  `json:"generated_at"`
}
