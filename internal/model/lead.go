package model

import "time"

// Lead is a submitted form as the agency sees it.
type Lead struct {
	LeadID       int64
	Reference    string
	ChatID       int64
	Username     string
	Intent       string
	Location     string
	Block        string
	PropertyType string
	Size         string
	Message      string
	Link         string
	DtCreate     time.Time
}
