package types

import "time"

// Email represents a full email message fetched from the host
type Email struct {
	ID            string    `json:"id"`
	UID           uint32    `json:"uid"`
	Subject       string    `json:"subject"`
	From          string    `json:"from"`
	To            []string  `json:"to"`
	Date          time.Time `json:"date"`
	Body          string    `json:"body"`
	HTMLBody      string    `json:"html_body,omitempty"`
	Folder        string    `json:"folder"`
	Flags         []string  `json:"flags"`
	IsRead        bool      `json:"is_read"`
	IsStarred     bool      `json:"is_starred"`
	Category      string    `json:"category,omitempty"`
	HasAttachment bool      `json:"has_attachment"`
	Size          uint64    `json:"size"`
}

// EmailSummary represents a single row of a folder listing
type EmailSummary struct {
	ID            string `json:"id"`
	UID           uint32 `json:"uid"`
	Subject       string `json:"subject"`
	From          string `json:"from"`
	Date          string `json:"date"`
	IsRead        bool   `json:"is_read"`
	IsStarred     bool   `json:"is_starred"`
	HasAttachment bool   `json:"has_attachment"`
	Category      string `json:"category,omitempty"`
	Preview       string `json:"preview"`
	Body          string `json:"body"`
}

// Email categories assigned by AI classification
const (
	CategorySpam         = "spam"
	CategoryAds          = "ads"
	CategorySubscription = "subscription"
	CategoryWork         = "work"
	CategoryPersonal     = "personal"
	CategoryOther        = "other"
)
