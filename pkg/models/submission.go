package models

import "time"

// Submission statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Submission is a user-submitted reference image as stored locally.
// Tags keep the order the associations were inserted in.
type Submission struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ImageURL        string    `json:"image_url"`
	SourceURL       string    `json:"source_url,omitempty"`
	SourcePlatform  string    `json:"source_platform,omitempty"`
	Credits         string    `json:"credits,omitempty"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
