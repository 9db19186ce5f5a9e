package domain

import (
	"time"

	"github.com/google/uuid"
)

// FetchStatus represents the current status of a fetch record
type FetchStatus string

const (
	StatusProcessing FetchStatus = "processing"
	StatusCompleted  FetchStatus = "completed"
	StatusFailed     FetchStatus = "failed"
)

// FetchRecord is the history entry for one download-stream request
type FetchRecord struct {
	ID           string      `json:"id" gorm:"primaryKey"`
	URL          string      `json:"url" gorm:"not null"`
	Strategy     string      `json:"strategy" gorm:"not null"`
	Filename     string      `json:"filename,omitempty"`
	Status       FetchStatus `json:"status" gorm:"not null;index"`
	Cached       bool        `json:"cached"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
}

// NewFetchRecord creates a record for a freshly accepted request
func NewFetchRecord(url, strategy string) *FetchRecord {
	return &FetchRecord{
		ID:        uuid.New().String(),
		URL:       url,
		Strategy:  strategy,
		Status:    StatusProcessing,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// MarkCompleted marks the fetch as completed
func (r *FetchRecord) MarkCompleted(filename string, cached bool) {
	r.Status = StatusCompleted
	r.Filename = filename
	r.Cached = cached
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// MarkFailed marks the fetch as failed
func (r *FetchRecord) MarkFailed(err error) {
	r.Status = StatusFailed
	r.ErrorMessage = err.Error()
	r.UpdatedAt = time.Now()
}

// IsTerminal checks if the record is in a terminal state
func (r *FetchRecord) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// ValidateStatus checks if a fetch status is valid
func ValidateStatus(status FetchStatus) bool {
	return status == StatusProcessing || status == StatusCompleted || status == StatusFailed
}
