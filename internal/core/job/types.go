package job

import "time"

// Job is the tracked state of one asynchronous scrape run.
type Job struct {
	RunID     string     `json:"runId"`
	Type      Type       `json:"type"`
	Status    Status     `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Type string

const (
	TypeScrape Type = "scrape"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Finished reports whether the job reached a terminal status.
func (s Status) Finished() bool { return s == StatusCompleted || s == StatusFailed }

type RunResult struct {
	Trends      []string  `json:"trends"`
	IPAddress   string    `json:"ipAddress"`
	CreatedAt   time.Time `json:"createdAt"`
	Padded      int       `json:"padded"`
	SnapshotURL string    `json:"snapshotUrl,omitempty"`
}
