package notify

import (
	"fmt"
	"time"
)

type EventType string

const (
	EventStart          EventType = "start"
	EventSuccess        EventType = "success"
	EventPartialFailure EventType = "partial-failure"
	EventFailure        EventType = "failure"
	EventSkippedOverlap EventType = "skipped-overlap"
)

// Event is one lifecycle notification for a job run. Producers emit these
// fire-and-forget; no run ever waits on, retries, or fails because of
// delivery.
type Event struct {
	Type    EventType `json:"event"`
	Job     string    `json:"job"`
	RunTime time.Time `json:"run_timestamp"`
	// Detail carries the error summary on failure events.
	Detail    string `json:"detail,omitempty"`
	Succeeded int    `json:"succeeded,omitempty"`
	Failed    int    `json:"failed,omitempty"`
}

// IsError reports whether the event describes a failed or partially failed
// run.
func (e Event) IsError() bool {
	return e.Type == EventFailure || e.Type == EventPartialFailure
}

// Message renders the one-line human form used by the notification sinks.
func (e Event) Message() string {
	switch e.Type {
	case EventStart:
		return fmt.Sprintf("⏳ Backup started: %s", e.Job)
	case EventSuccess:
		return fmt.Sprintf("✅ Backup done: %s (%d files)", e.Job, e.Succeeded)
	case EventPartialFailure:
		return fmt.Sprintf("⚠️ Backup partially failed: %s (%d copied, %d failed): %s",
			e.Job, e.Succeeded, e.Failed, e.Detail)
	case EventFailure:
		return fmt.Sprintf("❌ Backup failed: %s: %s", e.Job, e.Detail)
	case EventSkippedOverlap:
		return fmt.Sprintf("⏭️ Backup skipped: %s (previous run still active)", e.Job)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Job)
	}
}
