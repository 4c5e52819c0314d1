package model

// TaskStatus represents the status of a conversion task
type TaskStatus string

const (
	// TaskStatusPending means the task was accepted but work has not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusVerifying means a human-verification token is being obtained
	TaskStatusVerifying TaskStatus = "Verifying"

	// TaskStatusUploading means the conversion request is on the wire
	TaskStatusUploading TaskStatus = "Uploading"

	// TaskStatusCompleted means the converted file was saved successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true while the task is in flight. Re-submission is
// disallowed for the whole interval between acceptance and resolution.
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusPending || ts == TaskStatusVerifying || ts == TaskStatusUploading
}

// IsFinished returns true if the task is in a terminal state
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
