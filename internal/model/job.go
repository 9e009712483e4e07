package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task ID prefix
const (
	JobIDPrefix = "job-"
)

// MediaType distinguishes video and audio work.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

// Job is one unit of download or conversion work. Index records the job's
// position in the input list so the batch result can be rebuilt in input
// order regardless of completion order. A Job is immutable once dispatched.
type Job struct {
	ID           string
	Index        int
	Input        string // file path or media URL
	Title        string // display title, when known before dispatch
	TargetFormat string // format alias, empty means keep the container as-is
	OutputDir    string
	CreatedAt    time.Time
}

// NewJob creates a job for the given position in the input list.
func NewJob(index int, input string) Job {
	return Job{
		ID:        generateJobID(),
		Index:     index,
		Input:     input,
		CreatedAt: time.Now(),
	}
}

// DisplayName returns the title when known, otherwise the input's file name,
// otherwise the raw input.
func (j Job) DisplayName() string {
	if j.Title != "" {
		return j.Title
	}
	if j.Input != "" && !strings.HasPrefix(j.Input, "http") {
		parts := strings.FieldsFunc(j.Input, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}
	return j.Input
}

// generateJobID generates a unique job ID using UUID v7 for better uniqueness
// and time ordering.
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
