package model

import (
	"time"

	"github.com/google/uuid"
)

// Video id is the 11-character YouTube video id extracted from the
// submitted URL. It is the primary key, so a video can only be submitted
// once across the whole collection.
type Video struct {
	ID  string `json:"id" db:"id"`
	Seq int64  `json:"-" db:"seq"` // insertion order, scheduler tie-break

	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	IsDefault   bool       `json:"is_default" db:"is_default"`
	Views       int64      `json:"views" db:"views"`
	Duration    int        `json:"duration" db:"duration"` // seconds, informational
	SubmittedBy *uuid.UUID `json:"submitted_by,omitempty" db:"submitted_by"`
	SubmittedAt time.Time  `json:"submitted_at" db:"submitted_at"`
}

// PlayerState holds the per-user current video pointer. The playlist itself
// is never stored, it is recomputed from the video collection on every read.
type PlayerState struct {
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	CurrentVideoID *string   `json:"current_video_id,omitempty" db:"current_video_id"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
