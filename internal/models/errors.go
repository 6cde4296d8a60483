package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the pipeline.
var (
	// ErrParticipantNotFound indicates the player is absent from a match payload.
	ErrParticipantNotFound = errors.New("participant not found in match")

	// ErrNoTimelineData indicates a match has no usable timeline frames.
	ErrNoTimelineData = errors.New("no timeline data for match")
)

// MissingFieldError reports an extraction input missing a required raw
// field. Fatal for that match only; batch processing skips and reports.
type MissingFieldError struct {
	MatchID string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("match %s: missing required field %q", e.MatchID, e.Field)
}

// InsufficientDataError reports a training attempt with too little labeled
// history. Fatal for that attempt; never downgraded to a default model.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient training data: have %d labeled matches, need %d", e.Have, e.Need)
}

// DegenerateLabelError reports a single-class history (all wins or all
// losses), which cannot produce a meaningful classifier.
type DegenerateLabelError struct {
	Wins   int
	Losses int
}

func (e *DegenerateLabelError) Error() string {
	return fmt.Sprintf("degenerate label distribution: %d wins, %d losses", e.Wins, e.Losses)
}
