package models

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// MaxCommentLength is the longest workflow comment accepted, in characters
const MaxCommentLength = 500

var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule is when a page should go live and when it should come down
// again. A zero time means no date.
type Schedule struct {
	PublishAt time.Time
	RemoveAt  time.Time
	Comment   string
}

// Schedule returns the page's current schedule
func (p *Page) Schedule() Schedule {
	var s Schedule
	if p.PublishAt != nil {
		s.PublishAt = *p.PublishAt
	}
	if p.RemoveAt != nil {
		s.RemoveAt = *p.RemoveAt
	}
	s.Comment = p.Comment
	return s
}

// ApplySchedule stores s on the page; zero dates clear the fields
func (p *Page) ApplySchedule(s Schedule) {
	p.PublishAt = timePtr(s.PublishAt)
	p.RemoveAt = timePtr(s.RemoveAt)
	p.Comment = s.Comment
}

// Validate checks the date range and the comment length. Publish and
// removal dates must differ, and publishing must come first.
func (s Schedule) Validate() error {
	if !s.PublishAt.IsZero() && !s.RemoveAt.IsZero() {
		if s.PublishAt.Equal(s.RemoveAt) {
			return fmt.Errorf("%w: publish and removal dates are the same", ErrInvalidSchedule)
		}
		if s.PublishAt.After(s.RemoveAt) {
			return fmt.Errorf("%w: publish date is after the removal date", ErrInvalidSchedule)
		}
	}
	if n := utf8.RuneCountInString(s.Comment); n > MaxCommentLength {
		return fmt.Errorf("%w: comment is %d characters, the limit is %d", ErrInvalidSchedule, n, MaxCommentLength)
	}
	return nil
}

// Empty reports whether the schedule has neither date
func (s Schedule) Empty() bool {
	return s.PublishAt.IsZero() && s.RemoveAt.IsZero()
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
