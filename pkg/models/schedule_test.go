package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestScheduleValidate(t *testing.T) {
	publish := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		sched   Schedule
		wantErr bool
	}{
		{"empty", Schedule{}, false},
		{"publish only", Schedule{PublishAt: publish}, false},
		{"removal only", Schedule{RemoveAt: publish}, false},
		{"ordered range", Schedule{PublishAt: publish, RemoveAt: publish.Add(time.Hour)}, false},
		{"equal dates", Schedule{PublishAt: publish, RemoveAt: publish}, true},
		{"inverted range", Schedule{PublishAt: publish.Add(time.Hour), RemoveAt: publish}, true},
		{"comment at limit", Schedule{Comment: strings.Repeat("é", MaxCommentLength)}, false},
		{"comment too long", Schedule{Comment: strings.Repeat("a", MaxCommentLength+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sched.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSchedule) {
					t.Errorf("Validate() = %v, want ErrInvalidSchedule", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestPageScheduleRoundTrip(t *testing.T) {
	at := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	page := &Page{}
	page.ApplySchedule(Schedule{RemoveAt: at, Comment: "summer sale ends"})

	if page.PublishAt != nil {
		t.Errorf("PublishAt = %v, want nil", page.PublishAt)
	}
	if page.RemoveAt == nil || !page.RemoveAt.Equal(at) {
		t.Errorf("RemoveAt = %v, want %v", page.RemoveAt, at)
	}

	got := page.Schedule()
	if !got.RemoveAt.Equal(at) || !got.PublishAt.IsZero() || got.Comment != "summer sale ends" {
		t.Errorf("Schedule() = %+v", got)
	}
}
