package models

import (
	"errors"
	"testing"
)

func TestParseResourceKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ResourceKind
		wantErr bool
	}{
		{"singular page", "page", KindPage, false},
		{"plural templates", "templates", KindTemplate, false},
		{"mixed case asset", " Asset ", KindAsset, false},
		{"object", "objects", KindObject, false},
		{"unknown", "widget", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResourceKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseResourceKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownKind) {
				t.Errorf("expected ErrUnknownKind, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseResourceKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResourceKindLabel(t *testing.T) {
	if got := ResourceKind("").Label(); got != "object" {
		t.Errorf("empty kind label = %q, want object", got)
	}
	if got := KindTemplate.Plural(); got != "templates" {
		t.Errorf("template plural = %q", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "About", "about"},
		{"spaces to hyphens", "About Us", "about-us"},
		{"collapse separators", "About  --  Us", "about-us"},
		{"strip punctuation", "What's new?", "whats-new"},
		{"trim", "  Contact  ", "contact"},
		{"numbers", "Release 2.0 Notes", "release-20-notes"},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
