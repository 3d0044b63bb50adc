package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ResourceKind labels the kind of content an editor is working on.
type ResourceKind string

const (
	KindPage     ResourceKind = "page"
	KindTemplate ResourceKind = "template"
	KindAsset    ResourceKind = "asset"
	KindObject   ResourceKind = "object"
)

var ErrUnknownKind = errors.New("unknown resource kind")

// Label returns the word used for the kind in user-facing messages
func (k ResourceKind) Label() string {
	if k == "" {
		return string(KindObject)
	}
	return string(k)
}

// Plural returns the directory-style plural of the kind
func (k ResourceKind) Plural() string {
	return k.Label() + "s"
}

// ParseResourceKind accepts singular and plural forms, case-insensitive
func ParseResourceKind(s string) (ResourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "page", "pages":
		return KindPage, nil
	case "template", "templates":
		return KindTemplate, nil
	case "asset", "assets":
		return KindAsset, nil
	case "object", "objects":
		return KindObject, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

type Page struct {
	ID        string        `yaml:"id"`
	Title     string        `yaml:"title"`
	Slug      string        `yaml:"slug"`
	Template  string        `yaml:"template"`
	State     WorkflowState `yaml:"state"`
	PublishAt *time.Time    `yaml:"publish_at,omitempty"`
	RemoveAt  *time.Time    `yaml:"remove_at,omitempty"`
	Comment   string        `yaml:"workflow_comment,omitempty"`
	Body      string        `yaml:"body"`
	Modified  time.Time     `yaml:"-"`
}

type Template struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Regions  []string  `yaml:"regions,omitempty"`
	Markup   string    `yaml:"markup"`
	Modified time.Time `yaml:"-"`
}

type Asset struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	MimeType    string    `yaml:"mime_type,omitempty"`
	Description string    `yaml:"description,omitempty"`
	Source      string    `yaml:"source,omitempty"`
	Modified    time.Time `yaml:"-"`
}

// Slugify turns a title into a file-safe slug
func Slugify(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))

	var result strings.Builder
	lastHyphen := false
	for _, r := range normalized {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			result.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if result.Len() > 0 && !lastHyphen {
				result.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(result.String(), "-")
}
