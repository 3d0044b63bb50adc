package cli

import (
	"fmt"
	"strings"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ParseResourceRef splits a "kind/name" reference. A bare name returns an
// empty kind so the caller can search every kind.
func ParseResourceRef(ref string) (models.ResourceKind, string, error) {
	if ref == "" {
		return "", "", fmt.Errorf("resource name cannot be empty")
	}
	prefix, name, found := strings.Cut(ref, "/")
	if !found {
		return "", ref, nil
	}
	kind, err := models.ParseResourceKind(prefix)
	if err != nil {
		return "", "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", "", fmt.Errorf("invalid resource name: %s", name)
	}
	return kind, name, nil
}

// ParseKinds turns a list argument into the kinds it names. "all" and ""
// name every kind.
func ParseKinds(arg string) ([]models.ResourceKind, error) {
	all := []models.ResourceKind{models.KindPage, models.KindTemplate, models.KindAsset}
	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg == "" || arg == "all" {
		return all, nil
	}
	kind, err := models.ParseResourceKind(arg)
	if err != nil {
		return nil, err
	}
	return []models.ResourceKind{kind}, nil
}
