package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

func TestConfirmFrom(t *testing.T) {
	SetGlobalFlags(true, true, false)
	defer SetGlobalFlags(false, false, false)

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"full yes", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default yes", "\n", true, true},
		{"empty takes default no", "\n", false, false},
		{"no trailing newline", "y", false, true},
		{"anything else is no", "maybe\n", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConfirmFrom(strings.NewReader(tt.input), "Continue?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ConfirmFrom(strings.NewReader(""), "Continue?", true)
	assert.Error(t, err)
}

func TestConfirmFrom_SkipConfirm(t *testing.T) {
	SetGlobalFlags(true, true, true)
	defer SetGlobalFlags(false, false, false)

	got, err := ConfirmFrom(strings.NewReader("n\n"), "Delete?", false)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestParseResourceRef(t *testing.T) {
	tests := []struct {
		ref      string
		wantKind models.ResourceKind
		wantName string
		wantErr  bool
	}{
		{"about", "", "about", false},
		{"pages/about", models.KindPage, "about", false},
		{"template/landing", models.KindTemplate, "landing", false},
		{"assets/logo", models.KindAsset, "logo", false},
		{"widgets/x", "", "", true},
		{"pages/", "", "", true},
		{"pages/../x", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			kind, name, err := ParseResourceRef(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds("all")
	require.NoError(t, err)
	assert.Len(t, kinds, 3)

	kinds, err = ParseKinds("Templates")
	require.NoError(t, err)
	assert.Equal(t, []models.ResourceKind{models.KindTemplate}, kinds)

	_, err = ParseKinds("widgets")
	assert.Error(t, err)
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		assert.NoError(t, ValidateOutputFormat(f))
	}
	assert.Error(t, ValidateOutputFormat("xml"))
}

func TestTableFormatter(t *testing.T) {
	buf := new(bytes.Buffer)
	table := NewTableFormatter(buf)
	table.Header("Name", "State")
	table.Row("home", "live")
	table.Row("spring-sale", "draft")
	table.Flush()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "----"))
	assert.Equal(t, strings.Index(lines[0], "STATE"), strings.Index(lines[3], "draft"))
}

func TestOutputResults(t *testing.T) {
	data := map[string]int{"count": 2}

	buf := new(bytes.Buffer)
	require.NoError(t, OutputResults(buf, "json", data))
	assert.Contains(t, buf.String(), `"count": 2`)

	buf.Reset()
	require.NoError(t, OutputResults(buf, "yaml", data))
	assert.Equal(t, "count: 2\n", buf.String())

	assert.Error(t, OutputResults(buf, "xml", data))
}

func TestTruncateAndFormatHelpers(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "a long...", TruncateString("a long sentence", 9))
	assert.Equal(t, "-", OrDash(""))
	assert.Equal(t, "x", OrDash("x"))
	assert.Equal(t, "-", FormatTime(nil, time.RFC3339))

	at := time.Date(2030, 1, 2, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "2030-01-02 15:04", FormatTime(&at, "2006-01-02 15:04"))
}
