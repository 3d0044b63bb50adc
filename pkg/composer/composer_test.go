package composer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

func setupProject(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	os.Chdir(tempDir)

	if err := files.InitProjectStructure(); err != nil {
		t.Fatalf("Failed to initialize project structure: %v", err)
	}
}

func TestSplitRegions(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		regions []string
		want    map[string]string
	}{
		{
			name:    "title line is dropped",
			body:    "# Home\n\nWelcome",
			regions: []string{"content"},
			want:    map[string]string{"content": "Welcome"},
		},
		{
			name:    "region headings split sections",
			body:    "# Home\n\nintro\n\n## sidebar\nlinks\n\n## footer\n(c)",
			regions: []string{"content", "sidebar", "footer"},
			want:    map[string]string{"content": "intro", "sidebar": "links", "footer": "(c)"},
		},
		{
			name:    "unknown headings stay in the section",
			body:    "## Details\nmore",
			regions: []string{"content"},
			want:    map[string]string{"content": "## Details\nmore"},
		},
		{
			name:    "only the first h1 is a title",
			body:    "text\n# Not a title",
			regions: []string{"content"},
			want:    map[string]string{"content": "text\n# Not a title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRegions(tt.body, tt.regions)
			for region, want := range tt.want {
				if got[region] != want {
					t.Errorf("region %s = %q, want %q", region, got[region], want)
				}
			}
		})
	}
}

func TestComposePage(t *testing.T) {
	page := &models.Page{
		Title: "About",
		Slug:  "about",
		Body:  "# About\n\nWho we are\n\n## sidebar\nContact us",
	}
	tmpl := &models.Template{
		Regions: []string{"content", "sidebar", "footer"},
		Markup:  "<h1>{{title}}</h1>\n<main>{{content}}</main>\n<aside>{{sidebar}}</aside>\n<footer>{{footer}}</footer>\n<a href=\"/{{slug}}\">",
	}

	out, err := ComposePage(page, tmpl)
	if err != nil {
		t.Fatalf("ComposePage failed: %v", err)
	}

	expected := []string{
		"<h1>About</h1>",
		"<main>Who we are</main>",
		"<aside>Contact us</aside>",
		"<footer></footer>",
		`href="/about"`,
	}
	for _, e := range expected {
		if !strings.Contains(out, e) {
			t.Errorf("Output missing expected element: %s\n%s", e, out)
		}
	}
}

func TestComposePageErrors(t *testing.T) {
	if _, err := ComposePage(nil, &models.Template{}); err == nil {
		t.Error("Expected error for nil page")
	}
	if _, err := ComposePage(&models.Page{}, nil); err == nil {
		t.Error("Expected error for nil template")
	}
}

func TestComposeSlug(t *testing.T) {
	setupProject(t)

	page, err := files.NewPageFromTemplate("Landing", "")
	if err != nil {
		t.Fatalf("NewPageFromTemplate failed: %v", err)
	}
	page.Body += "Hello there\n"
	if err := files.WritePage(page); err != nil {
		t.Fatalf("WritePage failed: %v", err)
	}

	out, got, err := ComposeSlug("landing")
	if err != nil {
		t.Fatalf("ComposeSlug failed: %v", err)
	}
	if got.Slug != "landing" {
		t.Errorf("Expected page landing, got %s", got.Slug)
	}
	if !strings.Contains(out, "# Landing") || !strings.Contains(out, "Hello there") {
		t.Errorf("Unexpected composed output:\n%s", out)
	}

	if _, _, err := ComposeSlug("missing"); err == nil {
		t.Error("Expected error for missing page")
	}
}

func TestComposeSlugArchived(t *testing.T) {
	setupProject(t)

	if err := files.WritePage(&models.Page{Title: "Old", Body: "gone"}); err != nil {
		t.Fatalf("WritePage failed: %v", err)
	}
	if _, err := files.ApplyWorkflowAction("old", models.ActionArchive, models.WorkflowSettings{}); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	out, page, err := ComposeSlug("old")
	if err != nil {
		t.Fatalf("ComposeSlug failed: %v", err)
	}
	if page.State != models.StateArchived {
		t.Errorf("Expected archived state, got %s", page.State)
	}
	if !strings.Contains(out, "gone") {
		t.Errorf("Expected archived body in output, got:\n%s", out)
	}
}

func TestWithFrontMatter(t *testing.T) {
	at := time.Date(2030, 1, 2, 15, 4, 0, 0, time.UTC)
	until := at.Add(7 * 24 * time.Hour)
	page := &models.Page{Title: "Home", Slug: "home", State: models.StatePending, PublishAt: &at, RemoveAt: &until}

	out, err := WithFrontMatter(page, "body")
	if err != nil {
		t.Fatalf("WithFrontMatter failed: %v", err)
	}
	if !strings.HasPrefix(out, "---\ntitle: Home\n") {
		t.Errorf("Unexpected front matter:\n%s", out)
	}
	for _, e := range []string{"state: pending", "publish_at: 2030-01-02T15:04:00Z", "remove_at: 2030-01-09T15:04:00Z", "---\n\nbody"} {
		if !strings.Contains(out, e) {
			t.Errorf("Output missing %q:\n%s", e, out)
		}
	}
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "home.md")

	if err := WriteExport("hello", path); err != nil {
		t.Fatalf("WriteExport failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Expected hello, got %q", data)
	}

	if err := WriteExport("x", ""); err == nil {
		t.Error("Expected error for empty path")
	}
}
