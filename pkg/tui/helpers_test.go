package tui

import (
	"os"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
)

func setupProject(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	os.Chdir(tempDir)

	if err := files.InitProjectStructure(); err != nil {
		t.Fatalf("InitProjectStructure failed: %v", err)
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive feeds msg to the app and keeps feeding back the messages produced
// by the returned commands. Commands that do not finish quickly, such as
// cursor blink ticks, are dropped.
func drive(t *testing.T, app *App, msg tea.Msg) []tea.Msg {
	t.Helper()
	var seen []tea.Msg
	queue := []tea.Msg{msg}
	for i := 0; i < 100 && len(queue) > 0; i++ {
		m := queue[0]
		queue = queue[1:]
		seen = append(seen, m)
		if _, ok := m.(tea.QuitMsg); ok {
			continue
		}
		_, cmd := app.Update(m)
		queue = append(queue, runCmd(cmd)...)
	}
	return seen
}

var cmdType = reflect.TypeOf((*tea.Cmd)(nil)).Elem()

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		// tea.Sequence yields an unexported []tea.Cmd; run it in order
		if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
			var out []tea.Msg
			for i := 0; i < v.Len(); i++ {
				c, _ := v.Index(i).Interface().(tea.Cmd)
				out = append(out, runCmd(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func hasQuit(msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app := NewApp(nil, nil)
	drive(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}
