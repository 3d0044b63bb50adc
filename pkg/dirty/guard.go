// Package dirty tracks whether the open editor has unsaved work and gates
// navigation behind a confirmation prompt when it does.
//
// A Guard is not safe for concurrent use. Every call is expected to come
// from the bubbletea update loop, which also delivers the prompt's
// resolution, so no locking is needed.
package dirty

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cmsdesk/cmsdesk-cli/internal/logging"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

const (
	DefaultTitle = "⚠️  Unsaved Changes"
	DefaultWidth = 60
)

// ConfirmOptions override the computed prompt defaults. Zero fields keep
// the default. The set of choices cannot be overridden.
//
// OnDiscard, when set, runs after "Continue anyway" clears the dirty flag,
// in place of onProceed.
type ConfirmOptions struct {
	Title     string
	Message   string
	Width     int
	OnSave    func()
	OnDiscard func()
}

// Guard is the single source of truth for unsaved edits in one session.
// It is shared by pointer between every editor that can dirty it.
type Guard struct {
	presenter Presenter
	views     ViewContext

	dirty     bool
	kind      models.ResourceKind
	onSave    func()
	prompting bool
}

// New creates a clean guard that shows prompts through presenter and asks
// views which editor is active.
func New(presenter Presenter, views ViewContext) *Guard {
	g := &Guard{
		presenter: presenter,
		views:     views,
	}
	g.Init()
	return g
}

// Init resets the guard to its load-time state
func (g *Guard) Init() {
	g.dirty = false
	g.kind = ""
	g.onSave = noop
	g.prompting = false
}

// MarkDirty replaces the stored state. The last caller wins; a nil onSave
// becomes a no-op.
func (g *Guard) MarkDirty(isDirty bool, kind models.ResourceKind, onSave func()) {
	if onSave == nil {
		onSave = noop
	}
	if isDirty != g.dirty || kind != g.kind {
		logging.Get(logging.CategoryGuard).Debug("dirty state changed",
			zap.Bool("dirty", isDirty),
			zap.String("kind", kind.Label()))
	}
	g.dirty = isDirty
	g.kind = kind
	g.onSave = onSave
}

// IsDirty reports whether unsaved changes exist
func (g *Guard) IsDirty() bool {
	return g.dirty
}

// Kind returns the resource kind of the last MarkDirty call
func (g *Guard) Kind() models.ResourceKind {
	return g.kind
}

// Prompting reports whether a prompt raised by this guard is still open
func (g *Guard) Prompting() bool {
	return g.prompting
}

// Peek returns the leave-page warning without changing any state
func (g *Guard) Peek() (string, bool) {
	if !g.dirty {
		return "", false
	}
	return navigationWarning(g.kind), true
}

// Acknowledge clears the dirty flag after a warning was shown
func (g *Guard) Acknowledge() {
	g.dirty = false
}

// TakeNavigationWarning returns the leave-page warning and clears the dirty
// flag in one step, so a cancelled leave does not warn twice. It returns
// false when there is nothing to warn about.
func (g *Guard) TakeNavigationWarning() (string, bool) {
	msg, ok := g.Peek()
	if ok {
		g.Acknowledge()
		logging.Get(logging.CategoryGuard).Info("navigation warning taken",
			zap.String("kind", g.kind.Label()))
	}
	return msg, ok
}

// ConfirmIfDirty runs onProceed right away when nothing is dirty. Otherwise
// it hands a prompt to the presenter and returns; the user's choice later
// runs onProceed (after Save or Continue anyway) or onCancel.
//
// While a prompt from this guard is open further calls are ignored.
func (g *Guard) ConfirmIfDirty(onProceed, onCancel func(), opts *ConfirmOptions) {
	if onProceed == nil {
		onProceed = noop
	}
	if onCancel == nil {
		onCancel = noop
	}

	if !g.dirty {
		onProceed()
		return
	}

	log := logging.Get(logging.CategoryGuard)
	if g.prompting {
		log.Debug("confirmation already pending, ignoring request")
		return
	}
	if g.presenter == nil {
		log.Warn("no presenter configured, keeping unsaved changes")
		onCancel()
		return
	}

	view := ViewNone
	if g.views != nil {
		view = g.views.ActiveView()
	}

	p := g.buildPrompt(view, onProceed, onCancel, opts)
	g.prompting = true
	log.Debug("presenting confirmation",
		zap.String("view", view.String()),
		zap.String("kind", g.kind.Label()),
		zap.Int("choices", len(p.Choices())))
	g.presenter.Present(p)
}

// buildPrompt snapshots the stored kind and save callback so a MarkDirty
// arriving while the prompt is open cannot change what it does.
func (g *Guard) buildPrompt(view ViewKind, onProceed, onCancel func(), opts *ConfirmOptions) Prompt {
	kind := g.kind
	save := g.onSave

	head := Header{
		Title:   DefaultTitle,
		Message: fmt.Sprintf("You have unsaved changes to this %s.", kind.Label()),
		Width:   DefaultWidth,
	}
	if opts != nil {
		if opts.Title != "" {
			head.Title = opts.Title
		}
		if opts.Message != "" {
			head.Message = opts.Message
		}
		if opts.Width > 0 {
			head.Width = opts.Width
		}
		if opts.OnSave != nil {
			save = opts.OnSave
		}
	}

	discard := onProceed
	if opts != nil && opts.OnDiscard != nil {
		discard = opts.OnDiscard
	}

	leave := func(then func()) func() {
		return func() {
			g.prompting = false
			g.dirty = false
			logging.Get(logging.CategoryGuard).Info("navigation allowed", zap.String("kind", kind.Label()))
			then()
		}
	}
	proceed := leave(onProceed)
	discardChanges := leave(discard)
	cancel := func() {
		g.prompting = false
		onCancel()
	}

	if SaveCapable(view) {
		return &SaveCapablePrompt{
			Head: head,
			Save: func() {
				save()
				proceed()
			},
			Continue: discardChanges,
			Cancel:   cancel,
		}
	}
	return &SimplePrompt{
		Head:     head,
		Continue: discardChanges,
		Cancel:   cancel,
	}
}

func navigationWarning(kind models.ResourceKind) string {
	return fmt.Sprintf("You have unsaved changes to this %s. If you leave now, your changes will be lost.", kind.Label())
}

func noop() {}
