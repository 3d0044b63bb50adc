package dirty

// ViewKind identifies the view that is currently in front of the user
type ViewKind int

const (
	ViewNone ViewKind = iota
	ViewBrowser
	ViewPageEditor
	ViewTemplateEditor
	ViewAssetEditor
	ViewWidgetBuilder
	ViewWorkflow
)

func (v ViewKind) String() string {
	switch v {
	case ViewBrowser:
		return "browser"
	case ViewPageEditor:
		return "page-editor"
	case ViewTemplateEditor:
		return "template-editor"
	case ViewAssetEditor:
		return "asset-editor"
	case ViewWidgetBuilder:
		return "widget-builder"
	case ViewWorkflow:
		return "workflow"
	default:
		return "none"
	}
}

// SaveCapable reports whether a prompt raised from view may offer Save.
// Only the page editor, the template editor and the widget builder can
// save on the user's behalf.
func SaveCapable(v ViewKind) bool {
	switch v {
	case ViewPageEditor, ViewTemplateEditor, ViewWidgetBuilder:
		return true
	}
	return false
}

// ViewContext reports which view is active
type ViewContext interface {
	ActiveView() ViewKind
}

// ViewFunc adapts a function to ViewContext
type ViewFunc func() ViewKind

func (f ViewFunc) ActiveView() ViewKind { return f() }

// Presenter shows a prompt modally. Once the user picks a choice the
// presenter calls Resolve with it and dismisses the prompt.
type Presenter interface {
	Present(p Prompt)
}

// Choice is one button of a confirmation prompt
type Choice int

const (
	ChoiceSave Choice = iota
	ChoiceContinue
	ChoiceCancel
)

func (c Choice) Label() string {
	switch c {
	case ChoiceSave:
		return "Save"
	case ChoiceContinue:
		return "Continue anyway"
	case ChoiceCancel:
		return "Cancel"
	}
	return ""
}

// Header is the presentational part shared by every prompt
type Header struct {
	Title   string
	Message string
	Width   int
}

// Prompt is either a *SaveCapablePrompt or a *SimplePrompt
type Prompt interface {
	Header() Header
	Choices() []Choice
	// Resolve runs the callback for c. It returns false when c is not
	// offered or the prompt was already resolved.
	Resolve(c Choice) bool
	sealed()
}

// SaveCapablePrompt offers Save, Continue anyway and Cancel
type SaveCapablePrompt struct {
	Head     Header
	Save     func()
	Continue func()
	Cancel   func()

	resolved bool
}

func (p *SaveCapablePrompt) Header() Header { return p.Head }

func (p *SaveCapablePrompt) Choices() []Choice {
	return []Choice{ChoiceSave, ChoiceContinue, ChoiceCancel}
}

func (p *SaveCapablePrompt) Resolve(c Choice) bool {
	if p.resolved {
		return false
	}
	var fn func()
	switch c {
	case ChoiceSave:
		fn = p.Save
	case ChoiceContinue:
		fn = p.Continue
	case ChoiceCancel:
		fn = p.Cancel
	default:
		return false
	}
	p.resolved = true
	call(fn)
	return true
}

func (p *SaveCapablePrompt) sealed() {}

// SimplePrompt offers Continue anyway and Cancel
type SimplePrompt struct {
	Head     Header
	Continue func()
	Cancel   func()

	resolved bool
}

func (p *SimplePrompt) Header() Header { return p.Head }

func (p *SimplePrompt) Choices() []Choice {
	return []Choice{ChoiceContinue, ChoiceCancel}
}

func (p *SimplePrompt) Resolve(c Choice) bool {
	if p.resolved {
		return false
	}
	var fn func()
	switch c {
	case ChoiceContinue:
		fn = p.Continue
	case ChoiceCancel:
		fn = p.Cancel
	default:
		return false
	}
	p.resolved = true
	call(fn)
	return true
}

func (p *SimplePrompt) sealed() {}

// Offers reports whether p includes choice c
func Offers(p Prompt, c Choice) bool {
	for _, choice := range p.Choices() {
		if choice == c {
			return true
		}
	}
	return false
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
