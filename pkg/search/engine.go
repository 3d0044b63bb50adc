package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
	"github.com/cmsdesk/cmsdesk-cli/pkg/utils"
)

// Item is one searchable resource
type Item struct {
	Kind     models.ResourceKind
	Name     string
	Title    string
	State    models.WorkflowState
	Template string
	Content  string
	Modified time.Time
	Archived bool
}

// Result is a matching item with its relevance score
type Result struct {
	Item    Item
	Score   float64
	Excerpt string
}

// Engine evaluates queries against an in-memory index of the project
type Engine struct {
	items    []Item
	parser   *Parser
	archived bool
	now      func() time.Time
}

// NewEngine creates a new search engine
func NewEngine() *Engine {
	return &Engine{
		parser: NewParser(),
		now:    time.Now,
	}
}

// Add puts an item in the index
func (e *Engine) Add(item Item) {
	e.items = append(e.items, item)
}

// BuildIndex loads every page, template and asset. Archived pages are
// included when includeArchived is set.
func (e *Engine) BuildIndex(includeArchived bool) error {
	e.items = nil
	e.archived = includeArchived

	pages, _ := files.LoadPages()
	for _, page := range pages {
		e.Add(pageItem(page, false))
	}

	if includeArchived {
		slugs, err := files.ListArchivedPages()
		if err != nil {
			return fmt.Errorf("failed to list archived pages: %w", err)
		}
		for _, slug := range slugs {
			if page, err := files.ReadArchivedPage(slug); err == nil {
				e.Add(pageItem(page, true))
			}
		}
	}

	names, err := files.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	for _, name := range names {
		tmpl, err := files.ReadTemplate(name)
		if err != nil {
			continue
		}
		e.Add(Item{
			Kind:     models.KindTemplate,
			Name:     name,
			Content:  tmpl.Markup + "\n" + strings.Join(tmpl.Regions, " "),
			Modified: tmpl.Modified,
		})
	}

	names, err = files.ListAssets()
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}
	for _, name := range names {
		asset, err := files.ReadAsset(name)
		if err != nil {
			continue
		}
		e.Add(Item{
			Kind:     models.KindAsset,
			Name:     name,
			Content:  asset.Description + "\n" + asset.Source,
			Modified: asset.Modified,
		})
	}
	return nil
}

func pageItem(page *models.Page, archived bool) Item {
	return Item{
		Kind:     models.KindPage,
		Name:     page.Slug,
		Title:    page.Title,
		State:    page.State,
		Template: page.Template,
		Content:  page.Body,
		Modified: page.Modified,
		Archived: archived,
	}
}

// Search runs query against the project. A query asking for archived
// pages rebuilds the index with the archive included.
func (e *Engine) Search(queryStr string) ([]Result, error) {
	query, err := e.parser.Parse(queryStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	if query.wantsArchived() && !e.archived {
		if err := e.BuildIndex(true); err != nil {
			return nil, err
		}
	}
	return e.Run(query), nil
}

// Run evaluates a parsed query against the current index
func (e *Engine) Run(query *Query) []Result {
	var results []Result
	for _, item := range e.items {
		if !e.matchesQuery(item, query) {
			continue
		}
		results = append(results, Result{
			Item:    item,
			Score:   score(item, query),
			Excerpt: excerpt(item, query),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.Name < results[j].Item.Name
	})
	return results
}

// matchesQuery folds conditions left to right with their operators
func (e *Engine) matchesQuery(item Item, query *Query) bool {
	if len(query.Conditions) == 0 {
		return true
	}
	matched := e.matches(item, query.Conditions[0])
	for i, cond := range query.Conditions[1:] {
		next := e.matches(item, cond)
		if query.Logic[i] == OperatorOR {
			matched = matched || next
		} else {
			matched = matched && next
		}
	}
	return matched
}

func (e *Engine) matches(item Item, cond Condition) bool {
	var ok bool
	switch cond.Field {
	case FieldKind:
		kind, err := models.ParseResourceKind(cond.Value)
		ok = err == nil && item.Kind == kind
	case FieldState:
		ok = item.Kind == models.KindPage && string(item.State) == cond.Value
	case FieldTemplate:
		ok = item.Template == cond.Value
	case FieldName:
		pattern := strings.ToLower(cond.Value)
		ok = strings.Contains(strings.ToLower(item.Name), pattern) ||
			strings.Contains(strings.ToLower(item.Title), pattern)
	case FieldContent:
		pattern := strings.ToLower(cond.Value)
		ok = strings.Contains(strings.ToLower(item.Content), pattern) ||
			strings.Contains(strings.ToLower(item.Title), pattern)
	case FieldModified:
		age := e.now().Sub(item.Modified)
		if cond.Operator == OperatorLessThan {
			ok = age <= cond.Age
		} else {
			ok = age > cond.Age
		}
	}
	if cond.Negate {
		return !ok
	}
	return ok
}

// score favours name and title hits over body hits
func score(item Item, query *Query) float64 {
	s := 1.0
	for _, cond := range query.Conditions {
		if cond.Negate || (cond.Field != FieldContent && cond.Field != FieldName) {
			continue
		}
		pattern := strings.ToLower(cond.Value)
		if strings.Contains(strings.ToLower(item.Name), pattern) {
			s += 3
		}
		if strings.Contains(strings.ToLower(item.Title), pattern) {
			s += 2
		}
		hits := strings.Count(strings.ToLower(item.Content), pattern)
		if hits > 5 {
			hits = 5
		}
		s += float64(hits) * 0.5
	}
	return s
}

// excerpt shows the text around the first content hit, or the opening
// paragraph when nothing in the body matched
func excerpt(item Item, query *Query) string {
	const context = 40
	lower := strings.ToLower(item.Content)
	for _, cond := range query.Conditions {
		if cond.Field != FieldContent || cond.Negate || cond.Value == "" {
			continue
		}
		idx := strings.Index(lower, strings.ToLower(cond.Value))
		if idx < 0 {
			continue
		}
		start := max(0, idx-context)
		end := min(len(item.Content), idx+len(cond.Value)+context)
		text := strings.Join(strings.Fields(strings.ToValidUTF8(item.Content[start:end], "")), " ")
		if start > 0 {
			text = "…" + text
		}
		if end < len(item.Content) {
			text += "…"
		}
		return text
	}
	return utils.Excerpt(item.Content, 2*context)
}
