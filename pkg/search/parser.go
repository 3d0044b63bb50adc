package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FieldType represents the type of field being searched
type FieldType string

const (
	FieldKind     FieldType = "kind"
	FieldState    FieldType = "state"
	FieldTemplate FieldType = "template"
	FieldName     FieldType = "name"
	FieldContent  FieldType = "content"
	FieldModified FieldType = "modified"
)

// Operator represents a search operator
type Operator string

const (
	OperatorEquals      Operator = "="
	OperatorContains    Operator = "contains"
	OperatorGreaterThan Operator = ">"
	OperatorLessThan    Operator = "<"
	OperatorAND         Operator = "AND"
	OperatorOR          Operator = "OR"
)

// Condition represents a single search condition
type Condition struct {
	Field    FieldType
	Operator Operator
	Value    string
	// Age is set for modified conditions
	Age    time.Duration
	Negate bool
}

// Query represents a parsed search query
type Query struct {
	Conditions []Condition
	Logic      []Operator // between consecutive conditions
	Raw        string
}

// Parser handles parsing of search queries
type Parser struct {
	fieldPattern    *regexp.Regexp
	quotedPattern   *regexp.Regexp
	modifiedPattern *regexp.Regexp
}

// NewParser creates a new search query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:    regexp.MustCompile(`^(\w+):(.+)$`),
		quotedPattern:   regexp.MustCompile(`^"([^"]*)"$`),
		modifiedPattern: regexp.MustCompile(`^([<>])(\d+)([hdwmy])$`),
	}
}

// Parse parses a search query string into a Query object
func (p *Parser) Parse(input string) (*Query, error) {
	query := &Query{Raw: input}

	if err := p.parseTokens(p.tokenize(input), query); err != nil {
		return nil, err
	}
	return query, nil
}

// tokenize splits on spaces outside double quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ' ' && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

func (p *Parser) parseTokens(tokens []string, query *Query) error {
	pendingLogic := false

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		switch strings.ToUpper(token) {
		case "AND", "OR":
			if len(query.Conditions) == 0 || pendingLogic {
				return fmt.Errorf("unexpected operator %s", token)
			}
			query.Logic = append(query.Logic, Operator(strings.ToUpper(token)))
			pendingLogic = true
			continue
		case "NOT":
			i++
			if i >= len(tokens) {
				return fmt.Errorf("NOT operator requires a condition")
			}
			cond, err := p.parseCondition(tokens[i])
			if err != nil {
				return err
			}
			cond.Negate = true
			p.appendCondition(query, *cond, pendingLogic)
			pendingLogic = false
			continue
		}

		cond, err := p.parseCondition(token)
		if err != nil {
			return err
		}
		p.appendCondition(query, *cond, pendingLogic)
		pendingLogic = false
	}

	if pendingLogic {
		return fmt.Errorf("operator %s requires a condition", query.Logic[len(query.Logic)-1])
	}
	return nil
}

// appendCondition adds cond, joining it with an implicit AND when no
// operator preceded it
func (p *Parser) appendCondition(query *Query, cond Condition, explicit bool) {
	if len(query.Conditions) > 0 && !explicit {
		query.Logic = append(query.Logic, OperatorAND)
	}
	query.Conditions = append(query.Conditions, cond)
}

// parseCondition parses one field:value token; bare words search content
func (p *Parser) parseCondition(token string) (*Condition, error) {
	matches := p.fieldPattern.FindStringSubmatch(token)
	if len(matches) != 3 {
		return &Condition{
			Field:    FieldContent,
			Operator: OperatorContains,
			Value:    p.unquote(token),
		}, nil
	}

	field := strings.ToLower(matches[1])
	value := p.unquote(matches[2])

	switch field {
	case "kind", "type":
		return &Condition{Field: FieldKind, Operator: OperatorEquals, Value: strings.ToLower(value)}, nil
	case "state", "status":
		return &Condition{Field: FieldState, Operator: OperatorEquals, Value: strings.ToLower(value)}, nil
	case "template":
		return &Condition{Field: FieldTemplate, Operator: OperatorEquals, Value: value}, nil
	case "name":
		return &Condition{Field: FieldName, Operator: OperatorContains, Value: value}, nil
	case "content":
		return &Condition{Field: FieldContent, Operator: OperatorContains, Value: value}, nil
	case "modified":
		age, op, err := p.parseModifiedValue(value)
		if err != nil {
			return nil, err
		}
		return &Condition{Field: FieldModified, Operator: op, Value: value, Age: age}, nil
	}
	return nil, fmt.Errorf("unknown field: %s", field)
}

// parseModifiedValue parses values like "<7d" (changed within a week) or
// ">1m" (untouched for a month)
func (p *Parser) parseModifiedValue(value string) (time.Duration, Operator, error) {
	matches := p.modifiedPattern.FindStringSubmatch(value)
	if len(matches) != 4 {
		return 0, "", fmt.Errorf("invalid modified value format: %s (expected format: <7d, >30d, etc.)", value)
	}

	n, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, "", fmt.Errorf("invalid modified value %s: %w", value, err)
	}

	day := 24 * time.Hour
	var unit time.Duration
	switch matches[3] {
	case "h":
		unit = time.Hour
	case "d":
		unit = day
	case "w":
		unit = 7 * day
	case "m":
		unit = 30 * day
	case "y":
		unit = 365 * day
	}

	op := OperatorLessThan
	if matches[1] == ">" {
		op = OperatorGreaterThan
	}
	return time.Duration(n) * unit, op, nil
}

// unquote removes quotes from a string if present
func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}

// wantsArchived reports whether the query explicitly asks for archived pages
func (q *Query) wantsArchived() bool {
	for _, c := range q.Conditions {
		if c.Field == FieldState && c.Value == "archived" && !c.Negate {
			return true
		}
	}
	return false
}
