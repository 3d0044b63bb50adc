package search

import (
	"testing"
	"time"
)

func TestTokenize(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple words",
			input:    "hello world",
			expected: []string{"hello", "world"},
		},
		{
			name:     "quoted phrase",
			input:    `content:"spring sale" state:live`,
			expected: []string{`content:"spring sale"`, "state:live"},
		},
		{
			name:     "extra spaces",
			input:    "  a   b  ",
			expected: []string{"a", "b"},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParse(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name       string
		query      string
		conditions []Condition
		logic      []Operator
		wantErr    bool
	}{
		{
			name:  "field conditions",
			query: "kind:pages state:Pending",
			conditions: []Condition{
				{Field: FieldKind, Operator: OperatorEquals, Value: "pages"},
				{Field: FieldState, Operator: OperatorEquals, Value: "pending"},
			},
			logic: []Operator{OperatorAND},
		},
		{
			name:  "bare word is content search",
			query: "pricing",
			conditions: []Condition{
				{Field: FieldContent, Operator: OperatorContains, Value: "pricing"},
			},
		},
		{
			name:  "explicit OR",
			query: "template:landing OR name:promo",
			conditions: []Condition{
				{Field: FieldTemplate, Operator: OperatorEquals, Value: "landing"},
				{Field: FieldName, Operator: OperatorContains, Value: "promo"},
			},
			logic: []Operator{OperatorOR},
		},
		{
			name:  "NOT negates the next condition",
			query: "kind:page NOT state:live",
			conditions: []Condition{
				{Field: FieldKind, Operator: OperatorEquals, Value: "page"},
				{Field: FieldState, Operator: OperatorEquals, Value: "live", Negate: true},
			},
			logic: []Operator{OperatorAND},
		},
		{
			name:  "quoted content",
			query: `content:"free shipping"`,
			conditions: []Condition{
				{Field: FieldContent, Operator: OperatorContains, Value: "free shipping"},
			},
		},
		{
			name:  "status alias",
			query: "status:archived",
			conditions: []Condition{
				{Field: FieldState, Operator: OperatorEquals, Value: "archived"},
			},
		},
		{name: "leading operator", query: "AND kind:page", wantErr: true},
		{name: "trailing operator", query: "kind:page OR", wantErr: true},
		{name: "double operator", query: "a AND OR b", wantErr: true},
		{name: "dangling NOT", query: "kind:page NOT", wantErr: true},
		{name: "unknown field", query: "color:red", wantErr: true},
		{name: "bad modified", query: "modified:yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parser.Parse(tt.query)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) expected error", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.query, err)
			}
			if len(q.Conditions) != len(tt.conditions) {
				t.Fatalf("got %d conditions, want %d", len(q.Conditions), len(tt.conditions))
			}
			for i, c := range q.Conditions {
				if c != tt.conditions[i] {
					t.Errorf("condition[%d] = %+v, want %+v", i, c, tt.conditions[i])
				}
			}
			if len(q.Logic) != len(tt.logic) {
				t.Fatalf("got logic %v, want %v", q.Logic, tt.logic)
			}
			for i := range q.Logic {
				if q.Logic[i] != tt.logic[i] {
					t.Errorf("logic[%d] = %s, want %s", i, q.Logic[i], tt.logic[i])
				}
			}
		})
	}
}

func TestParseModified(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		value string
		age   time.Duration
		op    Operator
	}{
		{"<7d", 7 * 24 * time.Hour, OperatorLessThan},
		{">2w", 14 * 24 * time.Hour, OperatorGreaterThan},
		{"<12h", 12 * time.Hour, OperatorLessThan},
		{">1y", 365 * 24 * time.Hour, OperatorGreaterThan},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			q, err := parser.Parse("modified:" + tt.value)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			c := q.Conditions[0]
			if c.Age != tt.age || c.Operator != tt.op {
				t.Errorf("got age %v op %s, want %v %s", c.Age, c.Operator, tt.age, tt.op)
			}
		})
	}
}
