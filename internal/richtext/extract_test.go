package richtext

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "nil node",
			node: nil,
			want: "",
		},
		{
			name: "empty node",
			node: &Node{},
			want: "",
		},
		{
			name: "leaf",
			node: &Node{Text: "hello"},
			want: "hello",
		},
		{
			name: "document order",
			node: &Node{Content: []*Node{
				{Text: "A"},
				{Content: []*Node{{Text: "B"}}},
			}},
			want: "A\nB",
		},
		{
			name: "text wins over children",
			node: &Node{Text: "outer", Content: []*Node{{Text: "inner"}}},
			want: "outer",
		},
		{
			name: "empty child keeps its separator",
			node: &Node{Content: []*Node{{Text: "A"}, {}, {Text: "B"}}},
			want: "A\n\nB",
		},
		{
			name: "nil child",
			node: &Node{Content: []*Node{{Text: "A"}, nil, {Text: "B"}}},
			want: "A\n\nB",
		},
		{
			name: "paragraphs with inline runs",
			node: &Node{Type: "doc", Content: []*Node{
				{Type: "heading", Content: []*Node{{Type: "text", Text: "# Title"}}},
				{Type: "paragraph", Content: []*Node{
					{Type: "text", Text: "first run"},
					{Type: "text", Text: "second run"},
				}},
			}},
			want: "# Title\nfirst run\nsecond run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText(tt.node); got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractText_DeepNesting(t *testing.T) {
	const depth = 200000

	root := &Node{}
	cur := root
	for i := 0; i < depth; i++ {
		child := &Node{}
		cur.Content = []*Node{child}
		cur = child
	}
	cur.Text = "leaf"

	if got := ExtractText(root); got != "leaf" {
		t.Errorf("ExtractText() = %q, want %q", got, "leaf")
	}
}

func TestNodeUnmarshalJSON_Permissive(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"well formed", `{"content":[{"text":"A"},{"content":[{"text":"B"}]}]}`, "A\nB"},
		{"numeric text ignored", `{"content":[{"text":5},{"text":"B"}]}`, "\nB"},
		{"content not an array", `{"content":"oops","text":"kept"}`, "kept"},
		{"non-object child", `{"content":[7,{"text":"B"}]}`, "\nB"},
		{"null child", `{"content":[null,{"text":"B"}]}`, "\nB"},
		{"array root", `[1,2,3]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Node
			if err := json.Unmarshal([]byte(tt.input), &n); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got := ExtractText(&n); got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantText string
	}{
		{"empty", "   \n", KindEmpty, ""},
		{"plain unchanged", "# Title\n\nBody  ", KindPlain, "# Title\n\nBody  "},
		{"json tree", `{"type":"doc","content":[{"text":"A"},{"text":"B"}]}`, KindTree, "A\nB"},
		{"json string", `"line one\nline two"`, KindPlain, "line one\nline two"},
		{"brace but not json", "{draft} notes", KindPlain, "{draft} notes"},
		{"html", "<h1>Title</h1><p>Body</p>", KindHTML, "# Title\nBody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Parse([]byte(tt.input))
			if c.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", c.Kind, tt.wantKind)
			}
			if got := c.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestContentJSONRoundTrip(t *testing.T) {
	type doc struct {
		Title   string  `json:"title"`
		Content Content `json:"content"`
	}

	var d doc
	input := `{"title":"T","content":{"content":[{"text":"A"}]}}`
	if err := json.Unmarshal([]byte(input), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d.Content.Kind != KindTree {
		t.Fatalf("Kind = %v, want KindTree", d.Content.Kind)
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), `"content":{"content":[{"text":"A"}]}`) {
		t.Errorf("Marshal() = %s, want nested tree", out)
	}

	if err := json.Unmarshal([]byte(`{"content":42}`), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !d.Content.IsEmpty() {
		t.Errorf("numeric content should decode to empty, got %+v", d.Content)
	}
}
