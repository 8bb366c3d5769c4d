package transcript

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bogoliubon/tau-bench/internal/results"
)

func TestCompactArgs_Empty(t *testing.T) {
	if got := CompactArgs("", DefaultMaxArgLen); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestCompactArgs_Object(t *testing.T) {
	got := CompactArgs(`{"x":1,"name":"widget","deep":{"a":true}}`, DefaultMaxArgLen)
	want := `x=1, name="widget", deep={"a":true}`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCompactArgs_KeyOrderPreserved(t *testing.T) {
	raw := `{"zulu":1,"alpha":2,"mike":3,"bravo":4}`
	got := CompactArgs(raw, DefaultMaxArgLen)

	var keys []string
	for _, pair := range strings.Split(got, ", ") {
		keys = append(keys, strings.SplitN(pair, "=", 2)[0])
	}
	want := []string{"zulu", "alpha", "mike", "bravo"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d: expected %q, got %q", i, want[i], keys[i])
		}
	}
}

func TestCompactArgs_NonObject(t *testing.T) {
	cases := []struct{ raw, want string }{
		{`[1,2,3]`, `[1,2,3]`},
		{`"hello"`, `"hello"`},
		{`42`, `42`},
		{`true`, `true`},
	}
	for _, tc := range cases {
		if got := CompactArgs(tc.raw, DefaultMaxArgLen); got != tc.want {
			t.Errorf("CompactArgs(%q): expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestCompactArgs_Malformed(t *testing.T) {
	got := CompactArgs("{not json", DefaultMaxArgLen)
	if got != "{not json" {
		t.Errorf("expected literal passthrough, got %q", got)
	}

	got = CompactArgs("{line\none\ntwo", DefaultMaxArgLen)
	if got != "{line one two" {
		t.Errorf("expected collapsed newlines, got %q", got)
	}
}

func TestCompactArgs_OverallBoundary(t *testing.T) {
	// Invalid JSON, so the raw path applies the overall cap directly.
	exact := "x" + strings.Repeat("y", DefaultMaxArgLen-1)
	if got := CompactArgs(exact, DefaultMaxArgLen); got != exact {
		t.Errorf("string of exactly max length must not be truncated")
	}

	over := exact + "z"
	got := CompactArgs(over, DefaultMaxArgLen)
	if utf8.RuneCountInString(got) != DefaultMaxArgLen {
		t.Errorf("expected %d runes, got %d", DefaultMaxArgLen, utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestCompactArgs_ValueBoundary(t *testing.T) {
	// 78 chars quote to an 80-char JSON encoding: untouched.
	v78 := strings.Repeat("a", 78)
	got := CompactArgs(`{"k":"`+v78+`"}`, DefaultMaxArgLen)
	if got != `k="`+v78+`"` {
		t.Errorf("80-char encoding must not be truncated, got %q", got)
	}

	// 79 chars quote to 81: truncated to 80 runes ending in the marker.
	v79 := strings.Repeat("a", 79)
	got = CompactArgs(`{"k":"`+v79+`"}`, DefaultMaxArgLen)
	value := strings.TrimPrefix(got, "k=")
	if utf8.RuneCountInString(value) != valueMaxLen {
		t.Errorf("expected %d-rune value, got %d", valueMaxLen, utf8.RuneCountInString(value))
	}
	if !strings.HasSuffix(value, "…") {
		t.Errorf("expected ellipsis suffix, got %q", value)
	}
}

func TestCompactArgs_NoHTMLEscaping(t *testing.T) {
	got := CompactArgs(`{"url":"https://example.com/a?b=1&c=<2>"}`, DefaultMaxArgLen)
	want := `url="https://example.com/a?b=1&c=<2>"`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	for _, esc := range []string{`\u0026`, `\u003c`, `\u003e`} {
		if strings.Contains(got, esc) {
			t.Errorf("output contains escape sequence %s: %q", esc, got)
		}
	}
}

func strptr(s string) *string { return &s }

func TestBuildCallIndex(t *testing.T) {
	traj := []results.Turn{
		{Role: results.RoleUser, Content: strptr("hi")},
		{Role: results.RoleAssistant, ToolCalls: []results.ToolCall{
			{ID: "c1", Function: results.Function{Name: "lookup", Arguments: `{"x":1}`}},
			{ToolCallID: "c2", Function: results.Function{Name: "fetch"}},
			{Function: results.Function{Name: "orphan"}}, // no identifier, skipped
		}},
		{Role: results.RoleTool, ToolCallID: "c1"},
	}

	idx := buildCallIndex(traj, DefaultMaxArgLen)
	if len(idx) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(idx))
	}
	if idx["c1"].name != "lookup" || idx["c1"].args != "x=1" {
		t.Errorf("unexpected c1 entry: %+v", idx["c1"])
	}
	if idx["c2"].name != "fetch" || idx["c2"].args != "" {
		t.Errorf("unexpected c2 entry: %+v", idx["c2"])
	}
}

func TestBuildCallIndex_DuplicateLastWins(t *testing.T) {
	traj := []results.Turn{
		{Role: results.RoleAssistant, ToolCalls: []results.ToolCall{
			{ID: "c1", Function: results.Function{Name: "first"}},
		}},
		{Role: results.RoleAssistant, ToolCalls: []results.ToolCall{
			{ID: "c1", Function: results.Function{Name: "second"}},
		}},
	}

	idx := buildCallIndex(traj, DefaultMaxArgLen)
	if idx["c1"].name != "second" {
		t.Errorf("expected last write to win, got %q", idx["c1"].name)
	}
}

func TestBuildCallIndex_IgnoresNonAssistant(t *testing.T) {
	traj := []results.Turn{
		{Role: results.RoleTool, ToolCalls: []results.ToolCall{
			{ID: "c1", Function: results.Function{Name: "lookup"}},
		}},
	}
	if idx := buildCallIndex(traj, DefaultMaxArgLen); len(idx) != 0 {
		t.Errorf("expected empty index, got %d entries", len(idx))
	}
}
