package transcript

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/bogoliubon/tau-bench/internal/results"
)

const (
	// DefaultMaxArgLen caps the full compacted argument line.
	DefaultMaxArgLen = 200

	// valueMaxLen caps each individual re-encoded argument value.
	valueMaxLen = 80
)

// callInfo is the resolved origin of a tool-call id: the function name
// and the compacted argument summary from the originating assistant turn.
type callInfo struct {
	name string
	args string
}

// callIndex maps tool-call identifiers to their originating call. Tool
// turns reference ids from earlier assistant turns, so the index is built
// over the whole trajectory before any output is produced.
type callIndex map[string]callInfo

// buildCallIndex scans every assistant turn's tool calls. Entries without
// an identifier are skipped; a duplicate identifier overwrites the
// earlier entry.
func buildCallIndex(traj []results.Turn, maxArgLen int) callIndex {
	idx := make(callIndex)
	for i := range traj {
		if traj[i].Role != results.RoleAssistant {
			continue
		}
		for j := range traj[i].ToolCalls {
			tc := &traj[i].ToolCalls[j]
			id := tc.CallID()
			if id == "" {
				continue
			}
			idx[id] = callInfo{
				name: tc.Function.Name,
				args: CompactArgs(tc.Function.Arguments, maxArgLen),
			}
		}
	}
	return idx
}

// CompactArgs turns a function arguments JSON string into a compact
// key=value, comma-separated single line, truncating long values.
// Malformed JSON is not an error: it degrades to a newline-collapsed,
// truncated rendering of the raw string.
func CompactArgs(raw string, maxLen int) string {
	if raw == "" {
		return ""
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s := strings.ReplaceAll(raw, "\n", " ")
		return truncate(s, maxLen)
	}

	var out string
	if pairs, ok := compactObject(raw); ok {
		out = strings.Join(pairs, ", ")
	} else {
		out = truncate(marshalCompact(parsed), valueMaxLen)
	}
	return truncate(out, maxLen)
}

// compactObject renders a JSON object as key=value pairs, preserving the
// document's key order. Returns ok=false when the value is not an object.
func compactObject(raw string) ([]string, bool) {
	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	var pairs []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		pairs = append(pairs, key+"="+truncate(marshalCompact(value), valueMaxLen))
	}
	return pairs, true
}

// marshalCompact re-encodes a value as single-line JSON without HTML
// escaping, so URLs and comparison operators stay readable.
func marshalCompact(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// truncate caps a string at max runes, replacing the last rune with an
// ellipsis marker when it is over. A string of exactly max runes is
// returned untouched.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
