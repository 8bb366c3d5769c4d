// Package results loads tau-bench style result files and locates
// individual conversation records by (task_id, trial).
package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Role values observed in trajectories. Anything else falls through to
// the renderer's generic handling.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Sentinel errors for the locator. The CLI boundary matches on these to
// produce user-facing error lines.
var (
	// ErrTopLevel indicates the file parsed but is not a JSON array.
	ErrTopLevel = errors.New("expected a list at JSON top level")

	// ErrNotFound indicates no record matched the (task_id, trial) pair.
	ErrNotFound = errors.New("no matching record")

	// ErrEmptyTrajectory indicates the matched record has no turns.
	ErrEmptyTrajectory = errors.New("no 'traj' found in the selected record")
)

// Record is one conversation record in a result file.
type Record struct {
	TaskID int             `json:"task_id"`
	Trial  int             `json:"trial"`
	Traj   []Turn          `json:"traj"`
	Info   json.RawMessage `json:"info,omitempty"`
}

// Turn is one role-tagged message in a trajectory. Content is a pointer
// so a null/absent content (assistant tool-call-only turns) is
// distinguishable from an empty string.
type Turn struct {
	Role       string     `json:"role"`
	Content    *string    `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	Name       string     `json:"name,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a structured function invocation emitted by an assistant
// turn. The identifier may appear under either "id" or "tool_call_id"
// depending on the producer.
type ToolCall struct {
	ID         string   `json:"id,omitempty"`
	ToolCallID string   `json:"tool_call_id,omitempty"`
	Function   Function `json:"function"`
}

// Function describes the call target and its JSON-encoded arguments.
// Arguments are not guaranteed to be valid JSON.
type Function struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// CallID returns the tool-call identifier, tolerating either key.
func (tc *ToolCall) CallID() string {
	if tc.ID != "" {
		return tc.ID
	}
	return tc.ToolCallID
}

// recordInfo mirrors the nested info.task.instruction path. Kept separate
// from Record so a malformed info blob never fails record decoding.
type recordInfo struct {
	Task struct {
		Instruction string `json:"instruction"`
	} `json:"task"`
}

// Instruction returns the nested info.task.instruction string.
// Extraction is best-effort: any structural absence or mismatch along the
// path yields "".
func (r *Record) Instruction() string {
	if len(r.Info) == 0 {
		return ""
	}
	var info recordInfo
	if err := json.Unmarshal(r.Info, &info); err != nil {
		return ""
	}
	return info.Task.Instruction
}

// Load reads and decodes a result file. The top level must be a JSON
// array of records; any other shape is a structural error.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses raw result data.
func Decode(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, ErrTopLevel
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return records, nil
}

// Find returns the first record matching the (taskID, trial) pair.
// Uniqueness is assumed but not enforced.
func Find(records []Record, taskID, trial int) (*Record, error) {
	for i := range records {
		if records[i].TaskID == taskID && records[i].Trial == trial {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w for task_id=%d, trial=%d", ErrNotFound, taskID, trial)
}

// Select combines Find with the empty-trajectory check: the returned
// record always has at least one turn.
func Select(records []Record, taskID, trial int) (*Record, error) {
	rec, err := Find(records, taskID, trial)
	if err != nil {
		return nil, err
	}
	if len(rec.Traj) == 0 {
		return nil, ErrEmptyTrajectory
	}
	return rec, nil
}
