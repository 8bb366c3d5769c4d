package results

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const sampleData = `[
  {"task_id": 1, "trial": 0,
   "info": {"task": {"instruction": "Book a flight."}},
   "traj": [
     {"role": "system", "content": "You are an agent."},
     {"role": "user", "content": "hi"},
     {"role": "assistant", "content": null,
      "tool_calls": [{"id": "c1", "function": {"name": "lookup", "arguments": "{\"x\":1}"}}]},
     {"role": "tool", "tool_call_id": "c1", "name": "lookup", "content": "result"}
   ]},
  {"task_id": 1, "trial": 1, "traj": [{"role": "user", "content": "again"}]},
  {"task_id": 2, "trial": 0, "traj": []}
]`

func writeSample(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestLoad_Basic(t *testing.T) {
	records, err := Load(writeSample(t, sampleData))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].TaskID != 1 || records[0].Trial != 0 {
		t.Errorf("unexpected first record: task_id=%d trial=%d", records[0].TaskID, records[0].Trial)
	}
	if len(records[0].Traj) != 4 {
		t.Errorf("expected 4 turns, got %d", len(records[0].Traj))
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestDecode_ParseError(t *testing.T) {
	if _, err := Decode([]byte(`{broken`)); err == nil {
		t.Error("expected parse error")
	}
}

func TestDecode_TopLevelNotArray(t *testing.T) {
	for _, data := range []string{`{"task_id": 1}`, `42`, `"hello"`, `null`} {
		_, err := Decode([]byte(data))
		if !errors.Is(err, ErrTopLevel) {
			t.Errorf("Decode(%s): expected ErrTopLevel, got %v", data, err)
		}
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	records := []Record{
		{TaskID: 1, Trial: 0, Traj: []Turn{{Role: RoleUser}}},
		{TaskID: 1, Trial: 0, Traj: []Turn{{Role: RoleSystem}}},
	}
	rec, err := Find(records, 1, 0)
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if rec.Traj[0].Role != RoleUser {
		t.Error("expected the first matching record")
	}
}

func TestFind_NotFound(t *testing.T) {
	records := []Record{{TaskID: 1, Trial: 0}}
	_, err := Find(records, 9, 9)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSelect_EmptyTrajectory(t *testing.T) {
	records := []Record{
		{TaskID: 2, Trial: 0, Traj: []Turn{}},
		{TaskID: 3, Trial: 0},
	}
	if _, err := Select(records, 2, 0); !errors.Is(err, ErrEmptyTrajectory) {
		t.Errorf("empty traj: expected ErrEmptyTrajectory, got %v", err)
	}
	if _, err := Select(records, 3, 0); !errors.Is(err, ErrEmptyTrajectory) {
		t.Errorf("absent traj: expected ErrEmptyTrajectory, got %v", err)
	}
}

func TestInstruction_Present(t *testing.T) {
	records, err := Load(writeSample(t, sampleData))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if got := records[0].Instruction(); got != "Book a flight." {
		t.Errorf("expected instruction, got %q", got)
	}
}

func TestInstruction_BestEffort(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"no info", `[{"task_id": 1, "trial": 0, "traj": [{"role": "user"}]}]`},
		{"empty info", `[{"task_id": 1, "trial": 0, "info": {}, "traj": [{"role": "user"}]}]`},
		{"task not object", `[{"task_id": 1, "trial": 0, "info": {"task": "oops"}, "traj": [{"role": "user"}]}]`},
		{"info not object", `[{"task_id": 1, "trial": 0, "info": 7, "traj": [{"role": "user"}]}]`},
	}
	for _, tc := range cases {
		records, err := Decode([]byte(tc.data))
		if err != nil {
			t.Fatalf("%s: decode error: %v", tc.name, err)
		}
		if got := records[0].Instruction(); got != "" {
			t.Errorf("%s: expected no instruction, got %q", tc.name, got)
		}
	}
}

func TestTurn_NullContent(t *testing.T) {
	records, err := Load(writeSample(t, sampleData))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	traj := records[0].Traj
	if traj[1].Content == nil || *traj[1].Content != "hi" {
		t.Error("user content should be present")
	}
	if traj[2].Content != nil {
		t.Error("assistant tool-call turn content should be nil")
	}
}

func TestToolCall_CallID(t *testing.T) {
	tc := ToolCall{ID: "a", ToolCallID: "b"}
	if tc.CallID() != "a" {
		t.Errorf("expected id to win, got %q", tc.CallID())
	}
	tc = ToolCall{ToolCallID: "b"}
	if tc.CallID() != "b" {
		t.Errorf("expected tool_call_id fallback, got %q", tc.CallID())
	}
	tc = ToolCall{}
	if tc.CallID() != "" {
		t.Errorf("expected empty id, got %q", tc.CallID())
	}
}
