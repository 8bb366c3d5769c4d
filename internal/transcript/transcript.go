package transcript

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bogoliubon/tau-bench/internal/results"
)

// Renderer formats one conversation record as a labeled, wrapped,
// indented transcript. It holds no state across renders; the call index
// is rebuilt per record.
type Renderer struct {
	out       io.Writer
	width     int
	color     bool
	maxArgLen int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the soft-wrap width. Non-positive disables wrapping.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		r.width = width
	}
}

// WithColor enables or disables ANSI color output.
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		r.color = enabled
	}
}

// WithMaxArgLen overrides the argument compaction cap.
func WithMaxArgLen(n int) Option {
	return func(r *Renderer) {
		r.maxArgLen = n
	}
}

// New creates a Renderer writing to out.
func New(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:       out,
		width:     100,
		color:     true,
		maxArgLen: DefaultMaxArgLen,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the full transcript for one record: header, optional
// instruction block, then every turn from the first user turn onward.
func (r *Renderer) Render(rec *results.Record) {
	header := fmt.Sprintf("Conversation — task_id=%d, trial=%d", rec.TaskID, rec.Trial)
	rule := strings.Repeat("─", lipgloss.Width(header))

	fmt.Fprintln(r.out, paint(boldStyle, header, r.color))
	fmt.Fprintln(r.out, paint(metaStyle, rule, r.color))

	if instr := rec.Instruction(); instr != "" {
		fmt.Fprintln(r.out, paint(boldStyle, "[instruction]", r.color))
		fmt.Fprintln(r.out, indentBody(wrapText(instr, r.width)))
		fmt.Fprintln(r.out, paint(metaStyle, rule, r.color))
	}

	idx := buildCallIndex(rec.Traj, r.maxArgLen)

	for _, turn := range rec.Traj[startIndex(rec.Traj):] {
		r.renderTurn(&turn, idx)
	}
}

// startIndex finds the first user turn. Content before it (typically a
// leading system prompt) is never displayed; a trajectory with no user
// turn at all is rendered in full.
func startIndex(traj []results.Turn) int {
	for i := range traj {
		if traj[i].Role == results.RoleUser {
			return i
		}
	}
	return 0
}

// renderTurn writes one labeled turn block: role tag line, then the
// wrapped and indented body.
func (r *Renderer) renderTurn(turn *results.Turn, idx callIndex) {
	label, body := r.classify(turn, idx)

	fmt.Fprintln(r.out, label)

	wrapped := wrapText(body, r.width)
	if strings.TrimSpace(wrapped) == "" {
		fmt.Fprintln(r.out, indentBody(paint(dimStyle, "(no content)", r.color)))
		return
	}
	fmt.Fprintln(r.out, indentBody(wrapped))
}

// classify dispatches on the turn role and returns the styled label and
// the raw body text. A missing role is treated as assistant.
func (r *Renderer) classify(turn *results.Turn, idx callIndex) (label, body string) {
	role := turn.Role
	if role == "" {
		role = results.RoleAssistant
	}

	switch role {
	case results.RoleAssistant:
		return paint(assistantStyle, "[assistant]", r.color), r.assistantBody(turn)
	case results.RoleUser:
		return paint(userStyle, "[user]", r.color), contentOf(turn)
	case results.RoleTool:
		return r.toolLabel(turn, idx), contentOf(turn)
	case results.RoleSystem:
		return paint(metaStyle, "[system]", r.color), contentOf(turn)
	default:
		return paint(metaStyle, "["+role+"]", r.color), contentOf(turn)
	}
}

// assistantBody returns the assistant content verbatim, or a compact
// summary of its tool calls when content is null.
func (r *Renderer) assistantBody(turn *results.Turn) string {
	if turn.Content != nil {
		return *turn.Content
	}
	if len(turn.ToolCalls) == 0 {
		return ""
	}

	parts := make([]string, 0, len(turn.ToolCalls))
	for i := range turn.ToolCalls {
		fn := &turn.ToolCalls[i].Function
		name := fn.Name
		if name == "" {
			name = "<?>"
		}
		if args := CompactArgs(fn.Arguments, r.maxArgLen); args != "" {
			parts = append(parts, name+"("+args+")")
		} else {
			parts = append(parts, name+"()")
		}
	}
	return "→ tool call(s): " + strings.Join(parts, "; ")
}

// toolLabel resolves the tool turn's originating call through the index,
// falling back to the turn's own name, then to a bare [tool] marker.
func (r *Renderer) toolLabel(turn *results.Turn, idx callIndex) string {
	var resolved callInfo
	if turn.ToolCallID != "" {
		resolved = idx[turn.ToolCallID]
	}

	display := turn.Name
	if display == "" {
		display = resolved.name
	}

	switch {
	case display != "" && resolved.args != "":
		return paint(toolStyle, "[tool:"+display+"("+resolved.args+")]", r.color)
	case display != "":
		return paint(toolStyle, "[tool:"+display+"]", r.color)
	default:
		return paint(toolStyle, "[tool]", r.color)
	}
}

// contentOf returns the turn content, treating null as empty.
func contentOf(turn *results.Turn) string {
	if turn.Content == nil {
		return ""
	}
	return *turn.Content
}

// ErrorLine writes the single user-visible error line the CLI boundary
// emits for structural problems.
func ErrorLine(w io.Writer, color bool, format string, args ...any) {
	msg := fmt.Sprintf("[error] "+format, args...)
	fmt.Fprintln(w, paint(errorStyle, msg, color))
}
