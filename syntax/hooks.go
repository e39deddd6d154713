package syntax

import (
	"github.com/justy989/ce/buffer"
	"github.com/limetext/rubex"
)

// PlainHook is a passthrough implementation: every character stays
// StyleNormal except the cursor's own line, which is styled per the
// given RenderPolicy. It is the Hook used for buffer.TypePlain and as
// a reference collaborator for buffers with no language registered.
type PlainHook struct{}

func (PlainHook) Initializing(b *buffer.Buffer, state interface{}) interface{} { return nil }

func (PlainHook) BeginningOfLine(b *buffer.Buffer, line int64, state interface{}, sink StyleSink) {
	sink.Push(StyleNormal)
}

func (PlainHook) Character(b *buffer.Buffer, p buffer.Point, c byte, state interface{}, policy RenderPolicy, sink StyleSink) {
	if policy.HighlightLine != HighlightLineNone && p.Y == b.Cursor.Y {
		sink.Push(StyleCursorLine)
		return
	}
	sink.Push(StyleNormal)
}

func (PlainHook) EndOfLine(b *buffer.Buffer, line int64, state interface{}, sink StyleSink) {}

// RegexHook is a single-pass keyword/regex highlighter: each
// registered pattern is tried in order at every column, and the
// first one to match from that column onward determines the style
// run. It is grounded on the same rubex POSIX-regex engine
// buffer.FindRegex uses for search, rather than pulling in a
// separate tokenizer dependency.
type RegexHook struct {
	Rules []RegexRule
}

// RegexRule pairs a compiled pattern with the style to apply to its
// matches.
type RegexRule struct {
	Pattern string
	Style   StyleKind

	compiled *rubex.Regexp
}

// NewRegexHook compiles rules and returns a ready-to-use Hook. Rules
// whose pattern fails to compile are dropped, matching the "best
// effort, never panic" posture of the rest of the package.
func NewRegexHook(rules []RegexRule) *RegexHook {
	h := &RegexHook{}
	for _, r := range rules {
		re, err := rubex.Compile(r.Pattern)
		if err != nil {
			continue
		}
		r.compiled = re
		h.Rules = append(h.Rules, r)
	}
	return h
}

// regexHookState caches the current line's matched spans so
// Character doesn't re-run every rule at every column.
type regexHookState struct {
	line  int64
	spans []regexSpan
}

type regexSpan struct {
	start, end int
	style      StyleKind
}

func (h *RegexHook) Initializing(b *buffer.Buffer, state interface{}) interface{} {
	return &regexHookState{line: -1}
}

func (h *RegexHook) BeginningOfLine(b *buffer.Buffer, line int64, state interface{}, sink StyleSink) {
	st, _ := state.(*regexHookState)
	if st == nil {
		return
	}
	st.line = line
	st.spans = nil
	text, ok := b.DupeLine(line)
	if !ok {
		return
	}
	for _, r := range h.Rules {
		if r.compiled == nil {
			continue
		}
		for _, m := range r.compiled.FindAllStringIndex(text, -1) {
			st.spans = append(st.spans, regexSpan{start: m[0], end: m[1], style: r.Style})
		}
	}
	sink.Push(StyleNormal)
}

func (h *RegexHook) Character(b *buffer.Buffer, p buffer.Point, c byte, state interface{}, policy RenderPolicy, sink StyleSink) {
	st, _ := state.(*regexHookState)
	if st == nil {
		sink.Push(StyleNormal)
		return
	}
	col := int(p.X)
	for _, span := range st.spans {
		if col >= span.start && col < span.end {
			sink.Push(span.style)
			return
		}
	}
	if policy.HighlightLine != HighlightLineNone && p.Y == b.Cursor.Y {
		sink.Push(StyleCursorLine)
		return
	}
	sink.Push(StyleNormal)
}

func (h *RegexHook) EndOfLine(b *buffer.Buffer, line int64, state interface{}, sink StyleSink) {
	sink.Push(StyleNormal)
}

// CKeywords and friends are convenience rule sets a caller can
// hand to NewRegexHook; they are not registered automatically, since
// language selection is the editor layer's job (`:syntax <lang>`).
var CKeywords = RegexRule{
	Pattern: `\<(if|else|while|for|do|switch|case|break|continue|return|struct|typedef|static|const|void|int|char|float|double|long|unsigned|signed|sizeof)\>`,
	Style:   StyleKeyword,
}

var CStringLiteral = RegexRule{
	Pattern: `"([^"\\]|\\.)*"`,
	Style:   StyleString,
}

var CLineComment = RegexRule{
	Pattern: `//.*$`,
	Style:   StyleComment,
}

var PythonKeywords = RegexRule{
	Pattern: `\<(def|class|if|elif|else|while|for|return|import|from|as|with|try|except|finally|pass|break|continue|lambda|yield|None|True|False)\>`,
	Style:   StyleKeyword,
}
