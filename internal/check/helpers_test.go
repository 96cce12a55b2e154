package check

import (
	"github.com/uros-5/tinymist/internal/diag"
	"github.com/uros-5/tinymist/internal/syntax"
)

// spanAt builds a distinct, non-detached Span for test fixtures, keyed
// only by its start column so multiple calls never collide.
func spanAt(col int) syntax.Span {
	return syntax.Span{Start: syntax.Pos{Line: 1, Column: col}, End: syntax.Pos{Line: 1, Column: col + 1}}
}

type collectingSink struct {
	messages []string
}

func (s *collectingSink) Emit(r diag.Record) {
	s.messages = append(s.messages, r.Message)
}
