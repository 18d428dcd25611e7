package parser

import "fmt"

// Error is a single diagnostic produced while parsing. Offset/Length
// locate the problem in the original input buffer; Length may be 0 when
// the diagnostic concerns a point rather than a span.
type Error struct {
	Message string
	Offset  int
	Length  int
}

func (e Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Message)
}

func (p *Parser) errorf(offset, length int, format string, args ...any) {
	p.errors = append(p.errors, Error{
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
		Length:  length,
	})
}
