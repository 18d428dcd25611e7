package cliformat

import "github.com/lucene-ql/lqp/parser"

// FromParserErrors adapts parser.Error values (which already have the
// same Message/Offset/Length shape) into Diagnostics.
func FromParserErrors(errs []parser.Error) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = Diagnostic{Message: e.Message, Offset: e.Offset, Length: e.Length}
	}
	return out
}
