// Package cliformat renders parser/validation diagnostics as colorized,
// rustc-style blocks for the cmd/lqp CLI: an "error: message" header, a
// "--> line:column" pointer, the offending source line, and a caret
// underline under the offending span.
package cliformat

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	arrowStyle   = color.New(color.FgBlue, color.Bold)
	captionStyle = color.New(color.FgYellow)
)

// Diagnostic is anything with a message and a byte-offset span into the
// original input — parser.Error satisfies this shape structurally.
type Diagnostic struct {
	Message string
	Offset  int
	Length  int
}

// FormatDiagnostics renders one block per diagnostic found while
// processing text.
func FormatDiagnostics(text string, diags []Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(formatOne(text, d))
	}
	return b.String()
}

func formatOne(text string, d Diagnostic) string {
	line, column, lineText := locate(text, d.Offset)
	lineNum := fmt.Sprintf("%d", line)
	padding := strings.Repeat(" ", len(lineNum))

	var b strings.Builder
	b.WriteString(errorStyle.Sprint("error: "))
	b.WriteString(d.Message)
	b.WriteString("\n")
	b.WriteString(arrowStyle.Sprintf("%s--> ", padding))
	b.WriteString(fmt.Sprintf("%d:%d\n", line, column))
	b.WriteString(arrowStyle.Sprintf("%s |\n", padding))
	b.WriteString(arrowStyle.Sprintf("%s | ", lineNum))
	b.WriteString(lineText)
	b.WriteString("\n")
	b.WriteString(arrowStyle.Sprintf("%s | ", padding))
	b.WriteString(underline(column, d.Length))
	b.WriteString("\n")
	return b.String()
}

// underline returns spaces up to column-1 followed by n carets (at
// least one), colored with captionStyle.
func underline(column, n int) string {
	if n < 1 {
		n = 1
	}
	return strings.Repeat(" ", column-1) + captionStyle.Sprint(strings.Repeat("^", n))
}

// locate converts a byte offset into (1-based line, 1-based column,
// the full text of that line).
func locate(text string, offset int) (line, column int, lineText string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	column = offset - lineStart + 1

	lineEnd := strings.IndexByte(text[lineStart:], '\n')
	if lineEnd < 0 {
		lineText = text[lineStart:]
	} else {
		lineText = text[lineStart : lineStart+lineEnd]
	}
	return line, column, lineText
}
