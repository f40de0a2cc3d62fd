package ferrors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders a core error as a colorized diagnostic suitable for a
// terminal; a ParseError also shows its path:line and the offending source
// line. It is driver-only: the core never imports it and
// never produces colored output itself.
type Reporter struct {
	path   string
	source string
	lines  []string
}

// NewReporter creates a Reporter for a file whose contents are source.
func NewReporter(path, source string) *Reporter {
	return &Reporter{
		path:   path,
		source: source,
		lines:  strings.Split(source, "\n"),
	}
}

// Format renders err as a single multi-line diagnostic string.
func (r *Reporter) Format(err error) string {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	switch e := err.(type) {
	case *ParseError:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%s: %s\n", red("error"), e.Message))
		b.WriteString(fmt.Sprintf("  %s %s:%d\n", dim("-->"), r.path, e.Line))
		if e.Line >= 1 && e.Line <= len(r.lines) {
			b.WriteString(fmt.Sprintf("  %s %s\n", dim("│"), r.lines[e.Line-1]))
		}
		return b.String()
	case *InvalidStructure:
		return fmt.Sprintf("%s: %s\n", red("error"), bold(e.Error()))
	case *NotCNF:
		return fmt.Sprintf("%s: %s\n", red("error"), bold(e.Error()))
	case *Cancelled:
		return fmt.Sprintf("%s: %s\n", color.New(color.FgYellow, color.Bold).Sprint("cancelled"), "operation was cancelled before it completed")
	case *Io:
		return fmt.Sprintf("%s: %s\n", red("error"), e.Error())
	default:
		return fmt.Sprintf("%s: %s\n", red("error"), err.Error())
	}
}
