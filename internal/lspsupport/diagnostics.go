// Package lspsupport turns formula-core errors into LSP diagnostics for
// editors working on QDIMACS or QCIR buffers.
package lspsupport

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"qbf/ferrors"
)

// ConvertError maps one core error into zero or more LSP diagnostics. A nil
// err (successful parse) yields an empty, non-nil slice, clearing any
// diagnostics already published for the document.
func ConvertError(err error) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if err == nil {
		return diagnostics
	}

	switch e := err.(type) {
	case *ferrors.ParseError:
		line := e.Line - 1
		if line < 0 {
			line = 0
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(uint32(line)),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("qbf"),
			Message:  e.Message,
		})
	case *ferrors.InvalidStructure, *ferrors.NotCNF:
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(0),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("qbf"),
			Message:  e.Error(),
		})
	case *ferrors.Io:
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(0),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("qbf"),
			Message:  e.Error(),
		})
	default:
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(0),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("qbf"),
			Message:  err.Error(),
		})
	}

	return diagnostics
}

func lineRange(line uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: 0},
		End:   protocol.Position{Line: line, Character: 200},
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
