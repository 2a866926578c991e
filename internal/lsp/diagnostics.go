package lsp

import (
	stderrors "errors"

	protocol "github.com/tliron/glsp/protocol_3_16"

	rbserrors "rbsparse/internal/errors"
	"rbsparse/internal/location"
	"rbsparse/internal/parser"
)

const diagnosticSource = "rbsparse"

// ConvertError turns the result of parsing buf into LSP diagnostics. A nil
// error yields an empty slice so that publishing it clears earlier
// diagnostics.
func ConvertError(buf *location.Buffer, err error) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if err == nil {
		return diagnostics
	}

	cerr := rbserrors.FromError(err)

	var rng protocol.Range
	var perr *parser.ParseError
	if stderrors.As(err, &perr) {
		rng = toRange(buf, perr.Range)
	} else {
		start := toPosition(buf, cerr.Position)
		end := start
		end.Character += spanUnits(buf, cerr.Position, cerr.Length)
		rng = protocol.Range{Start: start, End: end}
	}

	message := cerr.Message
	for _, note := range cerr.Notes {
		message += "\n" + note
	}

	severity := protocol.DiagnosticSeverityError
	if rbserrors.IsWarning(cerr.Code) {
		severity = protocol.DiagnosticSeverityWarning
	}

	return append(diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: cerr.Code},
		Source:   ptrString(diagnosticSource),
		Message:  message,
	})
}

func ptrString(s string) *string {
	return &s
}
