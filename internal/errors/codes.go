package errors

// Error codes for rbsparse diagnostics.
//
// Error code ranges:
// E0100-E0199: Parser errors
// E0900-E0999: Reserved for tooling errors

const (
	// E0100: The token does not fit the production being parsed
	ErrorSyntax = "E0100"

	// E0101: Unterminated string or annotation, or an unknown character
	ErrorLexical = "E0101"

	// E0102: A type variable was bound into a reset scope
	ErrorScope = "E0102"

	// E0103: Brackets or declarations are nested past the configured limit
	ErrorNestingTooDeep = "E0103"

	// E0900: A file could not be read
	ErrorIO = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorSyntax:
		return "Unexpected token in a signature"
	case ErrorLexical:
		return "Source text could not be split into tokens"
	case ErrorScope:
		return "Type variable bound outside of an open scope"
	case ErrorNestingTooDeep:
		return "Signature is nested too deeply to be parsed safely"
	case ErrorIO:
		return "Signature file could not be read"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && (code >= "E0800" && code < "E0900" || code[0] == 'W')
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	case IsWarning(code):
		return "Warning"
	default:
		return "Unknown"
	}
}
