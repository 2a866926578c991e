package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"rbsparse/internal/ast"
	rbserrors "rbsparse/internal/errors"
	"rbsparse/internal/location"
	"rbsparse/internal/workspace"
)

const PROMPT = ">> "

// methodPrefix switches a line from type to method-type parsing.
const methodPrefix = ":m "

// Start reads one expression per line from in and writes its canonical form,
// or a diagnostic, to out. Lines starting with ":m " are parsed as method
// types. Parsing goes through loader so its nesting limit applies. It
// returns when in is exhausted.
func Start(in io.Reader, out io.Writer, loader *workspace.Loader) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fmt.Fprintln(out, Eval(loader, line))
	}
}

// Eval parses a single line and returns the text to print for it.
func Eval(loader *workspace.Loader, line string) string {
	var (
		node ast.Node
		err  error
		buf  *location.Buffer
	)
	if expr, ok := strings.CutPrefix(line, methodPrefix); ok {
		buf = location.NewBuffer("(repl)", expr)
		var mt *ast.MethodType
		if mt, err = loader.ParseMethodType(buf); mt != nil {
			node = mt
		}
	} else {
		buf = location.NewBuffer("(repl)", line)
		node, err = loader.ParseType(buf)
	}

	if err != nil {
		report := rbserrors.NewErrorReporter(buf.Name, buf.Content)
		return strings.TrimRight(report.FormatError(rbserrors.FromError(err)), "\n")
	}
	if node == nil {
		return ""
	}
	return node.String()
}
