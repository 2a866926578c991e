package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"rbsparse/internal/ast"
	"rbsparse/internal/location"
)

// collectSymbols builds the outline of a file from declaration and member
// locations. Nodes without a location are skipped.
func collectSymbols(decls []ast.Decl) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, d := range decls {
		if sym, ok := memberSymbol(d); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func memberSymbols(members []ast.Member) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	for _, m := range members {
		if sym, ok := memberSymbol(m); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func memberSymbol(m ast.Member) (protocol.DocumentSymbol, bool) {
	switch m := m.(type) {
	case *ast.ClassDecl:
		sym := newSymbol(m.Name.String(), protocol.SymbolKindClass, m.Loc)
		if m.Super != nil {
			sym.Detail = ptrString("< " + m.Super.Name.String())
		}
		sym.Children = memberSymbols(m.Members)
		return sym, m.Loc != nil
	case *ast.ModuleDecl:
		sym := newSymbol(m.Name.String(), protocol.SymbolKindModule, m.Loc)
		sym.Children = memberSymbols(m.Members)
		return sym, m.Loc != nil
	case *ast.InterfaceDecl:
		sym := newSymbol(m.Name.String(), protocol.SymbolKindInterface, m.Loc)
		sym.Children = memberSymbols(m.Members)
		return sym, m.Loc != nil
	case *ast.TypeAliasDecl:
		sym := newSymbol(m.Name.String(), protocol.SymbolKindStruct, m.Loc)
		sym.Detail = ptrString(ast.TypeString(m.Type, 0))
		return sym, m.Loc != nil
	case *ast.ConstantDecl:
		sym := newSymbol(m.Name.String(), protocol.SymbolKindConstant, m.Loc)
		sym.Detail = ptrString(ast.TypeString(m.Type, 0))
		return sym, m.Loc != nil
	case *ast.GlobalDecl:
		sym := newSymbol(m.Name, protocol.SymbolKindVariable, m.Loc)
		sym.Detail = ptrString(ast.TypeString(m.Type, 0))
		return sym, m.Loc != nil
	case *ast.MethodDefinition:
		name := m.Name
		if m.Kind != ast.InstanceMethod {
			name = "self." + name
		}
		sym := newSymbol(name, protocol.SymbolKindMethod, m.Loc)
		overloads := make([]string, len(m.Types))
		for i, t := range m.Types {
			overloads[i] = t.String()
		}
		sym.Detail = ptrString(strings.Join(overloads, " | "))
		return sym, m.Loc != nil
	case *ast.AliasMember:
		sym := newSymbol(m.NewName, protocol.SymbolKindMethod, m.Loc)
		sym.Detail = ptrString("alias of " + m.OldName)
		return sym, m.Loc != nil
	case *ast.Attribute:
		sym := newSymbol(m.Name, protocol.SymbolKindProperty, m.Loc)
		sym.Detail = ptrString(ast.TypeString(m.Type, 0))
		return sym, m.Loc != nil
	case *ast.VariableMember:
		sym := newSymbol(m.Name, protocol.SymbolKindField, m.Loc)
		sym.Detail = ptrString(ast.TypeString(m.Type, 0))
		return sym, m.Loc != nil
	}
	return protocol.DocumentSymbol{}, false
}

func newSymbol(name string, kind protocol.SymbolKind, loc *location.Location) protocol.DocumentSymbol {
	if loc == nil {
		return protocol.DocumentSymbol{Name: name, Kind: kind}
	}
	selection := loc.Range
	if r, ok := loc.Child("name"); ok {
		selection = r
	}
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          toRange(loc.Buffer, loc.Range),
		SelectionRange: toRange(loc.Buffer, selection),
	}
}
