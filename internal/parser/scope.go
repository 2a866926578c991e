package parser

import "errors"

var (
	errResetScope = errors.New("cannot insert a type variable into a reset scope")
	errEmptyScope = errors.New("no type variable scope is open")
)

// typeVarTable is one frame of bound type variable names. A boundary table
// holds no names and stops lookups from seeing outer frames.
type typeVarTable struct {
	names    map[string]struct{}
	boundary bool
}

// scopeStack tracks which identifiers are bound as type variables while a
// declaration is being parsed.
type scopeStack struct {
	tables []*typeVarTable
}

// push opens a frame. With reset, a boundary is pushed first so that names
// from enclosing frames are hidden.
func (s *scopeStack) push(reset bool) {
	if reset {
		s.tables = append(s.tables, &typeVarTable{boundary: true})
	}
	s.tables = append(s.tables, &typeVarTable{names: make(map[string]struct{})})
}

// pop closes the top frame together with the boundary pushed for it.
func (s *scopeStack) pop() error {
	if len(s.tables) == 0 {
		return errEmptyScope
	}
	s.tables = s.tables[:len(s.tables)-1]
	if n := len(s.tables); n > 0 && s.tables[n-1].boundary {
		s.tables = s.tables[:n-1]
	}
	return nil
}

func (s *scopeStack) insert(name string) error {
	if len(s.tables) == 0 {
		return errEmptyScope
	}
	top := s.tables[len(s.tables)-1]
	if top.boundary {
		return errResetScope
	}
	top.names[name] = struct{}{}
	return nil
}

func (s *scopeStack) contains(name string) bool {
	for i := len(s.tables) - 1; i >= 0; i-- {
		t := s.tables[i]
		if t.boundary {
			return false
		}
		if _, ok := t.names[name]; ok {
			return true
		}
	}
	return false
}

func (s *scopeStack) depth() int {
	return len(s.tables)
}
