package semantic

import "github.com/leapstack-labs/leaplang/pkg/types"

// Symbol is one entry of the symbol table.
type Symbol struct {
	Name string     `json:"name" yaml:"name"`
	Type types.Type `json:"type" yaml:"type"`
}

// SymbolTable is the flat, program-wide mapping from variable name to
// declared type. Blocks do not open scopes. Entries keep the order in which
// names were first declared.
type SymbolTable struct {
	order  []string
	byName map[string]types.Type
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]types.Type)}
}

// Declare binds name to t and reports whether name was already present.
// A redeclaration overwrites the type but keeps the original position in
// the order.
func (s *SymbolTable) Declare(name string, t types.Type) (existed bool) {
	if _, existed = s.byName[name]; !existed {
		s.order = append(s.order, name)
	}
	s.byName[name] = t
	return existed
}

// Lookup returns the declared type of name.
func (s *SymbolTable) Lookup(name string) (types.Type, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Len returns the number of declared names.
func (s *SymbolTable) Len() int {
	return len(s.order)
}

// Symbols returns the entries in declaration order.
func (s *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, len(s.order))
	for i, name := range s.order {
		out[i] = Symbol{Name: name, Type: s.byName[name]}
	}
	return out
}

// Clone returns an independent copy of the table.
func (s *SymbolTable) Clone() *SymbolTable {
	c := &SymbolTable{
		order:  make([]string, len(s.order)),
		byName: make(map[string]types.Type, len(s.byName)),
	}
	copy(c.order, s.order)
	for k, v := range s.byName {
		c.byName[k] = v
	}
	return c
}
