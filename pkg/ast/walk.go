package ast

import (
	"fmt"
	"io"
	"strings"
)

// Visitor is called for every node in depth-first, pre-order. Returning false
// skips the node's children.
type Visitor func(n Node, depth int) bool

// Walk traverses the tree rooted at n.
func Walk(n Node, visit Visitor) {
	walk(n, 0, visit)
}

func walk(n Node, depth int, visit Visitor) {
	if n == nil || !visit(n, depth) {
		return
	}
	for _, c := range n.Children() {
		walk(c, depth+1, visit)
	}
}

// Fprint writes one line per node, indented two spaces per depth level, in
// the form `Kind : "value" [line,column]`.
func Fprint(w io.Writer, n Node) error {
	var err error
	Walk(n, func(n Node, depth int) bool {
		if err != nil {
			return false
		}
		pos := n.Token().Pos
		_, err = fmt.Fprintf(w, "%s%s : \"%s\" [%d,%d]\n",
			strings.Repeat("  ", depth), n.Kind(), n.Value(), pos.Line, pos.Column)
		return true
	})
	return err
}

// Sprint returns the output of Fprint as a string.
func Sprint(n Node) string {
	var b strings.Builder
	_ = Fprint(&b, n)
	return b.String()
}

// Equal reports whether two trees have the same kind, value and child shape
// at every node. Positions are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.Value() != b.Value() {
		return false
	}
	if a.Kind() == KindDecl && a.Token().Lexeme != b.Token().Lexeme {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// Tree is a plain, serializable snapshot of a node and its descendants.
type Tree struct {
	Kind     Kind    `json:"kind" yaml:"kind"`
	Value    string  `json:"value" yaml:"value"`
	Type     string  `json:"type,omitempty" yaml:"type,omitempty"`
	Line     int     `json:"line" yaml:"line"`
	Column   int     `json:"column" yaml:"column"`
	Children []*Tree `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToTree converts a node into its serializable form.
func ToTree(n Node) *Tree {
	if n == nil {
		return nil
	}
	pos := n.Token().Pos
	t := &Tree{Kind: n.Kind(), Value: n.Value(), Line: pos.Line, Column: pos.Column}
	if d, ok := n.(*Decl); ok {
		t.Type = d.TypeName()
	}
	for _, c := range n.Children() {
		t.Children = append(t.Children, ToTree(c))
	}
	return t
}
