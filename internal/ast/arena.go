package ast

// Nodes are handed out from fixed-capacity pages so their addresses
// stay stable while the tree grows. There is no per-node release; the
// whole tree goes away with the arena.
const pageSize = 128

// Arena bump-allocates AST nodes. It must outlive every reference into
// the tree, including the writer phase.
type Arena struct {
	types [][]Type
	names [][]Name
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewType returns a zeroed Type owned by the arena.
func (a *Arena) NewType() *Type {
	if n := len(a.types); n == 0 || len(a.types[n-1]) == cap(a.types[n-1]) {
		a.types = append(a.types, make([]Type, 0, pageSize))
	}
	page := &a.types[len(a.types)-1]
	*page = append(*page, Type{})
	return &(*page)[len(*page)-1]
}

// NewName returns a Name with the given text, owned by the arena.
func (a *Arena) NewName(text string) *Name {
	if n := len(a.names); n == 0 || len(a.names[n-1]) == cap(a.names[n-1]) {
		a.names = append(a.names, make([]Name, 0, pageSize))
	}
	page := &a.names[len(a.names)-1]
	*page = append(*page, Name{Text: text})
	return &(*page)[len(*page)-1]
}
