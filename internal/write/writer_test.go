package write

import (
	"testing"

	"github.com/skdltmxn/undname-go/internal/ast"
)

func names(texts ...string) []*ast.Name {
	var ns []*ast.Name
	for _, s := range texts {
		ns = append(ns, &ast.Name{Text: s})
	}
	return ns
}

func TestDeclPrimitive(t *testing.T) {
	got := Decl(&ast.Type{Prim: ast.Int}, names("x"))
	if got != "int x" {
		t.Fatalf("Decl = %q, want %q", got, "int x")
	}
}

func TestDeclQualifiedName(t *testing.T) {
	got := Decl(&ast.Type{Prim: ast.Int}, names("ns", "x"))
	if got != "int ns::x" {
		t.Fatalf("Decl = %q, want %q", got, "int ns::x")
	}
}

// A pointer to a function keeps the parameter list outside the
// grouping: pre emits "pre(ret) (*", post closes ")" then emits the
// parameters.
func TestDeclPointerToFunction(t *testing.T) {
	ty := &ast.Type{
		Prim: ast.Ptr,
		Ptr: &ast.Type{
			Prim:   ast.Function,
			Ptr:    &ast.Type{Prim: ast.Int},
			Params: []*ast.Type{{Prim: ast.Int}},
		},
	}
	got := Decl(ty, names("f"))
	if got != "int (*f)(int)" {
		t.Fatalf("Decl = %q, want %q", got, "int (*f)(int)")
	}
}

// A pointer to an array groups the same way, with the length outside.
func TestDeclPointerToArray(t *testing.T) {
	ty := &ast.Type{
		Prim: ast.Ptr,
		Ptr: &ast.Type{
			Prim: ast.Array,
			Len:  10,
			Ptr:  &ast.Type{Prim: ast.Int},
		},
	}
	got := Decl(ty, names("a"))
	if got != "int (*a)[10]" {
		t.Fatalf("Decl = %q, want %q", got, "int (*a)[10]")
	}
}

func TestDeclPlainPointerNoParens(t *testing.T) {
	ty := &ast.Type{Prim: ast.Ptr, Ptr: &ast.Type{Prim: ast.Int}}
	got := Decl(ty, names("x"))
	if got != "int *x" {
		t.Fatalf("Decl = %q, want %q", got, "int *x")
	}
}

func TestDeclReference(t *testing.T) {
	ty := &ast.Type{Prim: ast.Ref, Ptr: &ast.Type{Prim: ast.Int}}
	got := Decl(ty, names("r"))
	if got != "int &r" {
		t.Fatalf("Decl = %q, want %q", got, "int &r")
	}
}

func TestDeclConstructor(t *testing.T) {
	got := Decl(&ast.Type{Prim: ast.Unknown}, names("?0Foo"))
	if got != "Foo::Foo" {
		t.Fatalf("Decl = %q, want %q", got, "Foo::Foo")
	}
}

func TestDeclDestructor(t *testing.T) {
	got := Decl(&ast.Type{Prim: ast.Unknown}, names("?1Foo"))
	if got != "Foo::~Foo" {
		t.Fatalf("Decl = %q, want %q", got, "Foo::~Foo")
	}
}

// Template arguments on a structor component attach to the first
// occurrence of the class name.
func TestDeclTemplatedStructor(t *testing.T) {
	n := &ast.Name{Text: "?0Foo", Params: []*ast.Type{{Prim: ast.Int}}}
	got := Decl(&ast.Type{Prim: ast.Unknown}, []*ast.Name{n})
	if got != "Foo<int>::Foo" {
		t.Fatalf("Decl = %q, want %q", got, "Foo<int>::Foo")
	}

	n.Text = "?1Foo"
	got = Decl(&ast.Type{Prim: ast.Unknown}, []*ast.Name{n})
	if got != "Foo<int>::~Foo" {
		t.Fatalf("Decl = %q, want %q", got, "Foo<int>::~Foo")
	}
}

func TestDeclMemberConst(t *testing.T) {
	ty := &ast.Type{
		Prim:   ast.Function,
		Sclass: ast.Const,
		Ptr:    &ast.Type{Prim: ast.Int},
		Params: []*ast.Type{{Prim: ast.Void}},
	}
	got := Decl(ty, names("C", "f"))
	if got != "int C::f(void)const" {
		t.Fatalf("Decl = %q, want %q", got, "int C::f(void)const")
	}
}

func TestDeclTagTypes(t *testing.T) {
	tests := []struct {
		prim ast.Prim
		want string
	}{
		{ast.Struct, "struct S x"},
		{ast.Union, "union S x"},
		{ast.Class, "class S x"},
		{ast.Enum, "enum S x"},
	}
	for _, tt := range tests {
		ty := &ast.Type{Prim: tt.prim, Names: names("S")}
		if got := Decl(ty, names("x")); got != tt.want {
			t.Errorf("Decl(%v) = %q, want %q", tt.prim, got, tt.want)
		}
	}
}

func TestDeclUnknownEchoesName(t *testing.T) {
	got := Decl(&ast.Type{Prim: ast.Unknown}, names("raw_symbol"))
	if got != "raw_symbol" {
		t.Fatalf("Decl = %q, want %q", got, "raw_symbol")
	}
}
