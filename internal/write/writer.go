// Package write renders a parsed declaration tree back into C++
// source syntax.
//
// C declarator syntax puts the declared name in the middle of the type
// expression, so a type is emitted in two fragments: everything to the
// left of the name (pre) and everything to the right (post). The only
// grouping the writer inserts is around a pointer or reference whose
// pointee is a function or an array, which is what makes
// "int (*f)(int)" and "int (*a)[10]" come out right.
package write

import (
	"fmt"
	"strings"

	"github.com/skdltmxn/undname-go/internal/ast"
)

var primNames = map[ast.Prim]string{
	ast.Void:    "void",
	ast.Bool:    "bool",
	ast.Char:    "char",
	ast.Schar:   "signed char",
	ast.Uchar:   "unsigned char",
	ast.Short:   "short",
	ast.Ushort:  "unsigned short",
	ast.Int:     "int",
	ast.Uint:    "unsigned int",
	ast.Long:    "long",
	ast.Ulong:   "unsigned long",
	ast.Llong:   "long long",
	ast.Ullong:  "unsigned long long",
	ast.Wchar:   "wchar_t",
	ast.Float:   "float",
	ast.Double:  "double",
	ast.Ldouble: "long double",
}

var tagNames = map[ast.Prim]string{
	ast.Struct: "struct",
	ast.Union:  "union",
	ast.Class:  "class",
	ast.Enum:   "enum",
}

// Writer assembles one declaration.
type Writer struct {
	sb strings.Builder
}

// Decl renders the declaration for a symbol: the type's pre fragment,
// the qualified name, then the post fragment.
func Decl(ty *ast.Type, names []*ast.Name) string {
	var w Writer
	w.pre(ty)
	w.space()
	w.nameSeq(names)
	w.post(ty)
	return w.sb.String()
}

func (w *Writer) pre(ty *ast.Type) {
	switch ty.Prim {
	case ast.Unknown, ast.None:

	case ast.Function:
		w.pre(ty.Ptr)
		return

	case ast.Ptr, ast.Ref:
		w.pre(ty.Ptr)
		w.space()
		// "()" and "[]" bind tighter than "*", so a pointer to a
		// function or an array needs explicit grouping.
		if ty.Ptr.Prim == ast.Function || ty.Ptr.Prim == ast.Array {
			w.sb.WriteByte('(')
		}
		if ty.Prim == ast.Ptr {
			w.sb.WriteByte('*')
		} else {
			w.sb.WriteByte('&')
		}

	case ast.Array:
		w.pre(ty.Ptr)

	case ast.Struct, ast.Union, ast.Class, ast.Enum:
		w.sb.WriteString(tagNames[ty.Prim])
		w.space()
		w.nameSeq(ty.Names)

	default:
		w.sb.WriteString(primNames[ty.Prim])
	}

	if ty.Sclass&ast.Const != 0 {
		w.space()
		w.sb.WriteString("const")
	}
}

func (w *Writer) post(ty *ast.Type) {
	switch ty.Prim {
	case ast.Function:
		w.sb.WriteByte('(')
		w.params(ty.Params)
		w.sb.WriteByte(')')
		if ty.Sclass&ast.Const != 0 {
			w.sb.WriteString("const")
		}

	case ast.Ptr, ast.Ref:
		if ty.Ptr.Prim == ast.Function || ty.Ptr.Prim == ast.Array {
			w.sb.WriteByte(')')
		}
		w.post(ty.Ptr)

	case ast.Array:
		fmt.Fprintf(&w.sb, "[%d]", ty.Len)
		w.post(ty.Ptr)
	}
}

func (w *Writer) params(params []*ast.Type) {
	for i, tp := range params {
		if i != 0 {
			w.sb.WriteByte(',')
		}
		w.pre(tp)
		w.post(tp)
	}
}

// nameSeq renders a qualified name, outermost component first. The
// terminal component gets the constructor/destructor rewriting.
func (w *Writer) nameSeq(names []*ast.Name) {
	for i, n := range names {
		if i != 0 {
			w.sb.WriteString("::")
		}
		if i == len(names)-1 {
			w.lastName(n)
			continue
		}
		w.sb.WriteString(n.Text)
		w.tparams(n)
	}
}

// lastName rewrites the "?0"/"?1" structor markers: "?0Foo" becomes
// Foo::Foo and "?1Foo" becomes Foo::~Foo, with any template arguments
// attached to the first occurrence.
func (w *Writer) lastName(n *ast.Name) {
	switch {
	case strings.HasPrefix(n.Text, "?0"):
		s := n.Text[2:]
		w.sb.WriteString(s)
		w.tparams(n)
		w.sb.WriteString("::")
		w.sb.WriteString(s)
	case strings.HasPrefix(n.Text, "?1"):
		s := n.Text[2:]
		w.sb.WriteString(s)
		w.tparams(n)
		w.sb.WriteString("::~")
		w.sb.WriteString(s)
	default:
		w.sb.WriteString(n.Text)
		w.tparams(n)
	}
}

func (w *Writer) tparams(n *ast.Name) {
	if len(n.Params) == 0 {
		return
	}
	w.sb.WriteByte('<')
	w.params(n.Params)
	w.sb.WriteByte('>')
}

// space separates two identifier-like tokens: it writes a single space
// only when the last emitted character is alphabetic, which prevents
// both "intx" and doubled or leading spaces.
func (w *Writer) space() {
	s := w.sb.String()
	if len(s) == 0 {
		return
	}
	if c := s[len(s)-1]; ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
		w.sb.WriteByte(' ')
	}
}
