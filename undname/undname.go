// Package undname decodes symbols mangled by the Microsoft Visual C++
// compiler back into readable C++ declarations.
//
//	?x@ns@@3HA  ->  int ns::x
//
// Input that does not begin with '?' is treated as an unmangled
// identifier and comes back unchanged.
package undname

import (
	"github.com/skdltmxn/undname-go/internal/ast"
	"github.com/skdltmxn/undname-go/internal/parse"
	"github.com/skdltmxn/undname-go/internal/write"
)

// Demangler decodes a single mangled symbol: create one, call Parse,
// then Str. All AST nodes live in one arena owned by the Demangler, so
// it must be kept alive until the output string has been taken.
//
// A Demangler is not safe for concurrent use; run independent
// instances instead.
type Demangler struct {
	input string
	arena *ast.Arena
	sym   *parse.Result
	err   error
	done  bool
}

// New returns a Demangler over input. The input must not be mutated
// while the Demangler is in use; identifiers alias it.
func New(input string) *Demangler {
	return &Demangler{input: input, arena: ast.NewArena()}
}

// Parse consumes the whole symbol. The first call does the work;
// repeated calls return the latched result.
func (d *Demangler) Parse() error {
	if d.done {
		return d.err
	}
	d.done = true
	d.sym, d.err = parse.New(d.input, d.arena).Parse()
	return d.err
}

// Err returns the latched parse error, or nil on success.
func (d *Demangler) Err() error {
	return d.err
}

// Str renders the declaration. It is valid only after a successful
// Parse and returns "" otherwise.
func (d *Demangler) Str() string {
	if d.err != nil || d.sym == nil {
		return ""
	}
	return write.Decl(d.sym.Type, d.sym.Names)
}

// Demangle converts one MSVC decorated name to readable form.
func Demangle(decorated string) (string, error) {
	d := New(decorated)
	if err := d.Parse(); err != nil {
		return "", err
	}
	return d.Str(), nil
}

// DemangleSimple is Demangle with errors swallowed: on any parse
// failure the decorated name comes back unchanged.
func DemangleSimple(decorated string) string {
	s, err := Demangle(decorated)
	if err != nil {
		return decorated
	}
	return s
}

// IsMangled reports whether name looks like an MSVC decorated name.
func IsMangled(name string) bool {
	return len(name) > 0 && name[0] == '?'
}
