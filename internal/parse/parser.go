// Package parse implements the recursive-descent grammar over MSVC
// mangled symbols.
package parse

import (
	"errors"
	"fmt"

	"github.com/skdltmxn/undname-go/internal/ast"
	"github.com/skdltmxn/undname-go/internal/scan"
)

// Errors latched by the parser. The first failure sticks; every later
// helper observes it and becomes a no-op.
var (
	// ErrBadNumber indicates a number token with neither a lead digit
	// nor a valid hex run terminator.
	ErrBadNumber = errors.New("undname: bad number")

	// ErrMissingAt indicates an identifier that ran past the end of
	// input without its '@' terminator.
	ErrMissingAt = errors.New("undname: read_string: missing '@'")

	// ErrNameRef indicates a name back-reference past the table size.
	ErrNameRef = errors.New("undname: name reference too large")

	// ErrBackref indicates a parameter back-reference past the table
	// size.
	ErrBackref = errors.New("undname: invalid backreference")

	// ErrFuncClass indicates an unrecognized function-class byte.
	ErrFuncClass = errors.New("undname: unknown func class")

	// ErrCallConv indicates an unrecognized calling-convention byte.
	ErrCallConv = errors.New("undname: unknown calling convention")

	// ErrPrimType indicates an unrecognized primitive selector.
	ErrPrimType = errors.New("undname: unknown primitive type")

	// ErrArrayDim indicates a non-positive array dimension.
	ErrArrayDim = errors.New("undname: invalid array dimension")

	// ErrStorage indicates an unrecognized storage-class byte after
	// the $$C wrapper.
	ErrStorage = errors.New("undname: unknown storage class")
)

// Result is the root of a parsed symbol: the declared type plus the
// qualified name, outermost component first.
type Result struct {
	Type  *ast.Type
	Names []*ast.Name
}

// Parser decodes one mangled symbol. It is single use.
type Parser struct {
	cur   *scan.Cursor
	arena *ast.Arena

	// Most-recently-seen name components, referenced from the input by
	// a single decimal digit. Global to one parse; the parameter-type
	// table lives on readFuncParams' stack instead.
	backrefs  [10]string
	nbackrefs int

	err error
}

// New returns a parser over input, allocating nodes from arena.
func New(input string, arena *ast.Arena) *Parser {
	return &Parser{cur: scan.New(input), arena: arena}
}

// Parse consumes the whole symbol and returns its declaration tree.
func (p *Parser) Parse() (*Result, error) {
	res := &Result{Type: p.arena.NewType()}

	if !p.cur.Consume("?") {
		// Not a mangled name; hand it back as-is.
		res.Names = []*ast.Name{p.arena.NewName(p.cur.Rest())}
		res.Type.Prim = ast.Unknown
		return res, nil
	}

	res.Names = p.readNameSeq()

	switch {
	case p.err != nil:
	case p.cur.Consume("3"):
		p.readVarType(res.Type)
	case p.cur.Consume("Y"):
		p.readFuncType(res.Type, ast.Global)
	default:
		// Member function: function class, the 64-bit marker, then
		// the member cv-qualifiers ahead of the usual function type.
		fc := p.readFuncClass()
		p.expect("E")
		sclass := p.readQualSclass()
		p.readFuncType(res.Type, fc)
		res.Type.Sclass = sclass
	}

	if p.err != nil {
		return nil, p.err
	}
	return res, nil
}

// Err returns the latched error, if any.
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Parser) expect(lit string) {
	if p.err != nil {
		return
	}
	if !p.cur.Consume(lit) {
		p.err = fmt.Errorf("undname: %s expected, but got %s", lit, p.cur.Rest())
	}
}

// readString consumes an identifier up to and including its '@'
// terminator. The returned string aliases the input.
func (p *Parser) readString() string {
	if p.err != nil {
		return ""
	}
	rest := p.cur.Rest()
	for i := 0; i < len(rest); i++ {
		if rest[i] == '@' {
			p.cur.Trim(i + 1)
			return rest[:i]
		}
	}
	p.fail(ErrMissingAt)
	return ""
}

func (p *Parser) memorize(s string) {
	if p.nbackrefs >= len(p.backrefs) {
		return
	}
	for i := 0; i < p.nbackrefs; i++ {
		if p.backrefs[i] == s {
			return
		}
	}
	p.backrefs[p.nbackrefs] = s
	p.nbackrefs++
}

// readNameSeq reads qualified-name components until the terminating
// '@'. The mangled encoding is innermost first; the returned slice is
// outermost first, the way the writer walks it.
func (p *Parser) readNameSeq() []*ast.Name {
	var names []*ast.Name

	for p.err == nil && !p.cur.Consume("@") {
		switch {
		case p.cur.StartsWithDigit():
			i := p.cur.Get() - '0'
			if i >= p.nbackrefs {
				p.fail(ErrNameRef)
				return nil
			}
			names = append(names, p.arena.NewName(p.backrefs[i]))

		case p.cur.Consume("?$"):
			// Template component: identifier, argument list, '@'.
			// The identifier is not memoized.
			n := p.arena.NewName(p.readString())
			for p.err == nil && !p.cur.Consume("@") {
				tp := p.arena.NewType()
				p.readVarType(tp)
				n.Params = append(n.Params, tp)
			}
			names = append(names, n)

		default:
			s := p.readString()
			p.memorize(s)
			names = append(names, p.arena.NewName(s))
		}
	}

	if p.err != nil {
		return nil
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// readNumber reads a signed number: an optional '?' sign, then either
// a single decimal digit d meaning d+1, or a run of hex letters A-P
// (high nibble first) terminated by '@'.
func (p *Parser) readNumber() int32 {
	if p.err != nil {
		return 0
	}

	neg := p.cur.Consume("?")

	if p.cur.StartsWithDigit() {
		n := int32(p.cur.Get() - '0' + 1)
		if neg {
			return -n
		}
		return n
	}

	rest := p.cur.Rest()
	var n int32
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == '@' {
			p.cur.Trim(i + 1)
			if neg {
				return -n
			}
			return n
		}
		if c < 'A' || c > 'P' {
			break
		}
		n = n<<4 + int32(c-'A')
	}

	p.fail(ErrBadNumber)
	return 0
}

func (p *Parser) readFuncType(ty *ast.Type, fc ast.FuncClass) {
	if p.err != nil {
		return
	}

	ty.Prim = ast.Function
	ty.FuncClass = fc
	ty.CallConv = p.readCallConv()

	sclass := p.readRetSclass()
	ty.Ptr = p.arena.NewType()
	p.readRetType(ty.Ptr)
	ty.Ptr.Sclass |= sclass

	p.readFuncParams(ty)
}

func (p *Parser) readCallConv() ast.CallConv {
	if p.err != nil {
		return ast.Cdecl
	}
	c := p.cur.Get()
	switch c {
	case 'A', 'B':
		return ast.Cdecl
	case 'C':
		return ast.Pascal
	case 'E':
		return ast.Thiscall
	case 'G':
		return ast.Stdcall
	case 'I':
		return ast.Fastcall
	default:
		p.cur.Unget(c)
		p.fail(ErrCallConv)
		return ast.Cdecl
	}
}

func (p *Parser) readFuncClass() ast.FuncClass {
	if p.err != nil {
		return 0
	}
	c := p.cur.Get()
	switch c {
	case 'A':
		return ast.Private
	case 'B':
		return ast.Private | ast.FFar
	case 'C':
		return ast.Private | ast.Static
	case 'D':
		return ast.Private | ast.Static | ast.FFar
	case 'E':
		return ast.Private | ast.Virtual
	case 'F':
		return ast.Private | ast.Virtual | ast.FFar
	case 'I':
		return ast.Protected
	case 'J':
		return ast.Protected | ast.FFar
	case 'K':
		return ast.Protected | ast.Static
	case 'L':
		return ast.Protected | ast.Static | ast.FFar
	case 'M':
		return ast.Protected | ast.Virtual
	case 'N':
		return ast.Protected | ast.Virtual | ast.FFar
	case 'Q':
		return ast.Public
	case 'R':
		return ast.Public | ast.FFar
	case 'S':
		return ast.Public | ast.Static
	case 'T':
		return ast.Public | ast.Static | ast.FFar
	case 'U':
		return ast.Public | ast.Virtual
	case 'V':
		return ast.Public | ast.Virtual | ast.FFar
	case 'Y':
		return ast.Global
	case 'Z':
		return ast.Global | ast.FFar
	default:
		p.cur.Unget(c)
		p.fail(ErrFuncClass)
		return 0
	}
}

// readQualSclass reads the A-D cv-qualifier byte used for member
// functions and for return values after a '?'. An unrecognized byte is
// ungot and means unqualified.
func (p *Parser) readQualSclass() ast.Storage {
	if p.err != nil {
		return 0
	}
	c := p.cur.Get()
	switch c {
	case 'A':
		return 0
	case 'B':
		return ast.Const
	case 'C':
		return ast.Volatile
	case 'D':
		return ast.Const | ast.Volatile
	default:
		p.cur.Unget(c)
		return 0
	}
}

func (p *Parser) readRetSclass() ast.Storage {
	if p.err != nil || !p.cur.Consume("?") {
		return 0
	}
	return p.readQualSclass()
}

// readRetType reads a return type, where a lone '@' means a structor
// with no declared return type.
func (p *Parser) readRetType(ty *ast.Type) {
	if p.err != nil {
		return
	}
	if p.cur.Consume("@") {
		ty.Prim = ast.None
		return
	}
	p.readVarType(ty)
}

// readFuncParams reads a parameter list. The type back-reference table
// is scoped to a single list, so it lives here rather than on the
// Parser. Iteration halts at '@' or 'Z'; the terminator is consumed as
// "@Z", else "Z", else "@".
func (p *Parser) readFuncParams(fn *ast.Type) {
	var backrefs []*ast.Type

	for p.err == nil && !p.cur.Empty() && !p.cur.StartsWith('@') && !p.cur.StartsWith('Z') {
		if p.cur.StartsWithDigit() {
			i := p.cur.Get() - '0'
			if i >= len(backrefs) {
				p.fail(ErrBackref)
				return
			}
			// A back-reference stands for an isomorphic subtree; a
			// shallow copy of the memoized node is enough.
			dup := p.arena.NewType()
			*dup = *backrefs[i]
			fn.Params = append(fn.Params, dup)
			continue
		}

		before := p.cur.Remaining()
		tp := p.arena.NewType()
		p.readVarType(tp)
		if p.err != nil {
			return
		}
		// Single-byte codes are cheaper to re-parse than to index, so
		// only multi-byte types are memoized.
		if before-p.cur.Remaining() > 1 && len(backrefs) < 10 {
			backrefs = append(backrefs, tp)
		}
		fn.Params = append(fn.Params, tp)
	}

	if !p.cur.Consume("@Z") && !p.cur.Consume("Z") {
		p.cur.Consume("@")
	}
}

func (p *Parser) readVarType(ty *ast.Type) {
	if p.err != nil {
		return
	}

	switch {
	case p.cur.Consume("W4"):
		ty.Prim = ast.Enum
		ty.Names = p.readNameSeq()

	case p.cur.Consume("P6A"):
		// Pointer to function. The pointee carries the signature; its
		// parameter list runs to "@Z" (or a lone "Z").
		ty.Prim = ast.Ptr
		ty.Ptr = p.arena.NewType()
		fn := ty.Ptr
		fn.Prim = ast.Function
		fn.CallConv = ast.Cdecl
		fn.Ptr = p.arena.NewType()
		p.readVarType(fn.Ptr)
		p.readFuncParams(fn)

	case p.cur.Consume("T"):
		ty.Prim = ast.Union
		ty.Names = p.readNameSeq()

	case p.cur.Consume("U"):
		ty.Prim = ast.Struct
		ty.Names = p.readNameSeq()

	case p.cur.Consume("V"):
		ty.Prim = ast.Class
		ty.Names = p.readNameSeq()

	case p.cur.StartsWith('A'), p.cur.StartsWith('P'), p.cur.StartsWith('Q'):
		switch p.cur.Get() {
		case 'A':
			ty.Prim = ast.Ref
		case 'P':
			ty.Prim = ast.Ptr
		case 'Q':
			ty.Prim = ast.Ptr
			ty.Sclass |= ast.Const
		}
		// A pointee is introduced by the 64-bit marker, then its
		// storage class, then the type itself.
		p.expect("E")
		sclass := p.readPointeeSclass()
		ty.Ptr = p.arena.NewType()
		p.readVarType(ty.Ptr)
		if p.err != nil {
			return
		}
		ty.Ptr.Sclass |= sclass

	case p.cur.Consume("Y"):
		p.readArrayType(ty)

	default:
		p.readPrimType(ty)
	}
}

// readPointeeSclass maps the A-H storage-class byte of a pointee. An
// unknown byte is ungot and means unqualified.
func (p *Parser) readPointeeSclass() ast.Storage {
	if p.err != nil {
		return 0
	}
	c := p.cur.Get()
	switch c {
	case 'A':
		return 0
	case 'B':
		return ast.Const
	case 'C':
		return ast.Volatile
	case 'D':
		return ast.Const | ast.Volatile
	case 'E':
		return ast.Far
	case 'F':
		return ast.Const | ast.Far
	case 'G':
		return ast.Volatile | ast.Far
	case 'H':
		return ast.Const | ast.Volatile | ast.Far
	default:
		p.cur.Unget(c)
		return 0
	}
}

// readArrayType reads an array: a dimension count, that many lengths
// forming a left spine of Array nodes, an optional $$C cv-wrapper, and
// the element type in the deepest slot.
func (p *Parser) readArrayType(ty *ast.Type) {
	dim := p.readNumber()
	if p.err != nil {
		return
	}
	if dim <= 0 {
		p.fail(ErrArrayDim)
		return
	}

	tp := ty
	for i := int32(0); i < dim; i++ {
		tp.Prim = ast.Array
		tp.Len = p.readNumber()
		tp.Ptr = p.arena.NewType()
		tp = tp.Ptr
	}
	if p.err != nil {
		return
	}

	if p.cur.Consume("$$C") {
		c := p.cur.Get()
		switch c {
		case 'A':
		case 'B':
			tp.Sclass |= ast.Const
		case 'C', 'D':
			tp.Sclass |= ast.Const | ast.Volatile
		default:
			p.cur.Unget(c)
			p.fail(ErrStorage)
			return
		}
	}

	p.readVarType(tp)
}

func (p *Parser) readPrimType(ty *ast.Type) {
	if p.err != nil {
		return
	}
	c := p.cur.Get()
	switch c {
	case 'X':
		ty.Prim = ast.Void
	case 'D':
		ty.Prim = ast.Char
	case 'C':
		ty.Prim = ast.Schar
	case 'E':
		ty.Prim = ast.Uchar
	case 'F':
		ty.Prim = ast.Short
	case 'G':
		ty.Prim = ast.Ushort
	case 'H':
		ty.Prim = ast.Int
	case 'I':
		ty.Prim = ast.Uint
	case 'J':
		ty.Prim = ast.Long
	case 'K':
		ty.Prim = ast.Ulong
	case 'M':
		ty.Prim = ast.Float
	case 'N':
		ty.Prim = ast.Double
	case 'O':
		ty.Prim = ast.Ldouble
	case '_':
		c2 := p.cur.Get()
		switch c2 {
		case 'N':
			ty.Prim = ast.Bool
		case 'J':
			ty.Prim = ast.Llong
		case 'K':
			ty.Prim = ast.Ullong
		case 'W':
			ty.Prim = ast.Wchar
		default:
			p.cur.Unget(c2)
			p.fail(ErrPrimType)
		}
	default:
		p.cur.Unget(c)
		p.fail(ErrPrimType)
	}
}
