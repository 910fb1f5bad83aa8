// Package scan provides the byte cursor the demangler grammar is read
// through.
package scan

import "strings"

// EOF is returned by Get when no input remains.
const EOF = -1

// Cursor is a non-owning read view over a mangled symbol. It never
// copies: strings taken from it alias the original input, which must
// therefore outlive every name produced from it.
type Cursor struct {
	buf string
	pos int
}

// New returns a cursor positioned at the start of input.
func New(input string) *Cursor {
	return &Cursor{buf: input}
}

// Empty reports whether all input has been consumed.
func (c *Cursor) Empty() bool {
	return c.pos >= len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Rest returns the unread portion of the input.
func (c *Cursor) Rest() string {
	return c.buf[c.pos:]
}

// StartsWith reports whether the next byte is b.
func (c *Cursor) StartsWith(b byte) bool {
	return c.pos < len(c.buf) && c.buf[c.pos] == b
}

// StartsWithLit reports whether the unread input begins with lit.
func (c *Cursor) StartsWithLit(lit string) bool {
	return strings.HasPrefix(c.buf[c.pos:], lit)
}

// StartsWithDigit reports whether the next byte is a decimal digit.
func (c *Cursor) StartsWithDigit() bool {
	return c.pos < len(c.buf) && '0' <= c.buf[c.pos] && c.buf[c.pos] <= '9'
}

// Trim advances n bytes. n must not exceed Remaining.
func (c *Cursor) Trim(n int) {
	if n > c.Remaining() {
		panic("scan: trim past end of input")
	}
	c.pos += n
}

// Get consumes and returns the next byte, or EOF when none remains.
func (c *Cursor) Get() int {
	if c.Empty() {
		return EOF
	}
	b := c.buf[c.pos]
	c.pos++
	return int(b)
}

// Unget pushes back the byte returned by the last Get. EOF is ignored.
func (c *Cursor) Unget(b int) {
	if b != EOF {
		c.pos--
	}
}

// Consume advances past lit and reports success if lit prefixes the
// unread input; otherwise the cursor is unchanged.
func (c *Cursor) Consume(lit string) bool {
	if !c.StartsWithLit(lit) {
		return false
	}
	c.pos += len(lit)
	return true
}
