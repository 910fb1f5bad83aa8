// Package ast defines the declaration tree built by the parser and
// consumed by the writer, together with the arena that owns it.
package ast

// Prim identifies the variant of a Type.
type Prim uint8

const (
	// Unknown carries no type information; a symbol that was never
	// mangled decodes to it.
	Unknown Prim = iota
	// None marks an absent return type on constructors and destructors.
	None
	Function
	Ptr
	Ref
	Array

	Struct
	Union
	Class
	Enum

	Void
	Bool
	Char
	Schar
	Uchar
	Short
	Ushort
	Int
	Uint
	Long
	Ulong
	Llong
	Ullong
	Wchar
	Float
	Double
	Ldouble
)

// Storage is the storage-class bitmask shared by all type variants.
type Storage uint8

const (
	Const Storage = 1 << iota
	Volatile
	Far
	Huge
	Unaligned
	Restrict
)

// CallConv identifies a function calling convention.
type CallConv uint8

const (
	Cdecl CallConv = iota
	Pascal
	Thiscall
	Stdcall
	Fastcall
)

// FuncClass is the access/linkage bitmask of a member or global
// function.
type FuncClass uint8

const (
	Public FuncClass = 1 << iota
	Protected
	Private
	Static
	Virtual
	Global
	FFar
)

// Name is one component of a qualified name. Text aliases the mangled
// input; constructor and destructor components keep their "?0"/"?1"
// marker prefix for the writer to rewrite. Params holds the
// component's template arguments in the order they appear.
type Name struct {
	Text   string
	Params []*Type
}

// Type is the tagged union over all type variants. Child edges point
// into the arena; the arena is the single owner.
type Type struct {
	Prim   Prim
	Sclass Storage

	// Function variants only. Sclass doubles as the member cv-mask on
	// a function type.
	CallConv  CallConv
	FuncClass FuncClass

	// Ptr is the pointee for Ptr/Ref, the element for Array, and the
	// return slot for Function.
	Ptr *Type
	Len int32 // array length

	Names  []*Name // qualified name for Struct/Union/Class/Enum
	Params []*Type // function parameters
}
