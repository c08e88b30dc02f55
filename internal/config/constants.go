// Package config is the single source of truth for source file conventions
// and the built-in function/type name tables the rest of the runtime
// refers to by name.
package config

// SourceFileExt is the extension script.Canonicalize appends to an import
// path that does not already end in one of SourceFileExtensions.
const SourceFileExt = ".ls"

// SourceFileExtensions are all recognized source file extensions, in
// preference order. script.Canonicalize compares an import path against
// them before appending SourceFileExt; nothing checks that a directory
// uses only one of them.
var SourceFileExtensions = []string{".ls", ".lambda"}

// Built-in operator/library function names exposed to every compiled
// script without an import, per spec.md §4.5.
const (
	AddFuncName       = "fn_add"
	SubFuncName       = "fn_sub"
	MulFuncName       = "fn_mul"
	DivFuncName       = "fn_div"
	IDivFuncName      = "fn_idiv"
	ModFuncName       = "fn_mod"
	PowFuncName       = "fn_pow"
	AbsFuncName       = "fn_abs"
	RoundFuncName     = "fn_round"
	FloorFuncName     = "fn_floor"
	CeilFuncName      = "fn_ceil"
	MinFuncName       = "fn_min"
	MaxFuncName       = "fn_max"
	SumFuncName       = "fn_sum"
	AvgFuncName       = "fn_avg"
	NotFuncName       = "fn_not"
	AndFuncName       = "fn_and"
	OrFuncName        = "fn_or"
	IsFuncName        = "fn_is"
	InFuncName        = "fn_in"
	ToFuncName        = "fn_to"
	StrcatFuncName    = "fn_strcat"
	LenFuncName       = "fn_len"
	SubstringFuncName = "fn_substring"
	ContainsFuncName  = "fn_contains"
	IndexFuncName     = "fn_index"
	MemberFuncName    = "fn_member"
	InputFuncName     = "fn_input"
	FormatFuncName    = "fn_format"
	PrintFuncName     = "fn_print"
	DatetimeName      = "fn_datetime"
	PackFuncName      = "fn_pack"
	UnpackFuncName    = "fn_unpack"
)

// Built-in type names, one per §3.2 container kind that is constructible
// from source via a `type` annotation or literal.
const (
	ListTypeName    = "List"
	ArrayTypeName   = "Array"
	MapTypeName     = "Map"
	ElementTypeName = "Element"
	RangeTypeName   = "Range"
	StringTypeName  = "String"
	BinaryTypeName  = "Binary"
)
