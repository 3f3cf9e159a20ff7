package pyast

// UnaryOp is `op operand`, e.g. `-x`, `not x`, `~x`.
type UnaryOp struct {
	Pos
	Op      string
	Operand Expr
}

func (*UnaryOp) exprNode() {}

// BinOp is `left op right` for arithmetic/bitwise binary operators.
type BinOp struct {
	Pos
	Left  Expr
	Op    string
	Right Expr
}

func (*BinOp) exprNode() {}

// Compare is a (possibly chained) comparison: `a op1 b op2 c ...`.
type Compare struct {
	Pos
	Left        Expr
	Ops         []string
	Comparators []Expr
}

func (*Compare) exprNode() {}

// BoolOp is `a and b and ...` or `a or b or ...`.
type BoolOp struct {
	Pos
	Op     string // "and" or "or"
	Values []Expr
}

func (*BoolOp) exprNode() {}

// Name is a bare identifier reference. It is evaluated the same way
// whether or not it is the `func` of a Call; only Attribute records that
// caller context (see Attribute.WasCallerFunc).
type Name struct {
	Pos
	Id string
}

func (*Name) exprNode() {}

// Starred is `*expr`, appearing in call argument lists and assignment
// targets.
type Starred struct {
	Pos
	Value Expr
}

func (*Starred) exprNode() {}

// Constant is a literal. Typename is one of "bool", "int", "float",
// "str", "NoneType" (spec.md §6.1). Raw holds the corresponding Go native
// literal: bool, int64, float64, string, or nil.
type Constant struct {
	Pos
	Typename string
	Raw      any
}

func (*Constant) exprNode() {}

// Call is `func(args..., kw=val..., *starred, **mapping)`.
type Call struct {
	Pos
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

func (*Call) exprNode() {}

// Attribute is `value.attr`. WasCallerFunc is true when the loader parsed
// this node as the `func` of a Call, which the loader turns into a
// bound-method expression rather than a plain field access (spec.md
// §4.2: "Attribute access parsed in 'caller' context ... becomes a
// bound-method expression; otherwise it is a field access").
type Attribute struct {
	Pos
	Value         Expr
	Attr          string
	WasCallerFunc bool
}

func (*Attribute) exprNode() {}

// Subscript is `value[index]`, where index may itself be a Slice.
type Subscript struct {
	Pos
	Value Expr
	Index Expr
}

func (*Subscript) exprNode() {}

// Slice is `[lower:upper:step]`; any of the three may be nil.
type Slice struct {
	Pos
	Lower Expr
	Upper Expr
	Step  Expr
}

func (*Slice) exprNode() {}

// IfExp is the conditional expression `body if test else orelse`.
type IfExp struct {
	Pos
	Test   Expr
	Body   Expr
	Orelse Expr
}

func (*IfExp) exprNode() {}

// Comprehension is one `for target in iter [if cond]*` clause of a
// comprehension.
type Comprehension struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
}

// ListComp is `[elt for target in iter if cond ...]`.
type ListComp struct {
	Pos
	Elt        Expr
	Generators []Comprehension
}

func (*ListComp) exprNode() {}

// TupleExpr is `(a, b, ...)` (or a bare `a, b, ...`).
type TupleExpr struct {
	Pos
	Elements []Expr
}

func (*TupleExpr) exprNode() {}

// ListExpr is `[a, b, ...]`.
type ListExpr struct {
	Pos
	Elements []Expr
}

func (*ListExpr) exprNode() {}

// SetExpr is `{a, b, ...}`.
type SetExpr struct {
	Pos
	Elements []Expr
}

func (*SetExpr) exprNode() {}

// DictExpr is `{k: v, ..., **mapping, ...}`. A nil entry in Keys marks a
// `**mapping` spread at that position (spec.md §4.3 keeps the same
// convention for call keywords; dict literals mirror it).
type DictExpr struct {
	Pos
	Keys   []Expr
	Values []Expr
}

func (*DictExpr) exprNode() {}

// Lambda is `lambda args: body`.
type Lambda struct {
	Pos
	Args *Arguments
	Body Expr
}

func (*Lambda) exprNode() {}

// FormattedValue is one `{expr!conv:spec}` segment of an f-string.
// Conversion is 0 if absent, else 's', 'r', or 'a'. FormatSpec is nil if
// absent.
type FormattedValue struct {
	Pos
	Value      Expr
	Conversion rune
	FormatSpec Expr
}

func (*FormattedValue) exprNode() {}

// JoinedStr is an f-string: a sequence of Constant (literal text) and
// FormattedValue segments concatenated at evaluation time.
type JoinedStr struct {
	Pos
	Values []Expr
}

func (*JoinedStr) exprNode() {}

// NamedExpr is the walrus operator `target := value`.
type NamedExpr struct {
	Pos
	Target Expr
	Value  Expr
}

func (*NamedExpr) exprNode() {}

// JavaClassRef is the AST Loader's translation of `Name("JavaClass")` used
// bare, and `Call(JavaClass, "literal")` resolved through the Host Class
// Loader at evaluation time (spec.md §4.2). Literal is "" when JavaClass
// was referenced bare (as a callable keyword) rather than invoked.
type JavaClassRef struct {
	Pos
	Literal string
}

func (*JavaClassRef) exprNode() {}
