package astloader

// binOpSymbols maps Python ast binary-operator node type names to the
// operator strings pyast.BinOp/AugAssign carry.
var binOpSymbols = map[string]string{
	"Add":      "+",
	"Sub":      "-",
	"Mult":     "*",
	"Div":      "/",
	"FloorDiv": "//",
	"Mod":      "%",
	"Pow":      "**",
	"LShift":   "<<",
	"RShift":   ">>",
	"BitOr":    "|",
	"BitXor":   "^",
	"BitAnd":   "&",
}

var unaryOpSymbols = map[string]string{
	"USub":   "-",
	"UAdd":   "+",
	"Not":    "not",
	"Invert": "~",
}

var boolOpSymbols = map[string]string{
	"And": "and",
	"Or":  "or",
}

var compareOpSymbols = map[string]string{
	"Eq":    "==",
	"NotEq": "!=",
	"Lt":    "<",
	"LtE":   "<=",
	"Gt":    ">",
	"GtE":   ">=",
	"Is":    "is",
	"IsNot": "is not",
	"In":    "in",
	"NotIn": "not in",
}
