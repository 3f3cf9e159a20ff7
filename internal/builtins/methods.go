package builtins

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

// methodFn is a built-in method bound to a specific receiver, resolved by
// CallMethod rather than registered globally the way Funcs is, since
// "upper" on a string and "sort" on a list share no namespace in Python.
type methodFn func(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error)

var stringMethods = map[string]methodFn{
	"upper":      strUpper,
	"lower":      strLower,
	"casefold":   strCasefold,
	"strip":      strStrip,
	"lstrip":     strLstrip,
	"rstrip":     strRstrip,
	"find":       strFind,
	"replace":    strReplace,
	"startswith": strStartswith,
	"endswith":   strEndswith,
	"join":       strJoin,
	"split":      strSplit,
	"center":     strCenter,
	"ljust":      strLjust,
	"rjust":      strRjust,
}

var listMethods = map[string]methodFn{
	"sort":    listSort,
	"reverse": listReverse,
	"copy":    listCopy,
	"append":  listAppend,
	"extend":  listExtend,
	"pop":     listPop,
	"index":   listIndex,
	"count":   listCount,
	"insert":  listInsert,
	"remove":  listRemove,
}

var dictMethods = map[string]methodFn{
	"keys":   dictKeys,
	"values": dictValues,
	"items":  dictItems,
	"get":    dictGet,
	"pop":    dictPop,
	"update": dictUpdate,
}

var setMethods = map[string]methodFn{
	"add":                  setAdd,
	"remove":               setRemove,
	"discard":              setDiscard,
	"union":                setUnion,
	"intersection":         setIntersection,
	"difference":           setDifference,
	"symmetric_difference": setSymmetricDifference,
	"isdisjoint":           setIsDisjoint,
	"issubset":             setIsSubset,
	"issuperset":           setIsSuperset,
}

// CallMethod resolves and invokes a built-in method on a str/list/dict/set
// receiver (spec.md §3.1's container method surface, §4.11's Unicode-
// correct string methods, SPEC_FULL.md's supplemented sort/copy/keys-
// values-items methods). ok is false when receiver's type has no such
// built-in method — internal/evaluator falls through to ScriptInstance
// method lookup in that case, the same two-step resolution the teacher's
// attribute dispatch does for host vs. script receivers.
func CallMethod(ctx *values.Context, receiver values.Value, name string, args []values.Value) (result values.Value, ok bool, err error) {
	var table map[string]methodFn
	switch receiver.(type) {
	case *values.StringValue:
		table = stringMethods
	case *values.ListValue:
		table = listMethods
	case *values.DictValue:
		table = dictMethods
	case *values.SetValue:
		table = setMethods
	default:
		return nil, false, nil
	}
	fn, ok := table[name]
	if !ok {
		return nil, false, nil
	}
	v, err := fn(ctx, receiver, args)
	return v, true, err
}

func asStringReceiver(receiver values.Value) *values.StringValue { return receiver.(*values.StringValue) }
func asListReceiver(receiver values.Value) *values.ListValue     { return receiver.(*values.ListValue) }
func asDictReceiver(receiver values.Value) *values.DictValue     { return receiver.(*values.DictValue) }
func asSetReceiver(receiver values.Value) *values.SetValue       { return receiver.(*values.SetValue) }

var foldCaser = cases.Fold()
var upperCaser = cases.Upper(language.Und)
var lowerCaser = cases.Lower(language.Und)

func strUpper(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 0 {
		return nil, &values.TypeError{Message: "upper() takes no arguments"}
	}
	return values.NewString(upperCaser.String(asStringReceiver(receiver).Value)), nil
}

func strLower(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 0 {
		return nil, &values.TypeError{Message: "lower() takes no arguments"}
	}
	return values.NewString(lowerCaser.String(asStringReceiver(receiver).Value)), nil
}

func strCasefold(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 0 {
		return nil, &values.TypeError{Message: "casefold() takes no arguments"}
	}
	return values.NewString(foldCaser.String(asStringReceiver(receiver).Value)), nil
}

// stripCutset extracts the optional character-set argument shared by
// strip/lstrip/rstrip (spec.md §4.11). An empty result means "no cutset":
// strip then trims Unicode whitespace, while lstrip/rstrip trim only the
// ASCII whitespace characters " \t\n\r\v\f".
func stripCutset(args []values.Value) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	if len(args) != 1 {
		return "", &values.TypeError{Message: "strip() takes at most 1 argument"}
	}
	s, ok := args[0].(*values.StringValue)
	if !ok {
		return "", &values.TypeError{Message: "strip() argument must be str"}
	}
	return s.Value, nil
}

func strStrip(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	cutset, err := stripCutset(args)
	if err != nil {
		return nil, err
	}
	s := asStringReceiver(receiver).Value
	if cutset == "" {
		return values.NewString(strings.TrimSpace(s)), nil
	}
	return values.NewString(strings.Trim(s, cutset)), nil
}

func strLstrip(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	cutset, err := stripCutset(args)
	if err != nil {
		return nil, err
	}
	s := asStringReceiver(receiver).Value
	if cutset == "" {
		return values.NewString(strings.TrimLeft(s, " \t\n\r\v\f")), nil
	}
	return values.NewString(strings.TrimLeft(s, cutset)), nil
}

func strRstrip(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	cutset, err := stripCutset(args)
	if err != nil {
		return nil, err
	}
	s := asStringReceiver(receiver).Value
	if cutset == "" {
		return values.NewString(strings.TrimRight(s, " \t\n\r\v\f")), nil
	}
	return values.NewString(strings.TrimRight(s, cutset)), nil
}

func strFind(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "find() takes exactly 1 argument"}
	}
	sub, ok := args[0].(*values.StringValue)
	if !ok {
		return nil, &values.TypeError{Message: "find() argument must be str"}
	}
	return values.NewInt(int64(strings.Index(asStringReceiver(receiver).Value, sub.Value))), nil
}

func strReplace(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, &values.TypeError{Message: "replace() takes 2 or 3 arguments"}
	}
	old, ok1 := args[0].(*values.StringValue)
	new_, ok2 := args[1].(*values.StringValue)
	if !ok1 || !ok2 {
		return nil, &values.TypeError{Message: "replace() arguments must be str"}
	}
	count := -1
	if len(args) == 3 {
		n, ok := values.AsNumber(args[2])
		if !ok {
			return nil, &values.TypeError{Message: "replace() count must be an integer"}
		}
		count = int(n.Int64)
	}
	return values.NewString(strings.Replace(asStringReceiver(receiver).Value, old.Value, new_.Value, count)), nil
}

func strStartswith(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "startswith() takes exactly 1 argument"}
	}
	prefix, ok := args[0].(*values.StringValue)
	if !ok {
		return nil, &values.TypeError{Message: "startswith() argument must be str"}
	}
	return values.Bool(strings.HasPrefix(asStringReceiver(receiver).Value, prefix.Value)), nil
}

func strEndswith(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "endswith() takes exactly 1 argument"}
	}
	suffix, ok := args[0].(*values.StringValue)
	if !ok {
		return nil, &values.TypeError{Message: "endswith() argument must be str"}
	}
	return values.Bool(strings.HasSuffix(asStringReceiver(receiver).Value, suffix.Value)), nil
}

func strJoin(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "join() takes exactly 1 argument"}
	}
	elems, err := iterateAll(args[0])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		s, ok := e.(*values.StringValue)
		if !ok {
			return nil, &values.TypeError{Message: "sequence item " + sIndex(i) + ": expected str instance, " + e.Type() + " found"}
		}
		parts[i] = s.Value
	}
	return values.NewString(strings.Join(parts, asStringReceiver(receiver).Value)), nil
}

func sIndex(i int) string {
	digits := []byte{}
	if i == 0 {
		return "0"
	}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

// strSplit implements str.split(sep=None, maxsplit=-1): a nil/omitted
// separator splits on runs of whitespace and drops empty leading/trailing
// fields, matching Python; an empty separator is rejected (spec.md §4.3
// "string methods" note: "empty separator is an error"). maxsplit is
// applied only when a separator is given; the whitespace form always
// splits on every run of whitespace.
func strSplit(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) > 2 {
		return nil, &values.TypeError{Message: "split() takes at most 2 arguments"}
	}
	s := asStringReceiver(receiver).Value
	var sepProvided bool
	var sep string
	if len(args) >= 1 {
		if _, isNone := args[0].(values.NoneValue); !isNone {
			str, ok := args[0].(*values.StringValue)
			if !ok {
				return nil, &values.TypeError{Message: "split() separator must be str or None"}
			}
			if str.Value == "" {
				return nil, &values.ValueError{Message: "empty separator"}
			}
			sep, sepProvided = str.Value, true
		}
	}
	maxsplit := -1
	if len(args) == 2 {
		n, ok := values.AsNumber(args[1])
		if !ok {
			return nil, &values.TypeError{Message: "split() maxsplit must be an integer"}
		}
		maxsplit = int(n.Int64)
	}

	var parts []string
	if !sepProvided {
		parts = strings.Fields(s)
	} else if maxsplit < 0 {
		parts = strings.Split(s, sep)
	} else {
		parts = strings.SplitN(s, sep, maxsplit+1)
	}
	out := make([]values.Value, len(parts))
	for i, p := range parts {
		out[i] = values.NewString(p)
	}
	return values.NewList(out), nil
}

// padArgs extracts (width, fillchar) shared by center/ljust/rjust.
func padArgs(args []values.Value) (int, rune, error) {
	if len(args) == 0 || len(args) > 2 {
		return 0, ' ', &values.TypeError{Message: "expected 1 or 2 arguments"}
	}
	w, ok := values.AsNumber(args[0])
	if !ok {
		return 0, ' ', &values.TypeError{Message: "width must be an integer"}
	}
	fill := ' '
	if len(args) == 2 {
		s, ok := args[1].(*values.StringValue)
		if !ok || len([]rune(s.Value)) != 1 {
			return 0, ' ', &values.TypeError{Message: "fillchar must be a single character"}
		}
		fill = []rune(s.Value)[0]
	}
	return int(w.Int64), fill, nil
}

// displayWidth measures s the way a fixed-width terminal would, using
// golang.org/x/text/width so wide (e.g. CJK) runes count as two columns —
// plain len(s)/utf8.RuneCountInString would under-pad those (spec.md
// §4.11's width-sensitive padding).
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func strCenter(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	w, fill, err := padArgs(args)
	if err != nil {
		return nil, err
	}
	s := asStringReceiver(receiver).Value
	pad := w - displayWidth(s)
	if pad <= 0 {
		return values.NewString(s), nil
	}
	left := pad / 2
	right := pad - left
	return values.NewString(strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), right)), nil
}

func strLjust(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	w, fill, err := padArgs(args)
	if err != nil {
		return nil, err
	}
	s := asStringReceiver(receiver).Value
	pad := w - displayWidth(s)
	if pad <= 0 {
		return values.NewString(s), nil
	}
	return values.NewString(s + strings.Repeat(string(fill), pad)), nil
}

func strRjust(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	w, fill, err := padArgs(args)
	if err != nil {
		return nil, err
	}
	s := asStringReceiver(receiver).Value
	pad := w - displayWidth(s)
	if pad <= 0 {
		return values.NewString(s), nil
	}
	return values.NewString(strings.Repeat(string(fill), pad) + s), nil
}

// --- list methods ---

func listSort(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	l := asListReceiver(receiver)
	var key values.Value
	reverse := false
	if n := len(args); n > 0 {
		if bag, ok := args[n-1].(*values.KwArgsBag); ok {
			key = bag.Values["key"]
			if r, ok := bag.Values["reverse"]; ok {
				reverse = values.Truthy(r)
			}
		}
	}
	var sortErr error
	sortKey := func(v values.Value) (values.Value, error) {
		if key == nil {
			return v, nil
		}
		if InvokeHook == nil {
			return nil, &values.TypeError{Message: "sort() key function requires a call dispatcher"}
		}
		return InvokeHook(ctx, key, []values.Value{v})
	}
	sort.SliceStable(l.Elements, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		ki, err := sortKey(l.Elements[i])
		if err != nil {
			sortErr = err
			return false
		}
		kj, err := sortKey(l.Elements[j])
		if err != nil {
			sortErr = err
			return false
		}
		c, err := values.CompareValues(ki, kj)
		if err != nil {
			sortErr = err
			return false
		}
		if reverse {
			return c > 0
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return values.None, nil
}

func listReverse(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	l := asListReceiver(receiver)
	for i, j := 0, len(l.Elements)-1; i < j; i, j = i+1, j-1 {
		l.Elements[i], l.Elements[j] = l.Elements[j], l.Elements[i]
	}
	return values.None, nil
}

func listCopy(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	l := asListReceiver(receiver)
	out := make([]values.Value, len(l.Elements))
	copy(out, l.Elements)
	return values.NewList(out), nil
}

func listAppend(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "append() takes exactly 1 argument"}
	}
	l := asListReceiver(receiver)
	l.Elements = append(l.Elements, args[0])
	return values.None, nil
}

func listExtend(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "extend() takes exactly 1 argument"}
	}
	elems, err := iterateAll(args[0])
	if err != nil {
		return nil, err
	}
	l := asListReceiver(receiver)
	l.Elements = append(l.Elements, elems...)
	return values.None, nil
}

func listPop(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	l := asListReceiver(receiver)
	if len(l.Elements) == 0 {
		return nil, &values.LookupErr{Message: "pop from empty list"}
	}
	idx := int64(-1)
	if len(args) == 1 {
		n, ok := values.AsNumber(args[0])
		if !ok {
			return nil, &values.TypeError{Message: "pop() index must be an integer"}
		}
		idx = n.Int64
	} else if len(args) > 1 {
		return nil, &values.TypeError{Message: "pop() takes at most 1 argument"}
	}
	i, err := values.ResolveIndex(idx, len(l.Elements))
	if err != nil {
		return nil, err
	}
	v := l.Elements[i]
	l.Elements = append(l.Elements[:i], l.Elements[i+1:]...)
	return v, nil
}

func listIndex(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "index() takes exactly 1 argument"}
	}
	l := asListReceiver(receiver)
	for i, e := range l.Elements {
		eq, err := values.Equal(e, args[0])
		if err != nil {
			return nil, err
		}
		if eq {
			return values.NewInt(int64(i)), nil
		}
	}
	return nil, &values.ValueError{Message: "value not found in list"}
}

func listCount(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "count() takes exactly 1 argument"}
	}
	l := asListReceiver(receiver)
	n := int64(0)
	for _, e := range l.Elements {
		eq, err := values.Equal(e, args[0])
		if err != nil {
			return nil, err
		}
		if eq {
			n++
		}
	}
	return values.NewInt(n), nil
}

func listInsert(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 2 {
		return nil, &values.TypeError{Message: "insert() takes exactly 2 arguments"}
	}
	n, ok := values.AsNumber(args[0])
	if !ok {
		return nil, &values.TypeError{Message: "insert() index must be an integer"}
	}
	l := asListReceiver(receiver)
	i := int(n.Int64)
	if i < 0 {
		i += len(l.Elements)
	}
	if i < 0 {
		i = 0
	}
	if i > len(l.Elements) {
		i = len(l.Elements)
	}
	l.Elements = append(l.Elements, nil)
	copy(l.Elements[i+1:], l.Elements[i:])
	l.Elements[i] = args[1]
	return values.None, nil
}

func listRemove(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "remove() takes exactly 1 argument"}
	}
	l := asListReceiver(receiver)
	for i, e := range l.Elements {
		eq, err := values.Equal(e, args[0])
		if err != nil {
			return nil, err
		}
		if eq {
			l.Elements = append(l.Elements[:i], l.Elements[i+1:]...)
			return values.None, nil
		}
	}
	return nil, &values.ValueError{Message: "list.remove(x): x not in list"}
}

// --- dict methods ---

func dictKeys(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	return values.NewList(asDictReceiver(receiver).Keys()), nil
}

func dictValues(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	return values.NewList(asDictReceiver(receiver).Values()), nil
}

func dictItems(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	items := asDictReceiver(receiver).Items()
	out := make([]values.Value, len(items))
	for i, t := range items {
		out[i] = t
	}
	return values.NewList(out), nil
}

func dictGet(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, &values.TypeError{Message: "get() takes 1 or 2 arguments"}
	}
	def := values.Value(values.None)
	if len(args) == 2 {
		def = args[1]
	}
	return asDictReceiver(receiver).Get(args[0], def), nil
}

func dictPop(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, &values.TypeError{Message: "pop() takes 1 or 2 arguments"}
	}
	d := asDictReceiver(receiver)
	v, err := d.GetItem(args[0])
	if err != nil {
		if len(args) == 2 {
			return args[1], nil
		}
		return nil, err
	}
	_ = d.DelItem(args[0])
	return v, nil
}

func dictUpdate(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "update() takes exactly 1 argument"}
	}
	d := asDictReceiver(receiver)
	other, ok := args[0].(*values.DictValue)
	if !ok {
		return nil, &values.TypeError{Message: "update() argument must be a dict"}
	}
	for _, k := range other.Keys() {
		v, err := other.GetItem(k)
		if err != nil {
			return nil, err
		}
		if err := d.SetItem(k, v); err != nil {
			return nil, err
		}
	}
	return values.None, nil
}

// --- set methods ---

func setAdd(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "add() takes exactly 1 argument"}
	}
	asSetReceiver(receiver).Add(args[0])
	return values.None, nil
}

func setRemove(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "remove() takes exactly 1 argument"}
	}
	if err := asSetReceiver(receiver).Remove(args[0]); err != nil {
		return nil, err
	}
	return values.None, nil
}

func setDiscard(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "discard() takes exactly 1 argument"}
	}
	asSetReceiver(receiver).Discard(args[0])
	return values.None, nil
}

func asSetArg(v values.Value) (*values.SetValue, error) {
	s, ok := v.(*values.SetValue)
	if !ok {
		return nil, &values.TypeError{Message: "expected a set argument"}
	}
	return s, nil
}

func setUnion(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "union() takes exactly 1 argument"}
	}
	other, err := asSetArg(args[0])
	if err != nil {
		return nil, err
	}
	return asSetReceiver(receiver).Union(other), nil
}

func setIntersection(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "intersection() takes exactly 1 argument"}
	}
	other, err := asSetArg(args[0])
	if err != nil {
		return nil, err
	}
	return asSetReceiver(receiver).Intersection(other), nil
}

func setDifference(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "difference() takes exactly 1 argument"}
	}
	other, err := asSetArg(args[0])
	if err != nil {
		return nil, err
	}
	return asSetReceiver(receiver).Difference(other), nil
}

func setSymmetricDifference(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "symmetric_difference() takes exactly 1 argument"}
	}
	other, err := asSetArg(args[0])
	if err != nil {
		return nil, err
	}
	return asSetReceiver(receiver).SymmetricDifference(other), nil
}

func setIsDisjoint(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "isdisjoint() takes exactly 1 argument"}
	}
	other, err := asSetArg(args[0])
	if err != nil {
		return nil, err
	}
	return values.Bool(asSetReceiver(receiver).IsDisjoint(other)), nil
}

func setIsSubset(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "issubset() takes exactly 1 argument"}
	}
	other, err := asSetArg(args[0])
	if err != nil {
		return nil, err
	}
	return values.Bool(asSetReceiver(receiver).IsSubset(other)), nil
}

func setIsSuperset(ctx *values.Context, receiver values.Value, args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, &values.TypeError{Message: "issuperset() takes exactly 1 argument"}
	}
	other, err := asSetArg(args[0])
	if err != nil {
		return nil, err
	}
	return values.Bool(asSetReceiver(receiver).IsSuperset(other)), nil
}
