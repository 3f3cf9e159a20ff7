package values

import (
	"encoding/json"

	"github.com/tidwall/pretty"
)

// toJSONTree renders a Value into a JSON-friendly tree for debugging.
// This is a one-way, lossy dump (e.g. host objects render as their
// String()) — intended for `--dump-value` style CLI output, not
// round-tripping.
func toJSONTree(v Value) any {
	switch t := v.(type) {
	case NoneValue:
		return nil
	case BoolValue:
		return t.Value
	case *IntegerValue:
		return t.Num.Int64
	case *FloatValue:
		return t.Num.Float64
	case *StringValue:
		return t.Value
	case *FormattedStringValue:
		return t.Value
	case *ListValue:
		out := make([]any, len(t.Elements))
		for i, e := range t.Elements {
			out[i] = toJSONTree(e)
		}
		return map[string]any{"type": "list", "elements": out}
	case *TupleValue:
		out := make([]any, len(t.Elements))
		for i, e := range t.Elements {
			out[i] = toJSONTree(e)
		}
		return map[string]any{"type": "tuple", "elements": out}
	case *SetValue:
		out := make([]any, len(t.Elements()))
		for i, e := range t.Elements() {
			out[i] = toJSONTree(e)
		}
		return map[string]any{"type": "set", "elements": out}
	case *DictValue:
		out := make(map[string]any)
		for _, entry := range t.Items() {
			out[ReprString(entry.Elements[0])] = toJSONTree(entry.Elements[1])
		}
		return map[string]any{"type": "dict", "entries": out}
	default:
		return map[string]any{"type": v.Type(), "repr": v.String()}
	}
}

// DebugJSON pretty-prints v as indented JSON for debugging / CLI dump
// commands (SPEC_FULL.md §3 expansion). Uses tidwall/pretty rather than
// json.MarshalIndent so the same indentation helper is shared with the
// dump-ast command (cmd/pyjinn/cmd/dumpast.go).
func DebugJSON(v Value) string {
	raw, err := json.Marshal(toJSONTree(v))
	if err != nil {
		return "null"
	}
	return string(pretty.Pretty(raw))
}
