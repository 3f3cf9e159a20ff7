package pyjinn

import (
	"reflect"
	"testing"

	"github.com/maxuser0/pyjinn-sub000/internal/hostapi/reflecttest"
	"github.com/maxuser0/pyjinn-sub000/internal/proxy"
)

// The six scenarios below are spelled out literally (spec.md §8's
// "End-to-end scenarios") as hand-built JSON AST documents, since no
// Parser is part of this module (spec.md §1's "deliberately out of
// scope" Parser collaborator) — an embedder feeds JSON AST, never
// Python source text.

func mustEval(t *testing.T, s *Script, jsonAST []byte) *Result {
	t.Helper()
	result, err := s.Eval(jsonAST)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	return result
}

func TestScenarioClosuresAndNonlocal(t *testing.T) {
	// def mk():
	//   x = 0
	//   def inc():
	//     nonlocal x
	//     x += 1
	//     return x
	//   return inc
	// f = mk()
	// print(f(), f(), f())
	src := []byte(`{
		"type": "Module",
		"body": [
			{"type": "FunctionDef", "name": "mk", "args": {"args": []}, "decorator_list": [], "body": [
				{"type": "Assign", "targets": [{"type": "Name", "id": "x"}], "value": {"type": "Constant", "typename": "int", "value": 0}},
				{"type": "FunctionDef", "name": "inc", "args": {"args": []}, "decorator_list": [], "body": [
					{"type": "Nonlocal", "names": ["x"]},
					{"type": "AugAssign", "target": {"type": "Name", "id": "x"}, "op": {"type": "Add"}, "value": {"type": "Constant", "typename": "int", "value": 1}},
					{"type": "Return", "value": {"type": "Name", "id": "x"}}
				]},
				{"type": "Return", "value": {"type": "Name", "id": "inc"}}
			]},
			{"type": "Assign", "targets": [{"type": "Name", "id": "f"}], "value": {"type": "Call", "func": {"type": "Name", "id": "mk"}, "args": [], "keywords": []}},
			{"type": "Expr", "value": {"type": "Call", "func": {"type": "Name", "id": "print"}, "args": [
				{"type": "Call", "func": {"type": "Name", "id": "f"}, "args": [], "keywords": []},
				{"type": "Call", "func": {"type": "Name", "id": "f"}, "args": [], "keywords": []},
				{"type": "Call", "func": {"type": "Name", "id": "f"}, "args": [], "keywords": []}
			], "keywords": []}}
		]
	}`)

	s, err := New()
	if err != nil {
		t.Fatal(err)
	}
	result := mustEval(t, s, src)
	if result.Output != "1 2 3\n" {
		t.Errorf("got output %q, want %q", result.Output, "1 2 3\n")
	}
}

func TestScenarioDataclassFrozenEquality(t *testing.T) {
	// @dataclass(frozen=True)
	// class P:
	//   x: int
	//   y: int
	// print(P(1,2)==P(1,2), P(1,2)==P(1,3))
	src := []byte(`{
		"type": "Module",
		"body": [
			{"type": "ClassDef", "name": "P", "bases": [], "keywords": [], "decorator_list": [
				{"type": "Call", "func": {"type": "Name", "id": "dataclass"}, "args": [], "keywords": [
					{"arg": "frozen", "value": {"type": "Constant", "typename": "bool", "value": true}}
				]}
			], "body": [
				{"type": "AnnAssign", "target": {"type": "Name", "id": "x"}, "annotation": {"type": "Name", "id": "int"}, "value": null},
				{"type": "AnnAssign", "target": {"type": "Name", "id": "y"}, "annotation": {"type": "Name", "id": "int"}, "value": null}
			]},
			{"type": "Expr", "value": {"type": "Call", "func": {"type": "Name", "id": "print"}, "args": [
				{"type": "Compare", "left": {"type": "Call", "func": {"type": "Name", "id": "P"}, "args": [
					{"type": "Constant", "typename": "int", "value": 1}, {"type": "Constant", "typename": "int", "value": 2}
				], "keywords": []}, "ops": [{"type": "Eq"}], "comparators": [
					{"type": "Call", "func": {"type": "Name", "id": "P"}, "args": [
						{"type": "Constant", "typename": "int", "value": 1}, {"type": "Constant", "typename": "int", "value": 2}
					], "keywords": []}
				]},
				{"type": "Compare", "left": {"type": "Call", "func": {"type": "Name", "id": "P"}, "args": [
					{"type": "Constant", "typename": "int", "value": 1}, {"type": "Constant", "typename": "int", "value": 2}
				], "keywords": []}, "ops": [{"type": "Eq"}], "comparators": [
					{"type": "Call", "func": {"type": "Name", "id": "P"}, "args": [
						{"type": "Constant", "typename": "int", "value": 1}, {"type": "Constant", "typename": "int", "value": 3}
					], "keywords": []}
				]}
			], "keywords": []}}
		]
	}`)

	s, err := New()
	if err != nil {
		t.Fatal(err)
	}
	result := mustEval(t, s, src)
	if result.Output != "True False\n" {
		t.Errorf("got output %q, want %q", result.Output, "True False\n")
	}
}

func TestScenarioTryExceptFinallyOrder(t *testing.T) {
	// out = []
	// try:
	//   out.append('t')
	//   raise ValueError('x')
	// except ValueError as e:
	//   out.append('e:' + str(e))
	// finally:
	//   out.append('f')
	// print(out)
	src := []byte(`{
		"type": "Module",
		"body": [
			{"type": "Assign", "targets": [{"type": "Name", "id": "out"}], "value": {"type": "List", "elts": []}},
			{"type": "Try",
				"body": [
					{"type": "Expr", "value": {"type": "Call", "func": {"type": "Attribute", "value": {"type": "Name", "id": "out"}, "attr": "append"}, "args": [{"type": "Constant", "typename": "str", "value": "t"}], "keywords": []}},
					{"type": "Raise", "exc": {"type": "Call", "func": {"type": "Name", "id": "ValueError"}, "args": [{"type": "Constant", "typename": "str", "value": "x"}], "keywords": []}, "cause": null}
				],
				"handlers": [
					{"type": {"type": "Name", "id": "ValueError"}, "name": "e", "body": [
						{"type": "Expr", "value": {"type": "Call", "func": {"type": "Attribute", "value": {"type": "Name", "id": "out"}, "attr": "append"}, "args": [
							{"type": "BinOp", "left": {"type": "Constant", "typename": "str", "value": "e:"}, "op": {"type": "Add"}, "right": {"type": "Call", "func": {"type": "Name", "id": "str"}, "args": [{"type": "Name", "id": "e"}], "keywords": []}}
						], "keywords": []}}
					]}
				],
				"orelse": [],
				"finalbody": [
					{"type": "Expr", "value": {"type": "Call", "func": {"type": "Attribute", "value": {"type": "Name", "id": "out"}, "attr": "append"}, "args": [{"type": "Constant", "typename": "str", "value": "f"}], "keywords": []}}
				]
			},
			{"type": "Expr", "value": {"type": "Call", "func": {"type": "Name", "id": "print"}, "args": [{"type": "Name", "id": "out"}], "keywords": []}}
		]
	}`)

	s, err := New()
	if err != nil {
		t.Fatal(err)
	}
	result := mustEval(t, s, src)
	want := "['t', 'e:x', 'f']\n"
	if result.Output != want {
		t.Errorf("got output %q, want %q", result.Output, want)
	}
}

func TestScenarioForTupleUnpackAndBreak(t *testing.T) {
	// for i,(a,b) in enumerate([(1,2),(3,4),(5,6)]):
	//   if a==3: break
	//   print(i,a,b)
	src := []byte(`{
		"type": "Module",
		"body": [
			{"type": "For",
				"target": {"type": "Tuple", "elts": [
					{"type": "Name", "id": "i"},
					{"type": "Tuple", "elts": [{"type": "Name", "id": "a"}, {"type": "Name", "id": "b"}]}
				]},
				"iter": {"type": "Call", "func": {"type": "Name", "id": "enumerate"}, "args": [
					{"type": "List", "elts": [
						{"type": "Tuple", "elts": [{"type": "Constant", "typename": "int", "value": 1}, {"type": "Constant", "typename": "int", "value": 2}]},
						{"type": "Tuple", "elts": [{"type": "Constant", "typename": "int", "value": 3}, {"type": "Constant", "typename": "int", "value": 4}]},
						{"type": "Tuple", "elts": [{"type": "Constant", "typename": "int", "value": 5}, {"type": "Constant", "typename": "int", "value": 6}]}
					]}
				], "keywords": []},
				"body": [
					{"type": "If", "test": {"type": "Compare", "left": {"type": "Name", "id": "a"}, "ops": [{"type": "Eq"}], "comparators": [{"type": "Constant", "typename": "int", "value": 3}]}, "body": [
						{"type": "Break"}
					], "orelse": []},
					{"type": "Expr", "value": {"type": "Call", "func": {"type": "Name", "id": "print"}, "args": [
						{"type": "Name", "id": "i"}, {"type": "Name", "id": "a"}, {"type": "Name", "id": "b"}
					], "keywords": []}}
				],
				"orelse": []
			}
		]
	}`)

	s, err := New()
	if err != nil {
		t.Fatal(err)
	}
	result := mustEval(t, s, src)
	if result.Output != "0 1 2\n" {
		t.Errorf("got output %q, want %q", result.Output, "0 1 2\n")
	}
}

// Runnable mirrors a single-abstract-method host interface (spec.md §8
// scenario 5). Its Run method intentionally takes no arguments and
// returns nothing, the shape a "cast"-style proxy promotion targets.
type Runnable interface {
	Run()
}

type runnableAdapter struct {
	invoke func(method string, args []reflect.Value) ([]reflect.Value, error)
}

func (r *runnableAdapter) Run() {
	_, _ = r.invoke("", nil)
}

func TestScenarioHostInteropProxyPromotion(t *testing.T) {
	proxy.RegisterFactory(reflect.TypeOf((*Runnable)(nil)).Elem(), func(invoke func(string, []reflect.Value) ([]reflect.Value, error)) reflect.Value {
		return reflect.ValueOf(&runnableAdapter{invoke: invoke})
	})

	reg := reflecttest.New()
	reg.RegisterType("Runnable", reflect.TypeOf((*Runnable)(nil)).Elem())

	s, err := New(WithReflection(reg, reg, reg))
	if err != nil {
		t.Fatal(err)
	}

	// r = JavaClass("Runnable")(lambda: print("hi"))
	// r.run()
	src := []byte(`{
		"type": "Module",
		"body": [
			{"type": "Assign", "targets": [{"type": "Name", "id": "r"}], "value": {
				"type": "Call",
				"func": {"type": "Call", "func": {"type": "Name", "id": "JavaClass"}, "args": [{"type": "Constant", "typename": "str", "value": "Runnable"}], "keywords": []},
				"args": [{"type": "Lambda", "args": {"args": []}, "body": {"type": "Call", "func": {"type": "Name", "id": "print"}, "args": [{"type": "Constant", "typename": "str", "value": "hi"}], "keywords": []}}],
				"keywords": []
			}},
			{"type": "Expr", "value": {"type": "Call", "func": {"type": "Attribute", "value": {"type": "Name", "id": "r"}, "attr": "run"}, "args": [], "keywords": []}}
		]
	}`)

	result := mustEval(t, s, src)
	if result.Output != "hi\n" {
		t.Errorf("got output %q, want %q", result.Output, "hi\n")
	}
}

func TestScenarioShortCircuitReturnsLastOperand(t *testing.T) {
	// print(0 or "" or "x" or None)
	src := []byte(`{
		"type": "Module",
		"body": [
			{"type": "Expr", "value": {"type": "Call", "func": {"type": "Name", "id": "print"}, "args": [
				{"type": "BoolOp", "op": {"type": "Or"}, "values": [
					{"type": "Constant", "typename": "int", "value": 0},
					{"type": "Constant", "typename": "str", "value": ""},
					{"type": "Constant", "typename": "str", "value": "x"},
					{"type": "Constant", "typename": "NoneType", "value": null}
				]}
			], "keywords": []}}
		]
	}`)

	s, err := New()
	if err != nil {
		t.Fatal(err)
	}
	result := mustEval(t, s, src)
	if result.Output != "x\n" {
		t.Errorf("got output %q, want %q", result.Output, "x\n")
	}
}
