package astloader

import (
	"testing"

	"github.com/maxuser0/pyjinn-sub000/internal/pyast"
	"github.com/maxuser0/pyjinn-sub000/internal/values"
)

func TestLoadSimpleAssign(t *testing.T) {
	src := `{
		"type": "Module",
		"lineno": 0,
		"body": [
			{
				"type": "Assign",
				"lineno": 1,
				"targets": [{"type": "Name", "lineno": 1, "id": "x"}],
				"value": {"type": "Constant", "lineno": 1, "typename": "int", "value": 42}
			}
		]
	}`

	mod, err := New("script.py", nil).LoadModule([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(mod.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Body))
	}
	assign, ok := mod.Body[0].(*pyast.Assign)
	if !ok {
		t.Fatalf("expected *pyast.Assign, got %T", mod.Body[0])
	}
	name, ok := assign.Targets[0].(*pyast.Name)
	if !ok || name.Id != "x" {
		t.Fatalf("expected target Name{x}, got %#v", assign.Targets[0])
	}
	c, ok := assign.Value.(*pyast.Constant)
	if !ok || c.Raw.(int64) != 42 {
		t.Fatalf("expected Constant{42}, got %#v", assign.Value)
	}
}

func TestLoadUnsupportedNodeFails(t *testing.T) {
	src := `{
		"type": "Module",
		"lineno": 0,
		"body": [
			{"type": "MatchStmt", "lineno": 3}
		]
	}`

	_, err := New("script.py", nil).LoadModule([]byte(src))
	if err == nil {
		t.Fatal("expected an error for an unsupported node type")
	}
	pe, ok := err.(*values.ParseError)
	if !ok {
		t.Fatalf("expected *values.ParseError, got %T", err)
	}
	if pe.Position.Line != 3 {
		t.Errorf("expected line 3 in error, got %d", pe.Position.Line)
	}
}

func TestImportObserverFires(t *testing.T) {
	src := `{
		"type": "Module",
		"lineno": 0,
		"body": [
			{
				"type": "ImportFrom",
				"lineno": 5,
				"module": "os.path",
				"level": 0,
				"names": [{"name": "join", "asname": ""}]
			}
		]
	}`

	var seenModule string
	var seenLevel int
	observer := func(module string, names []pyast.Alias, level int, line int) {
		seenModule = module
		seenLevel = level
	}

	_, err := New("script.py", observer).LoadModule([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if seenModule != "os.path" || seenLevel != 0 {
		t.Errorf("observer saw module=%q level=%d, want os.path/0", seenModule, seenLevel)
	}
}

func TestJavaClassLiteralCall(t *testing.T) {
	src := `{
		"type": "Module",
		"lineno": 0,
		"body": [
			{
				"type": "Expr",
				"lineno": 2,
				"value": {
					"type": "Call",
					"lineno": 2,
					"func": {"type": "Name", "lineno": 2, "id": "JavaClass"},
					"args": [{"type": "Constant", "lineno": 2, "typename": "str", "value": "java.util.ArrayList"}],
					"keywords": []
				}
			}
		]
	}`

	mod, err := New("script.py", nil).LoadModule([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	stmt := mod.Body[0].(*pyast.ExprStmt)
	ref, ok := stmt.Value.(*pyast.JavaClassRef)
	if !ok {
		t.Fatalf("expected *pyast.JavaClassRef, got %T", stmt.Value)
	}
	if ref.Literal != "java.util.ArrayList" {
		t.Errorf("literal = %q, want java.util.ArrayList", ref.Literal)
	}
}

func TestCallerContextMarksAttributeAsBoundMethod(t *testing.T) {
	src := `{
		"type": "Module",
		"lineno": 0,
		"body": [
			{
				"type": "Expr",
				"lineno": 1,
				"value": {
					"type": "Call",
					"lineno": 1,
					"func": {
						"type": "Attribute",
						"lineno": 1,
						"value": {"type": "Name", "lineno": 1, "id": "obj"},
						"attr": "method"
					},
					"args": [],
					"keywords": []
				}
			}
		]
	}`

	mod, err := New("script.py", nil).LoadModule([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	stmt := mod.Body[0].(*pyast.ExprStmt)
	call := stmt.Value.(*pyast.Call)
	attr := call.Func.(*pyast.Attribute)
	if !attr.WasCallerFunc {
		t.Error("expected WasCallerFunc=true for the func of a Call")
	}
}

func TestDataclassDecoratorRecognized(t *testing.T) {
	src := `{
		"type": "Module",
		"lineno": 0,
		"body": [
			{
				"type": "ClassDef",
				"lineno": 1,
				"name": "Point",
				"bases": [],
				"keywords": [],
				"body": [{"type": "Pass", "lineno": 2}],
				"decorator_list": [
					{
						"type": "Call",
						"lineno": 1,
						"func": {"type": "Name", "lineno": 1, "id": "dataclass"},
						"args": [],
						"keywords": [
							{"arg": "frozen", "value": {"type": "Constant", "lineno": 1, "typename": "bool", "value": true}}
						]
					}
				]
			}
		]
	}`

	mod, err := New("script.py", nil).LoadModule([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	class := mod.Body[0].(*pyast.ClassDef)
	if len(class.Decorators) != 1 || class.Decorators[0].Kind != "dataclass" || !class.Decorators[0].Frozen {
		t.Fatalf("expected a recognized frozen dataclass decorator, got %#v", class.Decorators)
	}
}
