// Package astloader translates a JSON AST (the shape produced by Python's
// own `ast` module, dumped to JSON by the embedder's front end) into the
// typed internal/pyast tree.
//
// Dispatch is schema-driven: every JSON object carries a "type" field and
// the loader switches on it, mirroring the teacher's internal/parser
// recursive-descent-by-token-type structure but operating over a JSON tree
// instead of a token stream. Field access goes through
// github.com/tidwall/gjson rather than encoding/json + a struct tag set,
// since the schema is heterogeneous (different node types have entirely
// different field sets) and gjson's path queries read more like the node
// shapes from Python's ast.dump output than a discriminated-union struct
// would.
//
// The loader is pure — it never calls out to the host, compiles nothing,
// and executes nothing. Its only side effect is the optional Import
// Observer hook, invoked once per module named by an `import` statement and
// once per `from import` statement seen, so an embedder can build a static
// dependency graph without a second pass.
package astloader
