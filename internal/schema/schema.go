// Package schema extracts a structural model of service declarations from
// proto source text. It is a narrow tokenizer over a documented subset of the
// proto language (package declaration, service block, rpc line), not a proto
// compiler: message definitions, options, and imports pass through unparsed,
// and type identifiers are captured verbatim without resolution.
package schema

import "fmt"

// Model is the parsed structural representation of one schema file. It is
// immutable after Parse returns.
type Model struct {
	// PackageName is the logical namespace of the file. When the source has
	// no package declaration it defaults to the first service's name.
	PackageName string

	// Services in order of first appearance in the source.
	Services []Service
}

// Service is one service block and its recognized RPCs, in source order.
type Service struct {
	Name string
	RPCs []RPC
}

// RPC is a single remote procedure. The name doubles as the bus subject
// suffix and the method name on generated clients and handlers. InType and
// OutType are opaque identifiers; equality is syntactic only.
type RPC struct {
	Name    string
	InType  string
	OutType string
}

// Diagnostic reports a line inside a service block that looked like an rpc
// declaration but was not recognized by the subset grammar.
type Diagnostic struct {
	Line   int
	Text   string
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Reason, d.Text)
}

// ParseError reports schema text the extractor cannot produce a model from:
// either no service block at all, or a service block with zero recognized
// RPC declarations.
type ParseError struct {
	// Service is the name of the offending service block, empty when no
	// service block was found.
	Service string
	// Line is the line the service block starts on, zero when no service
	// block was found.
	Line int
}

func (e *ParseError) Error() string {
	if e.Service == "" {
		return "no service declaration found in schema"
	}
	return fmt.Sprintf("service %s (line %d) contains no rpc declarations", e.Service, e.Line)
}
