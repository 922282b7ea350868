package codegen

import (
	"sort"
	"text/template"

	"github.com/aricart/proto-srv-generator/internal/schema"
)

// MessageTypes returns every message type identifier referenced as an input
// or output by rpcs, deduplicated and sorted lexicographically. Collection
// order is encounter order, so the result is identical for any permutation
// of rpcs that references the same set of types; sorting keeps rendered
// output byte-stable across runs.
func MessageTypes(rpcs []schema.RPC) []string {
	seen := make(map[string]bool, len(rpcs)*2)
	types := make([]string, 0, len(rpcs)*2)
	for _, rpc := range rpcs {
		for _, t := range []string{rpc.InType, rpc.OutType} {
			if seen[t] {
				continue
			}
			seen[t] = true
			types = append(types, t)
		}
	}

	sort.Strings(types)
	return types
}

type aliasData struct {
	Package    string
	PBImport   string
	SchemaFile string
	Aliases    []string
}

var typesTmpl = template.Must(template.New("types").Parse(`// Code generated by proto-srv-generator. DO NOT EDIT.

// Package {{.Package}} contains the generated NATS bindings for the services
// declared in {{.SchemaFile}}, plus their hand-completed handlers.
package {{.Package}}

import (
	pb "{{.PBImport}}"
)

// Message type aliases re-exported from the generated protobuf package so
// handlers and callers can refer to them unqualified.
type (
{{- range .Aliases}}
	{{.}} = pb.{{.}}
{{- end}}
)
`))

// EmitTypes renders the tree-level alias file re-exporting every message
// type referenced by any service in the model.
func EmitTypes(model *schema.Model, opts Options) (string, error) {
	var all []schema.RPC
	for _, svc := range model.Services {
		all = append(all, svc.RPCs...)
	}

	seen := make(map[string]bool)
	var aliases []string
	for _, t := range MessageTypes(all) {
		local := localName(t)
		if seen[local] {
			continue
		}
		seen[local] = true
		aliases = append(aliases, local)
	}

	return render(typesTmpl, aliasData{
		Package:    opts.Package,
		PBImport:   opts.PBImport,
		SchemaFile: opts.SchemaFile,
		Aliases:    aliases,
	})
}
