package codegen

import (
	"strings"
	"text/template"

	"github.com/aricart/proto-srv-generator/internal/schema"
)

var handlersTmpl = template.Must(template.New("handlers").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`// Seed handlers for the {{.Service}} service, generated by proto-srv-generator.
//
// This file is yours to edit. A forced regeneration moves it aside to
// {{.File}}_handlers.go.bak before writing a fresh seed; everything else in
// the tree is regenerated in place.
//
// Message types: {{join .Types ", "}}.
package {{.Package}}

import (
	"context"
	"errors"
)

{{range .RPCs}}
// {{.Name}}Handler implements the {{$.Service}}.{{.Name}} RPC.
func {{.Name}}Handler(ctx context.Context, req *{{.In}}) (*{{.Out}}, error) {
	return nil, errors.New("{{.Name}} not implemented")
}
{{end}}`))

// EmitHandlers renders the human-edited handler stub file for svc: one
// <Name>Handler per RPC, each failing with a not-implemented error until
// completed by hand.
func EmitHandlers(svc schema.Service, opts Options) (string, error) {
	return render(handlersTmpl, newServiceData(svc, opts))
}
