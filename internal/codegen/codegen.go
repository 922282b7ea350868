// Package codegen turns a schema model into generated source artifacts:
// per-service handler stubs, NATS service wiring, typed clients, and the
// once-per-tree project configuration. Emitters are pure functions over
// (model, options); they never touch the filesystem.
package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/aricart/proto-srv-generator/internal/schema"
	"github.com/aricart/proto-srv-generator/internal/strcase"
)

// Options are the naming inputs shared by every emitter.
type Options struct {
	// Package is the package clause of the generated Go files.
	Package string

	// Module is the module path of the generated project.
	Module string

	// PBImport is the import path of the protoc-generated message package.
	PBImport string

	// SchemaFile is the base name of the schema file copied into the tree.
	SchemaFile string
}

// FileBase returns the snake_case file-name stem used for a service's
// artifacts: Calc -> calc, OrderService -> order_service.
func FileBase(serviceName string) string {
	return strcase.ToSnakeCase(serviceName)
}

// PackageIdent derives a Go package identifier from a schema package name:
// the last dot-separated segment, lowercased, non-identifier bytes dropped.
func PackageIdent(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if b.Len() > 0 {
				b.WriteRune(r)
			}
		}
	}
	if b.Len() == 0 {
		return "service"
	}
	return b.String()
}

// localName strips the qualifier from a dotted type identifier:
// google.protobuf.Empty -> Empty. Plain identifiers pass through.
func localName(typeName string) string {
	if i := strings.LastIndexByte(typeName, '.'); i >= 0 {
		return typeName[i+1:]
	}
	return typeName
}

type rpcData struct {
	Name string
	In   string
	Out  string
}

type serviceData struct {
	Package string
	Service string // verbatim service name, used as the subject prefix
	Type    string // exported Go identifier for the service
	File    string
	Types   []string
	RPCs    []rpcData
}

func newServiceData(svc schema.Service, opts Options) serviceData {
	data := serviceData{
		Package: opts.Package,
		Service: svc.Name,
		Type:    strcase.ToExported(svc.Name),
		File:    FileBase(svc.Name),
		Types:   MessageTypes(svc.RPCs),
	}
	for _, rpc := range svc.RPCs {
		data.RPCs = append(data.RPCs, rpcData{
			Name: rpc.Name,
			In:   localName(rpc.InType),
			Out:  localName(rpc.OutType),
		})
	}
	return data
}

// render executes tmpl and normalizes the result with goimports so every
// generated file is byte-stable and gofmt-clean.
func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}

	formatted, err := imports.Process(tmpl.Name()+".go", buf.Bytes(), nil)
	if err != nil {
		// Return the unformatted code so the caller can see what broke.
		return buf.String(), fmt.Errorf("failed to format generated code: %w", err)
	}
	return string(formatted), nil
}
