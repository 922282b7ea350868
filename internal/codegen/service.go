package codegen

import (
	"text/template"

	"github.com/aricart/proto-srv-generator/internal/schema"
)

var serviceTmpl = template.Must(template.New("service").Parse(`// Code generated by proto-srv-generator. DO NOT EDIT.
//
// Service wiring for {{.Service}}: binds the handler functions in
// {{.File}}_handlers.go to NATS request/reply endpoints.
package {{.Package}}

import (
	"context"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"google.golang.org/protobuf/proto"
)

// Run{{.Type}}Service registers one endpoint per {{.Service}} RPC on nc and
// returns the running service. Stop it via the returned handle.
func Run{{.Type}}Service(nc *nats.Conn) (micro.Service, error) {
	svc, err := micro.AddService(nc, micro.Config{
		Name:    "{{.Service}}",
		Version: "0.1.0",
	})
	if err != nil {
		return nil, err
	}

	grp := svc.AddGroup("{{.Service}}")
{{range .RPCs}}
	if err := grp.AddEndpoint("{{.Name}}", micro.HandlerFunc(func(req micro.Request) {
		var in {{.In}}
		if err := proto.Unmarshal(req.Data(), &in); err != nil {
			_ = req.Error("400", err.Error(), nil)
			return
		}
		out, err := {{.Name}}Handler(context.Background(), &in)
		if err != nil {
			_ = req.Error("500", err.Error(), nil)
			return
		}
		data, err := proto.Marshal(out)
		if err != nil {
			_ = req.Error("500", err.Error(), nil)
			return
		}
		_ = req.Respond(data)
	})); err != nil {
		_ = svc.Stop()
		return nil, err
	}
{{end}}
	return svc, nil
}
`))

// EmitService renders the machine-owned wiring file for svc. The subject of
// every endpoint is <service>.<rpc>; decode failures reply with code 400,
// handler failures with code 500.
func EmitService(svc schema.Service, opts Options) (string, error) {
	return render(serviceTmpl, newServiceData(svc, opts))
}
