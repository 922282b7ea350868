package codegen

import (
	"text/template"

	"github.com/aricart/proto-srv-generator/internal/schema"
)

var clientTmpl = template.Must(template.New("client").Parse(`// Code generated by proto-srv-generator. DO NOT EDIT.
//
// Typed client for the {{.Service}} service.
package {{.Package}}

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"google.golang.org/protobuf/proto"
)

// {{.Type}}Client issues typed request/reply calls to the {{.Service}}
// service over an existing NATS connection.
type {{.Type}}Client struct {
	nc *nats.Conn
}

// New{{.Type}}Client wraps nc; the client does not own the connection.
func New{{.Type}}Client(nc *nats.Conn) *{{.Type}}Client {
	return &{{.Type}}Client{nc: nc}
}
{{range .RPCs}}
// {{.Name}} calls the {{$.Service}}.{{.Name}} endpoint.
func (c *{{$.Type}}Client) {{.Name}}(ctx context.Context, req *{{.In}}) (*{{.Out}}, error) {
	data, err := proto.Marshal(req)
	if err != nil {
		return nil, err
	}
	msg, err := c.nc.RequestWithContext(ctx, "{{$.Service}}.{{.Name}}", data)
	if err != nil {
		return nil, err
	}
	if code := msg.Header.Get(micro.ErrorCodeHeader); code != "" {
		return nil, fmt.Errorf("{{$.Service}}.{{.Name}}: %s (code %s)", msg.Header.Get(micro.ErrorHeader), code)
	}
	var out {{.Out}}
	if err := proto.Unmarshal(msg.Data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
{{end}}`))

// EmitClient renders the machine-owned client file for svc: one method per
// RPC, addressed to the same <service>.<rpc> subject the wiring registers.
func EmitClient(svc schema.Service, opts Options) (string, error) {
	return render(clientTmpl, newServiceData(svc, opts))
}
