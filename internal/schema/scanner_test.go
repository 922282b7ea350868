package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *Model
	}{
		{
			name: "single service with package declaration",
			src: `syntax = "proto3";

package calc;

message AddRequest {
  repeated double values = 1;
}

message CalcResponse {
  double result = 1;
}

service Calc {
  rpc Add(AddRequest) returns (CalcResponse) {}
  rpc Average(AverageRequest) returns (CalcResponse) {}
}
`,
			want: &Model{
				PackageName: "calc",
				Services: []Service{
					{
						Name: "Calc",
						RPCs: []RPC{
							{Name: "Add", InType: "AddRequest", OutType: "CalcResponse"},
							{Name: "Average", InType: "AverageRequest", OutType: "CalcResponse"},
						},
					},
				},
			},
		},
		{
			name: "package name defaults to first service",
			src: `service Greeter {
  rpc Hello(HelloRequest) returns (HelloResponse);
}
`,
			want: &Model{
				PackageName: "Greeter",
				Services: []Service{
					{
						Name: "Greeter",
						RPCs: []RPC{{Name: "Hello", InType: "HelloRequest", OutType: "HelloResponse"}},
					},
				},
			},
		},
		{
			name: "multiple services keep source order",
			src: `package shop;

service Orders {
  rpc Place(PlaceRequest) returns (PlaceResponse) {}
}

service Inventory {
  rpc Reserve(ReserveRequest) returns (ReserveResponse) {}
  rpc Release(ReleaseRequest) returns (ReleaseResponse) {}
}
`,
			want: &Model{
				PackageName: "shop",
				Services: []Service{
					{
						Name: "Orders",
						RPCs: []RPC{{Name: "Place", InType: "PlaceRequest", OutType: "PlaceResponse"}},
					},
					{
						Name: "Inventory",
						RPCs: []RPC{
							{Name: "Reserve", InType: "ReserveRequest", OutType: "ReserveResponse"},
							{Name: "Release", InType: "ReleaseRequest", OutType: "ReleaseResponse"},
						},
					},
				},
			},
		},
		{
			name: "qualified type identifiers captured verbatim",
			src: `package api;

service Pinger {
  rpc Ping(google.protobuf.Empty) returns (google.protobuf.Empty);
}
`,
			want: &Model{
				PackageName: "api",
				Services: []Service{
					{
						Name: "Pinger",
						RPCs: []RPC{{Name: "Ping", InType: "google.protobuf.Empty", OutType: "google.protobuf.Empty"}},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(diags) != 0 {
				t.Errorf("Parse() unexpected diagnostics: %v", diags)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantService string
	}{
		{
			name: "no service block",
			src: `package empty;

message Nothing {}
`,
		},
		{
			name: "service without rpcs",
			src: `package calc;

service Calc {
}
`,
			wantService: "Calc",
		},
		{
			name: "service whose only rpc lines are unrecognized",
			src: `service Stream {
  rpc Watch(WatchRequest) returns (stream WatchResponse) {}
}
`,
			wantService: "Stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.src)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse() error = %v, want *ParseError", err)
			}
			if perr.Service != tt.wantService {
				t.Errorf("ParseError.Service = %q, want %q", perr.Service, tt.wantService)
			}
		})
	}
}

func TestParse_Diagnostics(t *testing.T) {
	src := `package calc;

service Calc {
  rpc Add(AddRequest) returns (CalcResponse) {}
  rpc Watch(WatchRequest) returns (stream CalcResponse) {}
  rpc Sum(SumRequest) returns (CalcResponse) {
    option idempotency_level = IDEMPOTENT;
  }
  rpc broken(
}
`
	// The unparsable trailing paren line opens no brace, so the block still
	// closes on the final line.
	model, diags, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(model.Services) != 1 || len(model.Services[0].RPCs) != 1 {
		t.Fatalf("expected exactly the Add rpc to survive, got %+v", model.Services)
	}

	wantReasons := []string{
		"streaming rpcs are not supported",
		"rpc body must be empty",
		"malformed rpc declaration",
	}
	if len(diags) != len(wantReasons) {
		t.Fatalf("got %d diagnostics, want %d: %v", len(diags), len(wantReasons), diags)
	}
	for i, want := range wantReasons {
		if diags[i].Reason != want {
			t.Errorf("diagnostic %d reason = %q, want %q", i, diags[i].Reason, want)
		}
		if diags[i].Line == 0 {
			t.Errorf("diagnostic %d has no line number", i)
		}
	}
}
