package codegen

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Pinned versions written into the generated project's manifest.
const (
	natsVersion     = "v1.39.1"
	protobufVersion = "v1.36.5"
)

// EmitGoMod renders the generated project's module manifest, requiring the
// transport library and the protobuf runtime.
func EmitGoMod(opts Options) string {
	return fmt.Sprintf(`module %s

go 1.25

require (
	github.com/nats-io/nats.go %s
	google.golang.org/protobuf %s
)
`, opts.Module, natsVersion, protobufVersion)
}

// EmitMakefile renders the build script: regenerate message-type code from
// the copied schema, then compile.
func EmitMakefile(opts Options) string {
	return fmt.Sprintf(`# Generated by proto-srv-generator.

.PHONY: all generate build

all: generate build

# Regenerate the message types in pb/ from %s.
generate:
	buf generate

build:
	go build ./...
`, opts.SchemaFile)
}

type bufGenFile struct {
	Version string       `yaml:"version"`
	Managed bufManaged   `yaml:"managed"`
	Plugins []bufPlugin  `yaml:"plugins"`
	Inputs  []bufGenItem `yaml:"inputs"`
}

type bufManaged struct {
	Enabled  bool          `yaml:"enabled"`
	Override []bufOverride `yaml:"override"`
}

type bufOverride struct {
	FileOption string `yaml:"file_option"`
	Value      string `yaml:"value"`
}

type bufPlugin struct {
	Local string `yaml:"local"`
	Out   string `yaml:"out"`
	Opt   string `yaml:"opt"`
}

type bufGenItem struct {
	Directory string `yaml:"directory"`
}

// EmitBufGen renders the schema-compiler configuration. The go_package
// override points generated message code at the pb package the wiring and
// client files import.
func EmitBufGen(opts Options) (string, error) {
	cfg := bufGenFile{
		Version: "v2",
		Managed: bufManaged{
			Enabled: true,
			Override: []bufOverride{
				{FileOption: "go_package", Value: opts.PBImport},
			},
		},
		Plugins: []bufPlugin{
			{Local: "protoc-gen-go", Out: "pb", Opt: "paths=source_relative"},
		},
		Inputs: []bufGenItem{
			{Directory: "."},
		},
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal buf.gen.yaml: %w", err)
	}
	return "# Generated by proto-srv-generator.\n" + string(out), nil
}
