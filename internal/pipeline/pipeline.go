// Package pipeline orchestrates a generation run: extract the schema model,
// plan every target path against the regeneration rules, emit the artifacts,
// and write them in a fixed sequential order. Any failure aborts the rest of
// the run; already-written files are left in place (the tool is simply
// re-run with --force after a fix).
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/aricart/proto-srv-generator/internal/codegen"
	"github.com/aricart/proto-srv-generator/internal/regen"
	"github.com/aricart/proto-srv-generator/internal/schema"
)

// Options configure one generation run. Force is explicit here and threaded
// down to the regeneration rules, never stored as process state.
type Options struct {
	// SchemaPath is the proto file to read service declarations from.
	SchemaPath string

	// OutDir is the root of the generated project tree.
	OutDir string

	// Module is the module path written to the generated go.mod. Empty
	// defaults to example.com/<package>.
	Module string

	// Force allows regeneration over an existing tree.
	Force bool

	// Logger receives per-artifact progress and parse diagnostics. Use
	// zerolog.Nop() to silence it.
	Logger zerolog.Logger
}

// artifact is one planned output: where it goes, who owns it after
// generation, and what to write.
type artifact struct {
	path       string
	humanOwned bool
	content    string
}

// Run executes the full pipeline for opts.
func Run(opts Options) error {
	log := opts.Logger

	src, err := os.ReadFile(opts.SchemaPath) // #nosec G304 - user-supplied input file
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	model, diags, err := schema.Parse(string(src))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", opts.SchemaPath, err)
	}
	for _, d := range diags {
		log.Warn().Int("line", d.Line).Str("reason", d.Reason).Msg("skipped rpc declaration")
	}

	if err := ensureOutDir(opts.OutDir, opts.Force); err != nil {
		return err
	}

	cg := codegenOptions(model, opts)

	artifacts, err := emitAll(model, cg, opts.OutDir)
	if err != nil {
		return err
	}

	// Plan every write before performing any, so a conflict rejects the
	// whole run with the tree untouched.
	actions := make([]regen.Action, len(artifacts))
	for i, a := range artifacts {
		action, err := regen.Prepare(a.path, a.humanOwned, opts.Force)
		if err != nil {
			return err
		}
		actions[i] = action
	}

	for i, a := range artifacts {
		if err := regen.Apply(a.path, actions[i], []byte(a.content)); err != nil {
			return err
		}
		log.Info().Str("action", actions[i].String()).Msg(a.path)
	}

	// Provenance copy of the schema itself: always overwritten, never
	// backed up.
	schemaCopy := filepath.Join(opts.OutDir, cg.SchemaFile)
	if err := os.WriteFile(schemaCopy, src, 0o600); err != nil {
		return fmt.Errorf("failed to copy schema file: %w", err)
	}
	log.Info().Str("action", "copy").Msg(schemaCopy)

	return nil
}

func codegenOptions(model *schema.Model, opts Options) codegen.Options {
	pkg := codegen.PackageIdent(model.PackageName)
	module := opts.Module
	if module == "" {
		module = "example.com/" + pkg
	}
	return codegen.Options{
		Package:    pkg,
		Module:     module,
		PBImport:   module + "/pb",
		SchemaFile: filepath.Base(opts.SchemaPath),
	}
}

// emitAll renders every artifact for the run: three files per service in
// model order, then the tree-level alias file and project configuration.
func emitAll(model *schema.Model, cg codegen.Options, outDir string) ([]artifact, error) {
	var artifacts []artifact

	for _, svc := range model.Services {
		base := codegen.FileBase(svc.Name)

		handlers, err := codegen.EmitHandlers(svc, cg)
		if err != nil {
			return nil, fmt.Errorf("failed to generate handlers for %s: %w", svc.Name, err)
		}
		wiring, err := codegen.EmitService(svc, cg)
		if err != nil {
			return nil, fmt.Errorf("failed to generate wiring for %s: %w", svc.Name, err)
		}
		client, err := codegen.EmitClient(svc, cg)
		if err != nil {
			return nil, fmt.Errorf("failed to generate client for %s: %w", svc.Name, err)
		}

		artifacts = append(artifacts,
			artifact{path: filepath.Join(outDir, base+"_handlers.go"), humanOwned: true, content: handlers},
			artifact{path: filepath.Join(outDir, base+"_service.go"), content: wiring},
			artifact{path: filepath.Join(outDir, base+"_client.go"), content: client},
		)
	}

	types, err := codegen.EmitTypes(model, cg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate type aliases: %w", err)
	}
	bufgen, err := codegen.EmitBufGen(cg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate buf.gen.yaml: %w", err)
	}

	artifacts = append(artifacts,
		artifact{path: filepath.Join(outDir, "types.go"), content: types},
		artifact{path: filepath.Join(outDir, "go.mod"), content: codegen.EmitGoMod(cg)},
		artifact{path: filepath.Join(outDir, "Makefile"), content: codegen.EmitMakefile(cg)},
		artifact{path: filepath.Join(outDir, "buf.gen.yaml"), content: bufgen},
	)

	return artifacts, nil
}

// ensureOutDir creates the output directory, or requires force when it
// already exists.
func ensureOutDir(dir string, force bool) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to stat output directory: %w", err)
	case !info.IsDir():
		return fmt.Errorf("output path %s is not a directory", dir)
	case !force:
		return &regen.AlreadyExistsError{Path: dir}
	default:
		return nil
	}
}
