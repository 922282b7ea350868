package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()

	origOut := rootCmd.OutOrStdout()
	origErr := rootCmd.ErrOrStderr()

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(origOut)
		rootCmd.SetErr(origErr)
	})

	return rootCmd.Execute()
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "calc.proto")
	schema := `package calc;

service Calc {
  rpc Add(AddRequest) returns (CalcResponse) {}
}
`
	if err := os.WriteFile(schemaPath, []byte(schema), 0o600); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	if err := execute(t, "generate", "--out", outDir, schemaPath); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	wiring, err := os.ReadFile(filepath.Join(outDir, "calc_service.go")) // #nosec G304
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(wiring), `grp.AddEndpoint("Add"`) {
		t.Errorf("generated wiring missing endpoint registration:\n%s", wiring)
	}
}

func TestGenerateCommand_MissingSchemaArg(t *testing.T) {
	if err := execute(t, "generate", "--out", filepath.Join(t.TempDir(), "out")); err == nil {
		t.Fatal("expected an error when no schema file is given")
	}
}

func TestGenerateCommand_ExistingTreeWithoutForce(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "calc.proto")
	schema := `service Calc {
  rpc Add(AddRequest) returns (CalcResponse);
}
`
	if err := os.WriteFile(schemaPath, []byte(schema), 0o600); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	if err := execute(t, "generate", "--out", outDir, schemaPath); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "generate", "--out", outDir, schemaPath)
	if err == nil {
		t.Fatal("expected a conflict error on an existing tree without --force")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error does not mention the conflict: %v", err)
	}
}
