// Package regen decides and performs what writing a generated artifact to an
// existing output tree is allowed to do. Human-owned files (handler seeds)
// are backed up before a forced overwrite; machine-owned files are replaced
// in place. Without force, any existing target rejects the write so the
// caller can fail before touching the tree.
package regen

import (
	"errors"
	"fmt"
	"os"
)

// Action is the write strategy for one target path.
type Action int

const (
	// Create writes a path that does not exist yet.
	Create Action = iota
	// Overwrite replaces a machine-owned file in place.
	Overwrite
	// BackupThenOverwrite copies the existing file to a .bak sibling before
	// replacing it. Only one backup generation is kept: a second forced run
	// replaces the previous backup.
	BackupThenOverwrite
	// Reject refuses the write because the target exists and force is off.
	Reject
)

func (a Action) String() string {
	switch a {
	case Create:
		return "create"
	case Overwrite:
		return "overwrite"
	case BackupThenOverwrite:
		return "backup+overwrite"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// AlreadyExistsError reports a target that cannot be written without force.
type AlreadyExistsError struct {
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists (re-run with --force to overwrite)", e.Path)
}

// Prepare decides the action for writing to path. humanOwned marks files the
// user edits after generation; force is threaded explicitly from the caller,
// never read from ambient state.
func Prepare(path string, humanOwned, force bool) (Action, error) {
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Create, nil
	case err != nil:
		return Reject, fmt.Errorf("failed to stat %s: %w", path, err)
	case !force:
		return Reject, &AlreadyExistsError{Path: path}
	case humanOwned:
		return BackupThenOverwrite, nil
	default:
		return Overwrite, nil
	}
}

// Apply performs action for path: the backup copy if called for, then the
// write. Applying Reject returns the conflict instead of writing.
func Apply(path string, action Action, content []byte) error {
	switch action {
	case Reject:
		return &AlreadyExistsError{Path: path}
	case BackupThenOverwrite:
		prev, err := os.ReadFile(path) // #nosec G304 - path was planned by the caller
		if err != nil {
			return fmt.Errorf("failed to read %s for backup: %w", path, err)
		}
		if err := os.WriteFile(path+".bak", prev, 0o600); err != nil {
			return fmt.Errorf("failed to write backup of %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
