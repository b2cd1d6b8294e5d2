package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-acfgen/pkg/declaration"
	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
	"github.com/goliatone/go-acfgen/pkg/host"
)

// UpdateGoldensEnv enables rewriting golden files instead of comparing them.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

// LoadDeclarations parses a declaration fixture, failing the test on error.
func LoadDeclarations(t *testing.T, path string) declaration.Document {
	t.Helper()

	doc, err := LoadDeclarationsFromPath(path)
	if err != nil {
		t.Fatalf("load declarations: %v", err)
	}
	return doc
}

// LoadDeclarationsFromPath reads a declaration fixture without requiring
// testing.T so callers can wire fixtures in setup functions.
func LoadDeclarationsFromPath(path string) (declaration.Document, error) {
	if path == "" {
		return declaration.Document{}, errors.New("testsupport: declaration path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return declaration.Document{}, fmt.Errorf("testsupport: read declarations: %w", err)
	}
	return declaration.Parse(data, path)
}

// MustArguments normalizes a group with the built-in defaults.
func MustArguments(t *testing.T, g group.Group) host.Arguments {
	t.Helper()

	args, err := g.Arguments(field.Defaults{}, group.Filters{})
	if err != nil {
		t.Fatalf("arguments for %s: %v", g.ID(), err)
	}
	return args
}

// Canonical converts a value into its decoded JSON form so typed builder
// output can be compared against fixtures read from disk.
func Canonical(t *testing.T, value any) any {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal canonical: %v", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal canonical: %v", err)
	}
	return out
}

// AssertJSONGolden compares value against the JSON golden at path. With
// UPDATE_GOLDENS set the golden is rewritten instead.
func AssertJSONGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv(UpdateGoldensEnv) != "" {
		payload, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			t.Fatalf("marshal golden: %v", err)
		}
		WriteGolden(t, path, append(payload, '\n'))
		return
	}

	var want any
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
	if diff := CompareGolden(want, Canonical(t, value)); diff != "" {
		t.Fatalf("golden mismatch %s (-want +got):\n%s", path, diff)
	}
}

// WriteGolden writes data to path, creating parent directories.
func WriteGolden(t *testing.T, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
