// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SeedRouter is a minimal route registry as shipped by the project template.
const SeedRouter = `import type { FastifyInstance } from "fastify";

export const router = async (fastify: FastifyInstance) => {
}
`

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// NewProject creates a temporary project containing src/modules and a seeded
// src/router.ts, and returns its root.
func NewProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "src", "modules"), 0o755); err != nil {
		t.Fatalf("failed to create modules dir: %v", err)
	}
	WriteFile(t, dir, filepath.Join("src", "router.ts"), SeedRouter)
	return dir
}

// ReadFile returns the content of dir/name.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(content)
}
