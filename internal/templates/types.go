// Package templates renders the fixed set of files that make up a module.
package templates

import "github.com/ffbun/cli/internal/naming"

// FileKind identifies one of the five roles every module fulfills.
type FileKind string

const (
	// Schema is the zod data-shape definition.
	Schema FileKind = "schema"

	// Interfaces holds the concrete and inferred type interfaces.
	Interfaces FileKind = "interfaces"

	// Controller is the request handler delegating to the repository.
	Controller FileKind = "controller"

	// Repository is the data access function.
	Repository FileKind = "repository"

	// Routes registers the module's HTTP endpoint.
	Routes FileKind = "routes"
)

// Kinds returns every file kind in generation order.
func Kinds() []FileKind {
	return []FileKind{Schema, Interfaces, Controller, Repository, Routes}
}

// String returns the string form of the kind.
func (k FileKind) String() string {
	return string(k)
}

// File is one rendered module file.
type File struct {
	// Kind is the role of the file.
	Kind FileKind

	// Name is the file name inside the module directory (e.g. "routes.ts").
	Name string

	// Content is the rendered file body.
	Content []byte
}

// Bundle is the complete set of rendered files for one module, in Kinds order.
type Bundle struct {
	// Identifiers is the identifier set every file was rendered from.
	Identifiers naming.IdentifierSet

	// Files holds exactly one entry per FileKind.
	Files []File
}

// Names returns the file names of the bundle in order.
func (b Bundle) Names() []string {
	names := make([]string, 0, len(b.Files))
	for _, f := range b.Files {
		names = append(names, f.Name)
	}
	return names
}
