package templates

import "fmt"

// FileExtension is the extension of every generated source file.
const FileExtension = ".ts"

// kindInfo describes how a file kind is rendered and presented.
type kindInfo struct {
	// template is the path inside the embedded filesystem.
	template string

	// description is shown next to the file in the CLI file tree.
	description string
}

// kinds is the internal registry of file kinds.
var kinds = map[FileKind]kindInfo{
	Schema: {
		template:    "module/schema.ts.tmpl",
		description: "Validation schema",
	},
	Interfaces: {
		template:    "module/interfaces.ts.tmpl",
		description: "Type interfaces",
	},
	Controller: {
		template:    "module/controller.ts.tmpl",
		description: "Request handler",
	},
	Repository: {
		template:    "module/repository.ts.tmpl",
		description: "Data access",
	},
	Routes: {
		template:    "module/routes.ts.tmpl",
		description: "Route registration",
	},
}

// IsValidKind checks if a file kind is known.
func IsValidKind(kind FileKind) bool {
	_, ok := kinds[kind]
	return ok
}

// FileName returns the file name used for a kind inside the module directory.
func FileName(kind FileKind) string {
	return string(kind) + FileExtension
}

// Describe returns a short description of a kind. Unknown kinds return "".
func Describe(kind FileKind) string {
	return kinds[kind].description
}

func lookup(kind FileKind) (kindInfo, error) {
	info, ok := kinds[kind]
	if !ok {
		return kindInfo{}, fmt.Errorf("unknown file kind %q", kind)
	}
	return info, nil
}
