package templates

import (
	"embed"
	"text/template"
)

//go:embed module/*.tmpl
var moduleFS embed.FS

// parsed holds every module template, keyed by its path in moduleFS.
var parsed = template.Must(template.New("module").Option("missingkey=error").ParseFS(moduleFS, "module/*.tmpl"))
