package templates

import (
	"bytes"
	"fmt"
	"path"

	"github.com/ffbun/cli/internal/naming"
)

// Render renders the file of the given kind for an identifier set.
// Output is deterministic: the same kind and identifiers always produce
// byte-identical content.
func Render(kind FileKind, ids naming.IdentifierSet) ([]byte, error) {
	info, err := lookup(kind)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := parsed.ExecuteTemplate(&buf, path.Base(info.template), ids); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", kind, err)
	}

	return buf.Bytes(), nil
}

// RenderBundle renders all five module files in memory.
// Nothing is written; callers commit the bundle once every render succeeded.
func RenderBundle(ids naming.IdentifierSet) (Bundle, error) {
	bundle := Bundle{
		Identifiers: ids,
		Files:       make([]File, 0, len(kinds)),
	}

	for _, kind := range Kinds() {
		content, err := Render(kind, ids)
		if err != nil {
			return Bundle{}, err
		}

		bundle.Files = append(bundle.Files, File{
			Kind:    kind,
			Name:    FileName(kind),
			Content: content,
		})
	}

	return bundle, nil
}
