package templates

import (
	"fmt"
	"strings"

	"github.com/ffbun/cli/internal/naming"
)

// ValidateIdentifiers checks that an identifier set can be used as a module
// directory name. Identifier content is otherwise passed through verbatim.
func ValidateIdentifiers(ids naming.IdentifierSet) error {
	name := ids.TypeName

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("module name cannot be empty")
	}

	if name == "." || name == ".." {
		return fmt.Errorf("invalid module name %q", name)
	}

	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid module name %q: must not contain path separators", name)
	}

	return nil
}
