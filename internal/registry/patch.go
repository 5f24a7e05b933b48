package registry

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	oerrors "github.com/ffbun/cli/internal/errors"
	"github.com/ffbun/cli/internal/output"
)

// PatchResult reports what a patch changed.
type PatchResult struct {
	// Path is the registry file that was patched (empty for in-memory patches).
	Path string `json:"path,omitempty"`

	// RoutesName is the exported routes identifier, e.g. "OrderItemRoutes".
	RoutesName string `json:"routesName"`

	// ImportAdded is true when the import line was inserted.
	ImportAdded bool `json:"importAdded"`

	// RegistrationAdded is true when the registration statement was inserted.
	RegistrationAdded bool `json:"registrationAdded"`
}

// Changed reports whether the patch modified the document.
func (r PatchResult) Changed() bool {
	return r.ImportAdded || r.RegistrationAdded
}

// RoutesName returns the routes export of a module, e.g. "OrderItemRoutes".
func RoutesName(typeName string) string {
	return typeName + "Routes"
}

// ImportLine returns the import statement for a module's routes.
func ImportLine(typeName string) string {
	return fmt.Sprintf(`import { %s } from "./modules/%s/routes";`, RoutesName(typeName), typeName)
}

// RegistrationLine returns the registration statement for a module's routes.
func RegistrationLine(typeName string) string {
	return registrationStatement(RoutesName(typeName))
}

// Patch adds the import and registration for typeName to a registry document.
// Patching the same module twice leaves the document unchanged the second time.
func Patch(document, typeName string) (string, PatchResult, error) {
	result := PatchResult{RoutesName: RoutesName(typeName)}

	doc, err := Parse(document)
	if err != nil {
		return "", result, err
	}

	result.ImportAdded = doc.AddImport(ImportLine(typeName))
	result.RegistrationAdded = doc.AddRegistration(result.RoutesName)

	return doc.String(), result, nil
}

// PatchFile patches the registry file at path in place.
// The file is only rewritten when the patch changed something.
func PatchFile(fsys afero.Fs, path, typeName string) (PatchResult, error) {
	return patchFile(fsys, path, typeName, true)
}

// PreviewFile computes the patch PatchFile would apply without writing it.
func PreviewFile(fsys afero.Fs, path, typeName string) (PatchResult, error) {
	return patchFile(fsys, path, typeName, false)
}

func patchFile(fsys afero.Fs, path, typeName string, write bool) (PatchResult, error) {
	result := PatchResult{Path: path, RoutesName: RoutesName(typeName)}

	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, oerrors.NewNotFoundError(
				fmt.Sprintf("route registry not found: %s", path),
				path,
				"Run newmodule from the project root or set project.routerFile in the config.",
			)
		}
		return result, fmt.Errorf("reading route registry: %w", err)
	}

	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return result, fmt.Errorf("reading route registry: %w", err)
	}

	patched, res, err := Patch(string(content), typeName)
	if err != nil {
		return result, &oerrors.DetailError{
			Type:     "invalid route registry",
			Message:  err.Error(),
			Location: path,
			Hint:     fmt.Sprintf("The registry must declare %q with a closing brace on its own line.", RouterDeclaration),
			Cause:    fmt.Errorf("%w: %w", oerrors.ErrValidation, err),
		}
	}
	res.Path = path

	if !res.Changed() {
		output.Debug("route registry already up to date", "path", path, "routes", res.RoutesName)
		return res, nil
	}
	if !write {
		return res, nil
	}

	if err := afero.WriteFile(fsys, path, []byte(patched), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("writing route registry: %w", err)
	}

	output.Debug("route registry updated",
		"path", path,
		"routes", res.RoutesName,
		"import", res.ImportAdded,
		"registration", res.RegistrationAdded)

	return res, nil
}
