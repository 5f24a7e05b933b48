// Package config provides configuration loading, resolution and validation.
package config

// Default values used when neither the config file nor the environment set them.
const (
	DefaultTemplateName       = "ffbun"
	DefaultTemplateRepository = "https://github.com/danielsrod/ffbun"
	DefaultModulesDir         = "src/modules"
	DefaultRouterFile         = "src/router.ts"
)

// Variant is one selectable flavour of the project template.
type Variant struct {
	// Name is the identifier shown in the prompt and accepted by --variant.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Branch is the template repository branch. Empty means the default branch.
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty" mapstructure:"branch"`

	// Description explains the variant in the prompt.
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

// TemplateConfig describes the remote project template.
type TemplateConfig struct {
	// Name is the directory name the template is cloned as and the default
	// project directory for init.
	Name string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`

	// Repository is the git URL of the template.
	// Env: FFBUN_TEMPLATE_REPOSITORY
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty" mapstructure:"repository"`

	// Variants lists the selectable template flavours. The first is the default.
	Variants []Variant `json:"variants,omitempty" yaml:"variants,omitempty" mapstructure:"variants"`
}

// ProjectConfig describes the layout of a generated project.
type ProjectConfig struct {
	// ModulesDir is where modules are generated, relative to the project root.
	// Env: FFBUN_PROJECT_MODULESDIR
	ModulesDir string `json:"modulesDir,omitempty" yaml:"modulesDir,omitempty" mapstructure:"modulesDir"`

	// RouterFile is the route registry patched for every new module.
	// Env: FFBUN_PROJECT_ROUTERFILE
	RouterFile string `json:"routerFile,omitempty" yaml:"routerFile,omitempty" mapstructure:"routerFile"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the ffbun CLI configuration, loaded from
// ~/.ffbun/config.yaml and validated against the embedded CUE schema.
type Config struct {
	Template TemplateConfig `json:"template,omitempty" yaml:"template,omitempty" mapstructure:"template"`
	Project  ProjectConfig  `json:"project,omitempty" yaml:"project,omitempty" mapstructure:"project"`
	Log      LogConfig      `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`
}

// DefaultVariants returns the built-in template variants.
func DefaultVariants() []Variant {
	return []Variant{
		{Name: "main", Description: "No database"},
		{Name: "oracle", Branch: "oracle", Description: "Oracle database"},
	}
}

// DefaultConfig returns a Config with all default values populated.
// Used by `ffbun config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Template: TemplateConfig{
			Name:       DefaultTemplateName,
			Repository: DefaultTemplateRepository,
			Variants:   DefaultVariants(),
		},
		Project: ProjectConfig{
			ModulesDir: DefaultModulesDir,
			RouterFile: DefaultRouterFile,
		},
	}
}

// WithDefaults returns a copy of c with empty fields filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	def := DefaultConfig()
	if c == nil {
		return def
	}

	out := *c
	if out.Template.Name == "" {
		out.Template.Name = def.Template.Name
	}
	if out.Template.Repository == "" {
		out.Template.Repository = def.Template.Repository
	}
	if len(out.Template.Variants) == 0 {
		out.Template.Variants = def.Template.Variants
	}
	if out.Project.ModulesDir == "" {
		out.Project.ModulesDir = def.Project.ModulesDir
	}
	if out.Project.RouterFile == "" {
		out.Project.RouterFile = def.Project.RouterFile
	}
	return &out
}

// FindVariant returns the variant with the given name.
func (c *Config) FindVariant(name string) (Variant, bool) {
	for _, v := range c.Template.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// VariantNames returns the configured variant names in order.
func (c *Config) VariantNames() []string {
	names := make([]string, 0, len(c.Template.Variants))
	for _, v := range c.Template.Variants {
		names = append(names, v.Name)
	}
	return names
}
