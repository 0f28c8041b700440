package shared

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pixie-sh/errors-go"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// GeneratorConfig holds all configurable paths and conventions for code generation.
// Paths are relative to the project root. Loaded from .skills.yaml or skills.yaml if present,
// otherwise sensible defaults are used.
type GeneratorConfig struct {
	Gin      GinConfig      `yaml:"gin"`
	Monorepo MonorepoConfig `yaml:"monorepo"`

	// Runner used for shadcn and other npm packages, e.g. "npx" or "bunx"
	PackageRunner string `yaml:"package_runner" validate:"required,oneof=npx bunx pnpx"`

	// Module name (auto-detected from go.mod if empty)
	ModuleName string `yaml:"module_name"`
}

// GinConfig holds the layer layout of generated Gin projects.
type GinConfig struct {
	EntityDir         string `yaml:"entity_dir" validate:"required,relpath"`          // e.g. "internal/domain/entity"
	RepositoryDir     string `yaml:"repository_dir" validate:"required,relpath"`      // e.g. "internal/domain/repository"
	RepositoryImplDir string `yaml:"repository_impl_dir" validate:"required,relpath"` // e.g. "internal/infrastructure/repository"
	UsecaseDir        string `yaml:"usecase_dir" validate:"required,relpath"`         // e.g. "internal/usecase"
	HandlerDir        string `yaml:"handler_dir" validate:"required,relpath"`         // e.g. "internal/handler"
	InfrastructureDir string `yaml:"infrastructure_dir" validate:"required,relpath"`  // e.g. "internal/infrastructure"
	MiddlewareDir     string `yaml:"middleware_dir" validate:"required,relpath"`      // e.g. "pkg/middleware"

	// API defaults
	APIPrefix   string   `yaml:"api_prefix" validate:"required,startswith=/"`
	Port        int      `yaml:"port" validate:"min=1,max=65535"`
	DocsTitle   string   `yaml:"docs_title" validate:"required"`
	DocsVersion string   `yaml:"docs_version" validate:"required"`
	DocsServers []string `yaml:"docs_servers" validate:"dive,url"`
}

// MonorepoConfig holds Bun workspace conventions.
type MonorepoConfig struct {
	Scope       string `yaml:"scope" validate:"required,startswith=@"` // npm scope of workspace packages
	BackendPort int    `yaml:"backend_port" validate:"min=1,max=65535"`
}

// DefaultConfig returns a GeneratorConfig with sensible defaults.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Gin: GinConfig{
			EntityDir:         "internal/domain/entity",
			RepositoryDir:     "internal/domain/repository",
			RepositoryImplDir: "internal/infrastructure/repository",
			UsecaseDir:        "internal/usecase",
			HandlerDir:        "internal/handler",
			InfrastructureDir: "internal/infrastructure",
			MiddlewareDir:     "pkg/middleware",
			APIPrefix:         "/api/v1",
			Port:              8080,
			DocsTitle:         "API",
			DocsVersion:       "1.0.0",
			DocsServers:       []string{},
		},
		Monorepo: MonorepoConfig{
			Scope:       "@monorepo",
			BackendPort: 3001,
		},
		PackageRunner: "npx",
	}
}

// ConfigFiles are looked up in the project root, in order.
var ConfigFiles = []string{".skills.yaml", "skills.yaml"}

// LoadConfig loads configuration from explicit, or from .skills.yaml or
// skills.yaml in root. If no config file is found, returns DefaultConfig with no error.
func LoadConfig(root, explicit string) (GeneratorConfig, error) {
	cfg := DefaultConfig()

	var data []byte
	if explicit != "" {
		content, err := os.ReadFile(explicit)
		if err != nil {
			return cfg, errors.Wrap(err, "failed to read config file %s", explicit)
		}
		data = content
	} else {
		for _, name := range ConfigFiles {
			content, err := os.ReadFile(filepath.Join(root, name))
			if err == nil {
				data = content
				break
			}
		}
	}

	if data == nil {
		return cfg, nil
	}

	// Parse YAML into a wrapper struct that has a "generate" key
	var wrapper struct {
		Generate GeneratorConfig `yaml:"generate"`
	}
	wrapper.Generate = cfg // preserve defaults

	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return cfg, errors.Wrap(err, "failed to parse skills config file")
	}

	if err := ValidateConfig(wrapper.Generate); err != nil {
		return cfg, err
	}

	return wrapper.Generate, nil
}

var validate = newValidator()

var kebabPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("relpath", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		if filepath.IsAbs(p) {
			return false
		}
		clean := filepath.ToSlash(filepath.Clean(p))
		return clean != ".." && !strings.HasPrefix(clean, "../")
	})
	_ = v.RegisterValidation("kebab", func(fl validator.FieldLevel) bool {
		return kebabPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidateConfig checks cfg against its validate tags.
func ValidateConfig(cfg GeneratorConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid skills config")
	}
	return nil
}

// ValidateStruct validates any struct carrying validate tags.
func ValidateStruct(target any) error {
	return validate.Struct(target)
}

// DetectModule reads go.mod from root and returns the module path.
func DetectModule(root string) (string, error) {
	content, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", errors.Wrap(err, "could not read go.mod file")
	}

	module := modfile.ModulePath(content)
	if module == "" {
		return "", errors.New("module name not found in go.mod")
	}

	return module, nil
}

// ResolveModule returns moduleName if non-empty, otherwise auto-detects from go.mod.
func ResolveModule(moduleName, root string) (string, error) {
	if moduleName != "" {
		return moduleName, nil
	}
	return DetectModule(root)
}
