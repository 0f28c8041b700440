package gin_cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
	"github.com/pixie-sh/skills-cli/internal/typemap"
)

// DomainOptions holds all the options for domain generation.
type DomainOptions struct {
	shared.Common
	Name       string
	Fields     string
	ModuleName string
}

// DomainCmd returns the cobra command for domain generation.
func DomainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain <name>",
		Short: "Generate a domain: entity, repository, use case and handler",
		Long: `Generate the five files of a domain in a Gin project:

  <entity_dir>/<name>.go                       GORM entity
  <repository_dir>/<name>_repository.go        repository interface
  <repository_impl_dir>/<name>_repository.go   GORM repository
  <usecase_dir>/<name>_usecase.go              use case
  <handler_dir>/<name>_handler.go              CRUD handler with RegisterRoutes

Fields are given as "name:type" pairs. Known types: string, text, int, int64,
uint, float64, decimal, bool, time, date, uuid, bytes, json. Wrap a type in
[] or * for slices and pointers. Unknown types fall back to string.

Examples:
  skills gin domain product --fields "name:string,price:float64,stock:int"
  skills gin domain order-item --fields "quantity:int,placed_at:time,tags:[]string"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var fields, _ = cmd.Flags().GetString("fields")
			var moduleName, _ = cmd.Flags().GetString("module-name")

			opts := DomainOptions{
				Common:     shared.CommonFromCmd(cmd),
				Name:       args[0],
				Fields:     fields,
				ModuleName: moduleName,
			}

			return generateDomain(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("fields", "", `Comma-separated fields, e.g. "name:string,age:int"`)
	cmd.Flags().String("module-name", "", "Go module name (auto-detected from go.mod if not provided)")

	return cmd
}

type domainData struct {
	ginLayout
	Module    string
	Name      string
	Entity    string
	Var       string
	Plural    string
	PluralVar string
	Table     string
	Route     string
	Fields    []typemap.Field
	Imports   []string
}

func newDomainData(name, fieldSpec, module string, layout ginLayout) (domainData, error) {
	entity, ok := scaffold.ExportedName(name)
	if !ok {
		return domainData{}, scaffold.UsageError("invalid domain name %q", name)
	}

	fields, err := typemap.Parse(fieldSpec)
	if err != nil {
		return domainData{}, err
	}

	snake := scaffold.Snake(name)
	return domainData{
		ginLayout: layout,
		Module:    module,
		Name:      snake,
		Entity:    entity,
		Var:       scaffold.Camel(name),
		Plural:    scaffold.Plural(snake),
		PluralVar: scaffold.Camel(scaffold.Plural(snake)),
		Table:     scaffold.Plural(snake),
		Route:     scaffold.Kebab(scaffold.Plural(snake)),
		Fields:    fields,
		Imports:   typemap.Imports(fields, "time"),
	}, nil
}

func planDomain(d domainData) (scaffold.Plan, error) {
	files := []struct {
		template string
		dest     string
	}{
		{"templates/domain/entity.go.tmpl", d.Entities.File(d.Name + ".go")},
		{"templates/domain/repository.go.tmpl", d.Repositories.File(d.Name + "_repository.go")},
		{"templates/domain/repository_impl.go.tmpl", d.RepositoryImpls.File(d.Name + "_repository.go")},
		{"templates/domain/usecase.go.tmpl", d.Usecases.File(d.Name + "_usecase.go")},
		{"templates/domain/handler.go.tmpl", d.Handlers.File(d.Name + "_handler.go")},
	}

	var plan scaffold.Plan
	for _, f := range files {
		file, err := renderer.File(f.template, f.dest, d)
		if err != nil {
			return scaffold.Plan{}, err
		}
		plan.Files = append(plan.Files, file)
	}

	var deps []string
	for _, imp := range d.Imports {
		if imp != "time" {
			deps = append(deps, imp)
		}
	}
	plan.Dependencies = deps
	plan.Install = "go get"
	plan.Steps = []scaffold.Step{
		{
			Title: "Register the entity for auto migration:",
			Lines: []string{fmt.Sprintf("db.AutoMigrate(&%s.%s{})", d.Entities.Pkg, d.Entity)},
		},
		{
			Title: "Wire the handler in cmd/api/main.go:",
			Lines: []string{
				fmt.Sprintf("%sRepo := %s.New%sRepository(db)", d.Var, d.RepositoryImpls.Pkg, d.Entity),
				fmt.Sprintf("%sUseCase := %s.New%sUseCase(%sRepo)", d.Var, d.Usecases.Pkg, d.Entity, d.Var),
				fmt.Sprintf("%s.New%sHandler(%sUseCase).RegisterRoutes(api)", d.Handlers.Pkg, d.Entity, d.Var),
			},
		},
		{
			Title: "Update dependencies:",
			Lines: []string{"go mod tidy"},
		},
	}
	return plan, nil
}

func generateDomain(ctx context.Context, opts DomainOptions) error {
	s, err := opts.Open(ctx, scaffold.GoModule)
	if err != nil {
		return err
	}

	module, err := shared.ResolveModule(firstNonEmpty(opts.ModuleName, s.Config.ModuleName), s.Root)
	if err != nil {
		return scaffold.PreconditionError("%v", err)
	}

	layout, err := newGinLayout(module, s.Config.Gin)
	if err != nil {
		return err
	}

	data, err := newDomainData(opts.Name, opts.Fields, module, layout)
	if err != nil {
		return err
	}

	plan, err := planDomain(data)
	if err != nil {
		return err
	}
	plan.Steps = append(plan.Steps, scaffold.Step{
		Title: "Try it:",
		Lines: []string{fmt.Sprintf("curl http://localhost:%d%s/%s", s.Config.Gin.Port, s.Config.Gin.APIPrefix, data.Route)},
	})

	s.Reporter.Title("Generating domain: %s", data.Entity)
	s.Reporter.Detail("Module", module)
	s.Reporter.Detail("Fields", fmt.Sprintf("%d", len(data.Fields)))
	s.Reporter.Blank()

	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("Domain %s generated successfully", data.Entity)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
