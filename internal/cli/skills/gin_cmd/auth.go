package gin_cmd

import (
	"context"
	"path"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// AuthMode selects the sign-in methods of the generated auth domain.
type AuthMode string

const (
	AuthLocal  AuthMode = "local"
	AuthGoogle AuthMode = "google"
	AuthBoth   AuthMode = "both"
)

var AuthModes = []AuthMode{AuthLocal, AuthGoogle, AuthBoth}

// AuthOptions holds all the options for auth generation.
type AuthOptions struct {
	shared.Common
	Provider   string
	ModuleName string
}

// AuthCmd returns the cobra command that adds JWT authentication.
func AuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Add JWT authentication to a Gin project",
		Long: `Add an auth domain with a user entity, DTOs, repository, service and
handler, a JWT service in pkg/jwt and auth/role middleware.

Providers:
  local   email and password (bcrypt)
  google  Google ID token sign in
  both    local and google (default)

The JWT settings are appended to .env.example once.

Examples:
  skills gin auth
  skills gin auth --provider local
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var provider, _ = cmd.Flags().GetString("provider")
			var moduleName, _ = cmd.Flags().GetString("module-name")

			opts := AuthOptions{
				Common:     shared.CommonFromCmd(cmd),
				Provider:   provider,
				ModuleName: moduleName,
			}

			return generateAuth(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("provider", string(AuthBoth), "Authentication provider: "+scaffold.JoinChoices(AuthModes))
	cmd.Flags().String("module-name", "", "Go module name (auto-detected from go.mod if not provided)")
	scaffold.RegisterChoices(cmd, "provider", AuthModes)

	return cmd
}

type authData struct {
	Module          string
	Issuer          string
	Local           bool
	Google          bool
	DefaultProvider string
	UploadsDir      string
	Port            int
	Entity          layer
	DTO             layer
	Repository      layer
	Service         layer
	Handler         layer
	Middleware      layer
}

func newAuthData(mode AuthMode, module string, layout ginLayout) (authData, error) {
	d := authData{
		Module:          module,
		Issuer:          path.Base(module),
		Local:           mode != AuthGoogle,
		Google:          mode != AuthLocal,
		DefaultProvider: "local",
		UploadsDir:      "uploads/avatars",
		Port:            8080,
		Middleware:      layout.Middleware,
	}
	if !d.Local {
		d.DefaultProvider = "google"
	}

	authDir, err := newLayer(module, path.Join(path.Dir(layout.Entities.Dir), "auth"))
	if err != nil {
		return authData{}, err
	}
	subs := []struct {
		dst  *layer
		name string
	}{
		{&d.Entity, "entity"},
		{&d.DTO, "dto"},
		{&d.Repository, "repository"},
		{&d.Service, "service"},
		{&d.Handler, "handler"},
	}
	for _, sub := range subs {
		l, err := authDir.Sub(module, sub.name)
		if err != nil {
			return authData{}, err
		}
		*sub.dst = l
	}
	return d, nil
}

var authCatalog = func() *scaffold.Catalog[AuthMode, authData] {
	c := scaffold.NewCatalog[AuthMode, authData]("auth")
	for _, m := range AuthModes {
		c.Register(m, planAuth)
	}
	return c
}()

func planAuth(d authData) (scaffold.Plan, error) {
	files := []struct {
		template string
		dest     string
	}{
		{"templates/auth/user.go.tmpl", d.Entity.File("user.go")},
		{"templates/auth/dto.go.tmpl", d.DTO.File("auth_dto.go")},
		{"templates/auth/repository.go.tmpl", d.Repository.File("auth_repository.go")},
		{"templates/auth/repository_impl.go.tmpl", d.Repository.File("auth_repository_impl.go")},
		{"templates/auth/service.go.tmpl", d.Service.File("auth_service.go")},
		{"templates/auth/service_impl.go.tmpl", d.Service.File("auth_service_impl.go")},
		{"templates/auth/handler.go.tmpl", d.Handler.File("auth_handler.go")},
		{"templates/auth/jwt.go.tmpl", "pkg/jwt/jwt.go"},
		{"templates/auth/middleware.go.tmpl", d.Middleware.File("auth.go")},
	}

	var plan scaffold.Plan
	for _, f := range files {
		file, err := renderer.File(f.template, f.dest, d)
		if err != nil {
			return scaffold.Plan{}, err
		}
		plan.Files = append(plan.Files, file)
	}

	block, err := renderer.Render("templates/auth/env.tmpl", d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	seed, err := renderer.Render("templates/project/env.example.tmpl", struct {
		Name string
		Port int
	}{Name: d.Issuer, Port: d.Port})
	if err != nil {
		return scaffold.Plan{}, err
	}
	plan.Files = append(plan.Files, scaffold.File{
		Path:     ".env.example",
		Content:  block,
		Mode:     scaffold.AppendOnce,
		Sentinel: "JWT_SECRET",
		Seed:     append(seed, block...),
	})

	plan.Dependencies = []string{"github.com/golang-jwt/jwt/v5", "gorm.io/gorm"}
	if d.Local {
		plan.Dependencies = append(plan.Dependencies, "golang.org/x/crypto/bcrypt")
	}
	if d.Google {
		plan.Dependencies = append(plan.Dependencies, "google.golang.org/api/idtoken")
	}
	plan.Install = "go get"

	wiring := []string{
		"jwtService := jwt.NewJWTService(os.Getenv(\"JWT_SECRET\"), os.Getenv(\"JWT_ISSUER\"), 1440)",
		"authRepo := repository.NewAuthRepository(db)",
	}
	if d.Google {
		wiring = append(wiring, "authService := service.NewAuthService(authRepo, jwtService, os.Getenv(\"GOOGLE_CLIENT_ID\"))")
	} else {
		wiring = append(wiring, "authService := service.NewAuthService(authRepo, jwtService)")
	}
	wiring = append(wiring,
		"handler.NewAuthHandler(authService).RegisterRoutes(api, "+d.Middleware.Pkg+".AuthMiddleware(jwtService))",
		"router.Static(\"/uploads\", \"./uploads\")",
	)

	plan.Steps = []scaffold.Step{
		{Title: "Install dependencies:", Lines: []string{"go mod tidy"}},
		{Title: "Set JWT_SECRET in .env:", Lines: []string{"openssl rand -base64 32"}},
	}
	if d.Google {
		plan.Steps = append(plan.Steps, scaffold.Step{
			Title: "Add your Google OAuth client to .env:",
			Lines: []string{"GOOGLE_CLIENT_ID=...", "GOOGLE_CLIENT_SECRET=..."},
		})
	}
	plan.Steps = append(plan.Steps,
		scaffold.Step{Title: "Wire the auth routes in cmd/api/main.go:", Lines: wiring},
		scaffold.Step{Title: "Migrate the users table:", Lines: []string{"db.AutoMigrate(&entity.User{})"}},
	)
	return plan, nil
}

func generateAuth(ctx context.Context, opts AuthOptions) error {
	mode, err := scaffold.Choose("provider", opts.Provider, AuthModes)
	if err != nil {
		return err
	}

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
	data, err := newAuthData(mode, module, layout)
	if err != nil {
		return err
	}
	if s.Config.Gin.Port != 0 {
		data.Port = s.Config.Gin.Port
	}

	plan, err := authCatalog.Generate(mode, data)
	if err != nil {
		return err
	}

	s.Reporter.Title("Adding JWT authentication")
	s.Reporter.Detail("Provider", string(mode))
	s.Reporter.Detail("Module", module)
	s.Reporter.Blank()

	if err := s.Writer.MkdirAll(data.UploadsDir); err != nil {
		return err
	}
	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("JWT authentication added successfully")
	return nil
}
