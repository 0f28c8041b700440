package monorepo_cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// AuthMode selects the sign-in methods of the generated auth routes.
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
	Type    string
	Package string
}

// AuthCmd returns the cobra command that adds JWT authentication to the
// backend package.
func AuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Add JWT authentication to the backend package",
		Long: `Generate src/middleware/auth.ts and src/routes/auth.ts in the backend
package and append the auth settings to the root .env.example once.

Types:
  local   email and password, hashed with Bun.password
  google  Google ID token verification
  both    local and google (default)

Examples:
  skills monorepo auth
  skills monorepo auth --type google --package api
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind, _ = cmd.Flags().GetString("type")
			var pkg, _ = cmd.Flags().GetString("package")

			opts := AuthOptions{
				Common:  shared.CommonFromCmd(cmd),
				Type:    kind,
				Package: pkg,
			}

			return generateAuth(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	addPackageFlag(cmd, "backend")
	cmd.Flags().String("type", string(AuthBoth), "Authentication type: "+scaffold.JoinChoices(AuthModes))
	scaffold.RegisterChoices(cmd, "type", AuthModes)

	return cmd
}

type authData struct {
	Mode   AuthMode
	Local  bool
	Google bool
	Dir    string
}

func newAuthData(mode AuthMode, pkgDir string) authData {
	return authData{
		Mode:   mode,
		Local:  mode != AuthGoogle,
		Google: mode != AuthLocal,
		Dir:    pkgDir,
	}
}

// envBlock is one append-once section of the root .env.example, keyed on
// its first variable so switching modes never duplicates a key.
type envBlock struct {
	template string
	sentinel string
}

var (
	jwtEnv    = envBlock{"templates/auth/env.tmpl", "JWT_SECRET="}
	googleEnv = envBlock{"templates/auth/env_google.tmpl", "GOOGLE_CLIENT_ID="}
)

func (d authData) envBlocks() []envBlock {
	if d.Google {
		return []envBlock{jwtEnv, googleEnv}
	}
	return []envBlock{jwtEnv}
}

var authCatalog = func() *scaffold.Catalog[AuthMode, authData] {
	c := scaffold.NewCatalog[AuthMode, authData]("auth")
	for _, m := range AuthModes {
		c.Register(m, planAuth)
	}
	return c
}()

func planAuth(d authData) (scaffold.Plan, error) {
	files, err := renderFiles([]templateFile{
		{"templates/auth/middleware.ts.tmpl", d.Dir + "/src/middleware/auth.ts"},
		{"templates/auth/routes.ts.tmpl", d.Dir + "/src/routes/auth.ts"},
	}, d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	for _, env := range d.envBlocks() {
		block, err := renderer.Render(env.template, d)
		if err != nil {
			return scaffold.Plan{}, err
		}
		files = append(files, scaffold.File{
			Path:     ".env.example",
			Content:  block,
			Mode:     scaffold.AppendOnce,
			Sentinel: env.sentinel,
		})
	}

	steps := []scaffold.Step{
		{Title: "Mount the auth routes in src/routes/index.ts:", Lines: []string{
			"import authRoutes from './auth'",
			"router.route('/auth', authRoutes)",
		}},
		{Title: "Set JWT_SECRET in .env:", Lines: []string{"openssl rand -base64 32"}},
	}
	if d.Google {
		steps = append(steps, scaffold.Step{
			Title: "Add your Google OAuth client to .env:",
			Lines: []string{"GOOGLE_CLIENT_ID=...", "GOOGLE_CLIENT_SECRET=..."},
		})
	}

	usage := "import { authMiddleware, getUser } from '../middleware/auth'\n\n" +
		"router.get('/profile', authMiddleware, (c) => c.json(getUser(c)))"

	return scaffold.Plan{Files: files, Usage: usage, Steps: steps}, nil
}

func generateAuth(ctx context.Context, opts AuthOptions) error {
	mode, err := scaffold.Choose("type", opts.Type, AuthModes)
	if err != nil {
		return err
	}

	s, err := opts.Open(ctx)
	if err != nil {
		return err
	}
	pkgDir, err := locate(s, opts.Package, scaffold.BackendPackage)
	if err != nil {
		return err
	}

	plan, err := authCatalog.Generate(mode, newAuthData(mode, pkgDir))
	if err != nil {
		return err
	}

	s.Reporter.Title("Adding JWT authentication")
	s.Reporter.Detail("Type", string(mode))
	s.Reporter.Detail("Package", pkgDir)
	s.Reporter.Blank()

	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("JWT authentication added successfully")
	return nil
}
