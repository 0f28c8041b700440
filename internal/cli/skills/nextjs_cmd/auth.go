package nextjs_cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// AuthMode selects the NextAuth.js providers.
type AuthMode string

const (
	AuthLocal  AuthMode = "local"
	AuthGoogle AuthMode = "google"
	AuthBoth   AuthMode = "both"
)

var AuthModes = []AuthMode{AuthLocal, AuthGoogle, AuthBoth}

const (
	AvatarUploadsDir = "public/uploads/avatars"
	ProtectedPrefix  = "/dashboard"

	// authEnvSentinel marks the NextAuth block in .env.example.
	authEnvSentinel = "NEXTAUTH_SECRET"
)

var (
	authDeps      = []string{"next-auth@beta", "@auth/drizzle-adapter", "drizzle-orm", "postgres", "@paralleldrive/cuid2"}
	authDevDeps   = []string{"drizzle-kit"}
	localAuthDeps = []string{"bcryptjs"}
	localDevDeps  = []string{"@types/bcryptjs"}
)

// AuthOptions holds all the options for authentication setup.
type AuthOptions struct {
	shared.Common
	Provider    string
	SkipInstall bool
}

// AuthCmd returns the cobra command that adds NextAuth.js to a project.
func AuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Add NextAuth.js authentication",
		Long: `Add NextAuth.js v5 with a Drizzle adapter on PostgreSQL.

Generates the user schema and database client, src/lib/auth.ts, the auth
API routes, an avatar upload route, middleware protecting /dashboard and
a sign in page. Credentials (local) sign up hashes passwords with bcrypt.

Examples:
  skills nextjs auth
  skills nextjs auth --provider google
  skills nextjs auth --provider local --skip-install
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var provider, _ = cmd.Flags().GetString("provider")
			var skipInstall, _ = cmd.Flags().GetBool("skip-install")

			opts := AuthOptions{
				Common:      shared.CommonFromCmd(cmd),
				Provider:    provider,
				SkipInstall: skipInstall,
			}

			return generateAuth(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("provider", string(AuthBoth), "Authentication provider: "+scaffold.JoinChoices(AuthModes))
	cmd.Flags().Bool("skip-install", false, "Skip npm install of the auth packages")
	scaffold.RegisterChoices(cmd, "provider", AuthModes)

	return cmd
}

type authData struct {
	Mode            AuthMode
	Local           bool
	Google          bool
	UploadsDir      string
	ProtectedPrefix string
}

func newAuthData(mode AuthMode) authData {
	return authData{
		Mode:            mode,
		Local:           mode != AuthGoogle,
		Google:          mode != AuthLocal,
		UploadsDir:      AvatarUploadsDir,
		ProtectedPrefix: ProtectedPrefix,
	}
}

var authCatalog = func() *scaffold.Catalog[AuthMode, authData] {
	c := scaffold.NewCatalog[AuthMode, authData]("auth")
	for _, m := range AuthModes {
		c.Register(m, planAuth)
	}
	return c
}()

func planAuth(d authData) (scaffold.Plan, error) {
	templates := []templateFile{
		{"templates/auth/schema.ts.tmpl", "src/db/schema.ts"},
		{"templates/auth/db.ts.tmpl", "src/db/index.ts"},
		{"templates/auth/drizzle.config.ts.tmpl", "drizzle.config.ts"},
		{"templates/auth/auth.ts.tmpl", "src/lib/auth.ts"},
		{"templates/auth/nextauth_route.ts.tmpl", "src/app/api/auth/[...nextauth]/route.ts"},
	}
	if d.Local {
		templates = append(templates, templateFile{"templates/auth/signup_route.ts.tmpl", "src/app/api/auth/signup/route.ts"})
	}
	templates = append(templates,
		templateFile{"templates/auth/avatar_route.ts.tmpl", "src/app/api/avatar/route.ts"},
		templateFile{"templates/auth/middleware.ts.tmpl", "src/middleware.ts"},
		templateFile{"templates/auth/signin_page.tsx.tmpl", "src/app/auth/signin/page.tsx"},
	)

	files, err := renderFiles(templates, d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	block, err := renderer.Render("templates/auth/env.tmpl", d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	files = append(files, scaffold.File{
		Path:     ".env.example",
		Content:  block,
		Mode:     scaffold.AppendOnce,
		Sentinel: authEnvSentinel,
	})

	deps := append([]string{}, authDeps...)
	devDeps := append([]string{}, authDevDeps...)
	if d.Local {
		deps = append(deps, localAuthDeps...)
		devDeps = append(devDeps, localDevDeps...)
	}

	steps := []scaffold.Step{
		{Title: "Copy .env.example to .env.local and set DATABASE_URL", Lines: []string{"cp .env.example .env.local"}},
		{Title: "Install the development dependencies:", Lines: []string{"npm install -D " + joinArgs(devDeps)}},
		{Title: "Create the database tables:", Lines: []string{"npx drizzle-kit generate", "npx drizzle-kit migrate"}},
		{Title: "Generate NEXTAUTH_SECRET:", Lines: []string{"openssl rand -base64 32"}},
	}
	if d.Google {
		steps = append(steps, scaffold.Step{
			Title: "Add your Google OAuth client to .env.local:",
			Lines: []string{
				"GOOGLE_CLIENT_ID=...",
				"GOOGLE_CLIENT_SECRET=...",
				"Authorized redirect URI: http://localhost:3000/api/auth/callback/google",
			},
		})
	}
	ui := []string{"button"}
	if d.Local {
		ui = append(ui, "card", "input", "label")
	}
	if d.Local && d.Google {
		ui = append(ui, "separator")
	}
	steps = append(steps,
		scaffold.Step{Title: "Generate the sign in components:", Lines: []string{"skills nextjs auth-components --all"}},
		scaffold.Step{Title: "Add the shadcn/ui components the sign in page uses:", Lines: []string{"npx shadcn@latest add " + joinArgs(ui)}},
	)

	usage := "import { auth } from \"@/lib/auth\"\n\n" +
		"const session = await auth()\n" +
		"if (!session?.user) redirect(\"/auth/signin\")"

	return scaffold.Plan{
		Files:        files,
		Dependencies: deps,
		Install:      "npm install",
		Usage:        usage,
		Steps:        steps,
	}, nil
}

func generateAuth(ctx context.Context, opts AuthOptions) error {
	mode, err := scaffold.Choose("provider", opts.Provider, AuthModes)
	if err != nil {
		return err
	}

	s, err := opts.Open(ctx, scaffold.NodeProject)
	if err != nil {
		return err
	}

	plan, err := authCatalog.Generate(mode, newAuthData(mode))
	if err != nil {
		return err
	}

	s.Reporter.Title("Adding NextAuth.js authentication")
	s.Reporter.Detail("Provider", string(mode))
	s.Reporter.Blank()

	if !scaffold.FileExists(filepath.Join(s.Root, "next.config.js")) &&
		!scaffold.FileExists(filepath.Join(s.Root, "next.config.mjs")) &&
		!scaffold.FileExists(filepath.Join(s.Root, "next.config.ts")) {
		s.Reporter.Warn("no next.config found: is %s a Next.js project?", s.Root)
	}

	if err := s.Writer.Apply(plan, s.Reporter); err != nil {
		return err
	}
	if err := s.Writer.MkdirAll(AvatarUploadsDir); err != nil {
		return err
	}

	if !opts.SkipInstall {
		if err := s.Run(s.Root, "npm", append([]string{"install"}, plan.Dependencies...)...); err != nil {
			s.Reporter.Warn("npm install failed: %v", err)
		} else {
			plan.Dependencies = nil
		}
	}

	s.Reporter.Plan(plan)
	s.Reporter.Success("Authentication configured successfully")
	return nil
}
