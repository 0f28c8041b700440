package nextjs_cmd

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// AuthComponent is one generated authentication UI component.
type AuthComponent string

const (
	AuthSignIn     AuthComponent = "signin-form"
	AuthSignUp     AuthComponent = "signup-form"
	AuthGoogleBtn  AuthComponent = "google-signin-button"
	AuthUserButton AuthComponent = "user-button"
)

var AuthComponents = []AuthComponent{AuthSignIn, AuthSignUp, AuthGoogleBtn, AuthUserButton}

const AuthComponentsDir = "src/components/auth"

// authUI are the shadcn/ui components each template imports.
var authUI = map[AuthComponent][]string{
	AuthSignIn:     {"button", "input", "label", "card"},
	AuthSignUp:     {"button", "input", "label", "card"},
	AuthGoogleBtn:  {"button"},
	AuthUserButton: {"button", "dropdown-menu", "avatar"},
}

// AuthComponentsOptions holds all the options for auth component generation.
type AuthComponentsOptions struct {
	shared.Common
	All        bool
	SignIn     bool
	SignUp     bool
	Google     bool
	UserButton bool
	RedirectTo string
}

func (o AuthComponentsOptions) selected() []AuthComponent {
	if o.All {
		return AuthComponents
	}
	flags := []bool{o.SignIn, o.SignUp, o.Google, o.UserButton}
	var out []AuthComponent
	for i, c := range AuthComponents {
		if flags[i] {
			out = append(out, c)
		}
	}
	return out
}

// AuthComponentsCmd returns the cobra command that generates auth UI components.
func AuthComponentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth-components",
		Short: "Generate sign in, sign up and user menu components",
		Long: `Generate NextAuth.js client components in src/components/auth.

Examples:
  skills nextjs auth-components --all
  skills nextjs auth-components --signin --google --redirect /app
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var all, _ = cmd.Flags().GetBool("all")
			var signIn, _ = cmd.Flags().GetBool("signin")
			var signUp, _ = cmd.Flags().GetBool("signup")
			var google, _ = cmd.Flags().GetBool("google")
			var userButton, _ = cmd.Flags().GetBool("user-button")
			var redirect, _ = cmd.Flags().GetString("redirect")

			opts := AuthComponentsOptions{
				Common:     shared.CommonFromCmd(cmd),
				All:        all,
				SignIn:     signIn,
				SignUp:     signUp,
				Google:     google,
				UserButton: userButton,
				RedirectTo: redirect,
			}

			return generateAuthComponents(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().Bool("all", false, "Generate every component")
	cmd.Flags().Bool("signin", false, "Generate the credentials sign in form")
	cmd.Flags().Bool("signup", false, "Generate the sign up form")
	cmd.Flags().Bool("google", false, "Generate the Google sign in button")
	cmd.Flags().Bool("user-button", false, "Generate the user menu button")
	cmd.Flags().String("redirect", ProtectedPrefix, "Where to go after signing in")

	return cmd
}

type authComponentData struct {
	RedirectTo string
}

func planAuthComponents(components []AuthComponent, d authComponentData) (scaffold.Plan, error) {
	var files []templateFile
	ui := map[string]bool{}
	for _, c := range components {
		files = append(files, templateFile{
			"templates/components/" + string(c) + ".tsx.tmpl",
			AuthComponentsDir + "/" + string(c) + ".tsx",
		})
		for _, name := range authUI[c] {
			ui[name] = true
		}
	}
	rendered, err := renderFiles(files, d)
	if err != nil {
		return scaffold.Plan{}, err
	}

	names := make([]string, 0, len(ui))
	for name := range ui {
		names = append(names, name)
	}
	sort.Strings(names)

	return scaffold.Plan{
		Files: rendered,
		Steps: []scaffold.Step{
			{Title: "Add the shadcn/ui components they use:", Lines: []string{"npx shadcn@latest add " + joinArgs(names)}},
			{Title: "Wrap the root layout in a SessionProvider from next-auth/react", Lines: []string{
				"import { SessionProvider } from \"next-auth/react\"",
				"<SessionProvider>{children}</SessionProvider>",
			}},
		},
	}, nil
}

func generateAuthComponents(ctx context.Context, opts AuthComponentsOptions) error {
	components := opts.selected()
	if len(components) == 0 {
		return scaffold.UsageError("no components selected: use --all or one of --signin, --signup, --google, --user-button")
	}
	if !strings.HasPrefix(opts.RedirectTo, "/") {
		return scaffold.UsageError("invalid --redirect %q: must be an absolute path", opts.RedirectTo)
	}

	s, err := opts.Open(ctx, scaffold.NodeProject)
	if err != nil {
		return err
	}

	plan, err := planAuthComponents(components, authComponentData{RedirectTo: opts.RedirectTo})
	if err != nil {
		return err
	}

	s.Reporter.Title("Generating authentication components")
	s.Reporter.Detail("Location", AuthComponentsDir)
	s.Reporter.Blank()

	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("Authentication components generated successfully")
	return nil
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
