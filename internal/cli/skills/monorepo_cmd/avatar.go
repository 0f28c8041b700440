package monorepo_cmd

import (
	"context"
	"path"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// AvatarTarget selects which side of the avatar upload is generated.
type AvatarTarget string

const (
	AvatarBackend  AvatarTarget = "backend"
	AvatarFrontend AvatarTarget = "frontend"
)

var AvatarTargets = []AvatarTarget{AvatarBackend, AvatarFrontend}

// AvatarUploadDir is where uploaded avatars are stored, relative to the
// backend package.
const AvatarUploadDir = "uploads/avatars"

// AvatarOptions holds all the options for avatar generation.
type AvatarOptions struct {
	shared.Common
	Type    string
	Package string
	MaxSize int
}

// AvatarCmd returns the cobra command that adds avatar upload support.
func AvatarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avatar",
		Short: "Add avatar upload to the backend or frontend package",
		Long: `Add avatar upload support.

Types:
  backend   upload middleware, authenticated routes and a drizzle users
            schema with an avatar_url column
  frontend  AvatarUpload component with preview and client side checks

The backend routes use the auth middleware; run "skills monorepo auth" first.

Examples:
  skills monorepo avatar --type backend
  skills monorepo avatar --type frontend --max-size 2
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind, _ = cmd.Flags().GetString("type")
			var pkg, _ = cmd.Flags().GetString("package")
			var maxSize, _ = cmd.Flags().GetInt("max-size")

			opts := AvatarOptions{
				Common:  shared.CommonFromCmd(cmd),
				Type:    kind,
				Package: pkg,
				MaxSize: maxSize,
			}

			return generateAvatar(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	addPackageFlag(cmd, "backend or frontend")
	cmd.Flags().String("type", string(AvatarBackend), "Avatar target: "+scaffold.JoinChoices(AvatarTargets))
	cmd.Flags().Int("max-size", 5, "Maximum upload size in MB")
	scaffold.RegisterChoices(cmd, "type", AvatarTargets)

	return cmd
}

type avatarData struct {
	Dir       string
	UploadDir string
	MaxSizeMB int
}

var avatarCatalog = scaffold.NewCatalog[AvatarTarget, avatarData]("avatar").
	Register(AvatarBackend, planAvatarBackend).
	Register(AvatarFrontend, planAvatarFrontend)

func planAvatarBackend(d avatarData) (scaffold.Plan, error) {
	files, err := renderFiles([]templateFile{
		{"templates/avatar/middleware.ts.tmpl", path.Join(d.Dir, "src/middleware/avatar.ts")},
		{"templates/avatar/routes.ts.tmpl", path.Join(d.Dir, "src/routes/avatar.ts")},
		{"templates/avatar/schema.ts.tmpl", path.Join(d.Dir, "src/db/schema.ts")},
	}, d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	return scaffold.Plan{
		Files:        files,
		Dependencies: []string{"drizzle-orm"},
		Install:      "bun add --cwd " + d.Dir,
		Steps: []scaffold.Step{
			{Title: "Mount the avatar routes in src/routes/index.ts:", Lines: []string{
				"import avatarRoutes from './avatar'",
				"router.route('/', avatarRoutes)",
			}},
			{Title: "Generate the users migration:", Lines: []string{"bunx drizzle-kit generate"}},
		},
	}, nil
}

func planAvatarFrontend(d avatarData) (scaffold.Plan, error) {
	files, err := renderFiles([]templateFile{
		{"templates/avatar/AvatarUpload.tsx.tmpl", path.Join(d.Dir, "src/components/AvatarUpload.tsx")},
	}, d)
	if err != nil {
		return scaffold.Plan{}, err
	}
	return scaffold.Plan{
		Files: files,
		Usage: "import { AvatarUpload } from '@/components/AvatarUpload'\n\n" +
			"<AvatarUpload token={token} onSuccess={(url) => setAvatar(url)} />",
	}, nil
}

func generateAvatar(ctx context.Context, opts AvatarOptions) error {
	target, err := scaffold.Choose("type", opts.Type, AvatarTargets)
	if err != nil {
		return err
	}
	if opts.MaxSize < 1 {
		return scaffold.UsageError("invalid --max-size %d: must be at least 1", opts.MaxSize)
	}

	s, err := opts.Open(ctx)
	if err != nil {
		return err
	}
	marker := scaffold.BackendPackage
	if target == AvatarFrontend {
		marker = scaffold.FrontendPackage
	}
	pkgDir, err := locate(s, opts.Package, marker)
	if err != nil {
		return err
	}

	data := avatarData{Dir: pkgDir, UploadDir: AvatarUploadDir, MaxSizeMB: opts.MaxSize}
	plan, err := avatarCatalog.Generate(target, data)
	if err != nil {
		return err
	}

	s.Reporter.Title("Adding avatar upload")
	s.Reporter.Detail("Type", string(target))
	s.Reporter.Detail("Package", pkgDir)
	s.Reporter.Detail("Max size", strconv.Itoa(opts.MaxSize)+"MB")
	s.Reporter.Blank()

	if target == AvatarBackend {
		auth := filepath.Join(s.Root, filepath.FromSlash(pkgDir), "src", "middleware", "auth.ts")
		if !scaffold.FileExists(auth) {
			s.Reporter.Warn("%s/src/middleware/auth.ts not found: run skills monorepo auth first", pkgDir)
		}
		if err := s.Writer.MkdirAll(path.Join(pkgDir, AvatarUploadDir)); err != nil {
			return err
		}
	}
	if err := s.Execute(plan); err != nil {
		return err
	}
	s.Reporter.Success("Avatar upload added successfully")
	return nil
}
