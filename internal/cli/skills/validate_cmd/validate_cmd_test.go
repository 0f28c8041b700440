package validate_cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

func write(t *testing.T, dir, rel, content string, mode os.FileMode) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), mode))
}

func markdown(title string, sections []string) string {
	var b strings.Builder
	b.WriteString(title + "\n\n")
	for _, s := range sections {
		b.WriteString(s + "\n\nText.\n\n")
	}
	return b.String()
}

// newSkill writes a bundle that satisfies the profile of stack.
func newSkill(t *testing.T, stack Stack) string {
	t.Helper()
	dir := t.TempDir()
	p := ProfileFor(stack)

	header := "---\nname: " + string(stack) + "-developer\ndescription: Scaffolds " + string(stack) + " projects.\n"
	for _, f := range p.Fields {
		switch f {
		case "version":
			header += "version: 1.2.0\n"
		default:
			header += f + ": MIT\n"
		}
	}
	header += "---\n"
	write(t, dir, "SKILL.md", header+markdown(p.Title, p.SkillSections), 0o644)
	write(t, dir, "README.md", markdown(p.Title, p.ReadmeSections), 0o644)
	for _, s := range p.Scripts {
		write(t, dir, "scripts/"+s, "#!/usr/bin/env python3\nprint('ok')\n", 0o755)
	}
	for _, f := range p.Files {
		write(t, dir, f, "content\n", 0o644)
	}
	write(t, dir, "references/guide.md", "# Guide\n", 0o644)
	write(t, dir, "examples/basic.md", "# Example\n", 0o644)
	return dir
}

func failures(checks []Check) []string {
	var out []string
	for _, c := range checks {
		for _, f := range c.Findings {
			if f.Level == Fail {
				out = append(out, f.Message)
			}
		}
	}
	return out
}

func warnings(checks []Check) []string {
	var out []string
	for _, c := range checks {
		for _, f := range c.Findings {
			if f.Level == Warn {
				out = append(out, f.Message)
			}
		}
	}
	return out
}

func TestValidate_CompleteBundles(t *testing.T) {
	for _, stack := range Stacks {
		t.Run(string(stack), func(t *testing.T) {
			checks := Validate(newSkill(t, stack), stack)
			assert.Empty(t, failures(checks))
			assert.Empty(t, warnings(checks))
			for _, c := range checks {
				assert.True(t, c.Passed(), c.Name)
			}
		})
	}
}

func TestValidateSkill_InfersStack(t *testing.T) {
	dir := newSkill(t, StackGin)
	var out bytes.Buffer

	err := validateSkill(context.Background(), ValidateOptions{Common: shared.Common{Out: &out}, Dir: dir})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "(gin)")
	assert.Contains(t, out.String(), "Total: 4/4 checks passed, 0 warning(s)")

	require.NoError(t, os.Remove(filepath.Join(dir, "references", "gorm_examples.md")))
	out.Reset()
	err = validateSkill(context.Background(), ValidateOptions{Common: shared.Common{Out: &out}, Dir: dir})
	require.Error(t, err)
	assert.Equal(t, scaffold.KindInvalid, scaffold.KindOf(err))
	assert.Contains(t, out.String(), "references/gorm_examples.md not found")
	assert.Contains(t, out.String(), "Total: 3/4 checks passed")
}

func TestValidateSkill_InfersStackFromDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gin-developer")
	write(t, dir, "SKILL.md", "no front matter\n", 0o644)

	stack, err := resolveStack("", loadSkill(dir))
	require.NoError(t, err)
	assert.Equal(t, StackGin, stack)

	var out bytes.Buffer
	err = validateSkill(context.Background(), ValidateOptions{Common: shared.Common{Out: &out}, Dir: dir + string(filepath.Separator)})
	assert.Equal(t, scaffold.KindInvalid, scaffold.KindOf(err))
	assert.Contains(t, out.String(), "(gin)")
	assert.Contains(t, out.String(), "references/gorm_examples.md not found")

	stack, err = resolveStack("", loadSkill(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, stack)
}

func TestValidateSkill_Errors(t *testing.T) {
	err := validateSkill(context.Background(), ValidateOptions{Common: shared.Common{Out: &bytes.Buffer{}}, Dir: filepath.Join(t.TempDir(), "missing")})
	assert.Equal(t, scaffold.KindPrecondition, scaffold.KindOf(err))

	err = validateSkill(context.Background(), ValidateOptions{Common: shared.Common{Out: &bytes.Buffer{}}, Dir: t.TempDir(), Stack: "vue"})
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
}

func TestValidate_WrongStackSections(t *testing.T) {
	dir := newSkill(t, StackReact)
	got := failures(Validate(dir, StackNextjs))
	assert.Contains(t, got, "SKILL.md section missing: # Next.js Developer Skill")
	assert.Contains(t, got, "scripts/add_auth.py not found")
}

func TestValidate_EmptyDirectory(t *testing.T) {
	checks := Validate(t.TempDir(), "")
	got := failures(checks)
	assert.Contains(t, got, "SKILL.md not found")
	assert.Contains(t, got, "README.md not found")
	assert.Contains(t, got, "scripts/ not found")
	assert.ElementsMatch(t, []string{"references/ not found (optional)", "examples/ not found (optional)"}, warnings(checks))
	for _, c := range checks {
		assert.False(t, c.Passed(), c.Name)
	}
}

func TestValidate_OptionalDirsWarnOnly(t *testing.T) {
	dir := newSkill(t, StackMonorepo)
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "references")))
	require.NoError(t, os.Remove(filepath.Join(dir, "examples", "basic.md")))

	checks := Validate(dir, StackMonorepo)
	assert.Empty(t, failures(checks))
	assert.ElementsMatch(t, []string{"references/ not found (optional)", "examples/ has no markdown files"}, warnings(checks))

	// react requires both directories
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "examples")))
	assert.Contains(t, failures(Validate(dir, StackReact)), "examples/ not found")
}

func TestValidate_FrontMatter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing", "# React Developer Skill\n", "YAML front matter not found"},
		{"unclosed", "---\nname: x\n", "not closed"},
		{"bad yaml", "---\nname: [x\n---\n", ""},
		{"no name", "---\ndescription: d\n---\n", `"name" field missing`},
		{"no description", "---\nname: react-developer\n---\n", `"description" field missing`},
		{"bad name", "---\nname: React Dev\ndescription: d\n---\n", `"name" must be lowercase`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newSkill(t, StackReact)
			write(t, dir, "SKILL.md", tt.content, 0o644)

			var skillMD Check
			for _, c := range Validate(dir, StackReact) {
				if c.Name == "SKILL.md Format" {
					skillMD = c
				}
			}
			require.False(t, skillMD.Passed())
			found := false
			for _, f := range skillMD.Findings {
				if f.Level == Fail && strings.Contains(f.Message, tt.want) {
					found = true
				}
			}
			assert.True(t, found, "no failure containing %q in %+v", tt.want, skillMD.Findings)
		})
	}
}

func TestValidate_MonorepoFields(t *testing.T) {
	dir := newSkill(t, StackMonorepo)
	p := ProfileFor(StackMonorepo)
	write(t, dir, "SKILL.md", "---\nname: monorepo-developer\ndescription: d\nversion: next\n---\n"+markdown(p.Title, p.SkillSections), 0o644)

	checks := Validate(dir, StackMonorepo)
	assert.Equal(t, []string{`"license" field missing`}, failures(checks))
	assert.Equal(t, []string{`version "next" is not a semantic version`}, warnings(checks))
}

func TestValidate_Scripts(t *testing.T) {
	dir := newSkill(t, StackReact)
	write(t, dir, "scripts/extra.sh", "echo hi\n", 0o755)
	write(t, dir, "scripts/tool.py", "#!/usr/bin/env python3\n", 0o644)
	write(t, dir, "scripts/notes.txt", "not a script\n", 0o644)

	checks := Validate(dir, StackReact)
	assert.Equal(t, []string{"scripts/extra.sh has no shebang"}, failures(checks))
	assert.Equal(t, []string{"scripts/tool.py is not executable (run: chmod +x scripts/tool.py)"}, warnings(checks))
}

func TestParseFrontMatter(t *testing.T) {
	fm, body, err := ParseFrontMatter("---\nname: gin-developer\ndescription: Gin APIs\nallowed-tools: Bash\n---\n# Title\n\n## Overview\n")
	require.NoError(t, err)
	assert.Equal(t, "gin-developer", fm.Name)
	assert.Equal(t, "Gin APIs", fm.Description)
	assert.Equal(t, "Bash", fm.Raw["allowed-tools"])
	assert.Equal(t, "# Title\n\n## Overview\n", body)
}

func TestHeadings(t *testing.T) {
	h := Headings("# Title\n  ## Overview  \ntext\n```bash\n# not a heading\n```\n## Scripts\n")
	assert.Equal(t, map[string]bool{"# Title": true, "## Overview": true, "## Scripts": true}, h)
}

func TestInferStack(t *testing.T) {
	for _, tt := range []struct {
		name string
		want Stack
		ok   bool
	}{
		{"gin-developer", StackGin, true},
		{"react", StackReact, true},
		{"nextjs-developer", StackNextjs, true},
		{"vue-developer", "", false},
		{"", "", false},
	} {
		got, ok := inferStack(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("inferStack(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
