package validate_cmd

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
)

// Level grades one finding.
type Level int

const (
	Pass Level = iota
	Warn
	Fail
)

// Finding is one checked item.
type Finding struct {
	Level   Level
	Message string
}

// Check is a named group of findings.
type Check struct {
	Name     string
	Findings []Finding
}

func (c *Check) pass(format string, args ...any) {
	c.Findings = append(c.Findings, Finding{Pass, fmt.Sprintf(format, args...)})
}

func (c *Check) warn(format string, args ...any) {
	c.Findings = append(c.Findings, Finding{Warn, fmt.Sprintf(format, args...)})
}

func (c *Check) fail(format string, args ...any) {
	c.Findings = append(c.Findings, Finding{Fail, fmt.Sprintf(format, args...)})
}

func (c *Check) count(level Level) int {
	n := 0
	for _, f := range c.Findings {
		if f.Level == level {
			n++
		}
	}
	return n
}

// Passed reports whether the group has no failures. Warnings do not fail.
func (c *Check) Passed() bool {
	return c.count(Fail) == 0
}

// skill is the loaded bundle shared by the checks.
type skill struct {
	dir     string
	profile Profile

	skillMD  string // empty when missing
	readme   string
	fm       FrontMatter
	body     string
	fmErr    error
	hasSkill bool
}

func exists(path string, dir bool) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir() == dir
}

func checkStructure(sk *skill) Check {
	c := Check{Name: "Skill Structure"}

	for _, name := range []string{"SKILL.md", "README.md"} {
		if exists(filepath.Join(sk.dir, name), false) {
			c.pass("%s", name)
		} else {
			c.fail("%s not found", name)
		}
	}

	for _, dir := range []string{"scripts", "references", "examples"} {
		switch {
		case exists(filepath.Join(sk.dir, dir), true):
			c.pass("%s/", dir)
			if dir != "scripts" && countMarkdown(filepath.Join(sk.dir, dir)) == 0 {
				c.warn("%s/ has no markdown files", dir)
			}
		case dir == "scripts" || !sk.profile.OptionalDirs:
			c.fail("%s/ not found", dir)
		default:
			c.warn("%s/ not found (optional)", dir)
		}
	}

	for _, f := range sk.profile.Files {
		if exists(filepath.Join(sk.dir, filepath.FromSlash(f)), false) {
			c.pass("%s", f)
		} else {
			c.fail("%s not found", f)
		}
	}
	return c
}

func countMarkdown(dir string) int {
	matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
	return len(matches)
}

func checkSkillMD(sk *skill) Check {
	c := Check{Name: "SKILL.md Format"}
	if !sk.hasSkill {
		c.fail("SKILL.md not found")
		return c
	}
	if sk.fmErr != nil {
		c.fail("%v", sk.fmErr)
		return c
	}
	c.pass("YAML front matter found")

	if err := shared.ValidateStruct(sk.fm); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			c.fail("%v", err)
		}
		for _, fe := range verrs {
			c.fail("%s", fieldMessage(fe))
		}
	}
	if sk.fm.Name != "" && sk.fm.Description != "" {
		c.pass("name %q and description present", sk.fm.Name)
	}

	for _, key := range sk.profile.Fields {
		if v, ok := sk.fm.Raw[key]; !ok || fmt.Sprint(v) == "" {
			c.fail("%q field missing", key)
		} else {
			c.pass("%q field found", key)
		}
	}
	if sk.fm.Version != "" && !semver.IsValid("v"+strings.TrimPrefix(sk.fm.Version, "v")) {
		c.warn("version %q is not a semantic version", sk.fm.Version)
	}

	checkSections(&c, "SKILL.md", sk.body, sk.profile.Title, sk.profile.SkillSections)
	return c
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q field missing", field)
	case "max":
		return fmt.Sprintf("%q is longer than %s characters", field, fe.Param())
	case "kebab":
		return fmt.Sprintf("%q must be lowercase letters, digits and hyphens, got %q", field, fe.Value())
	default:
		return fmt.Sprintf("%q failed %s validation", field, fe.Tag())
	}
}

func checkSections(c *Check, file, body, title string, sections []string) {
	headings := Headings(body)
	all := sections
	if title != "" {
		all = append([]string{title}, sections...)
	}
	for _, s := range all {
		if headings[s] {
			c.pass("%s section: %s", file, s)
		} else {
			c.fail("%s section missing: %s", file, s)
		}
	}
}

func checkScripts(sk *skill) Check {
	c := Check{Name: "Scripts"}
	scripts := filepath.Join(sk.dir, "scripts")
	if !exists(scripts, true) {
		c.fail("scripts/ not found")
		return c
	}

	for _, name := range sk.profile.Scripts {
		if !exists(filepath.Join(scripts, name), false) {
			c.fail("scripts/%s not found", name)
		}
	}

	entries, err := os.ReadDir(scripts)
	if err != nil {
		c.fail("cannot read scripts/: %v", err)
		return c
	}
	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.Type().IsRegular() && (ext == ".py" || ext == ".sh") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(scripts, name)
		info, err := os.Stat(path)
		if err != nil {
			c.fail("scripts/%s: %v", name, err)
			continue
		}
		if info.Mode().Perm()&0o111 == 0 {
			c.warn("scripts/%s is not executable (run: chmod +x scripts/%s)", name, name)
		}
		if shebang(path) {
			c.pass("scripts/%s", name)
		} else {
			c.fail("scripts/%s has no shebang", name)
		}
	}
	return c
}

func shebang(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	r := bufio.NewReader(f)
	line, _ := r.ReadString('\n')
	return strings.HasPrefix(line, "#!")
}

func checkDocumentation(sk *skill) Check {
	c := Check{Name: "Documentation"}
	if sk.readme == "" {
		if exists(filepath.Join(sk.dir, "README.md"), false) {
			c.fail("README.md is empty")
		} else {
			c.fail("README.md not found")
		}
		return c
	}
	c.pass("README.md")
	if len(sk.profile.ReadmeSections) > 0 {
		checkSections(&c, "README.md", sk.readme, sk.profile.Title, sk.profile.ReadmeSections)
	}
	return c
}
