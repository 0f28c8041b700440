package validate_cmd

// Stack names a skill bundle profile.
type Stack string

const (
	StackGin      Stack = "gin"
	StackMonorepo Stack = "monorepo"
	StackNextjs   Stack = "nextjs"
	StackReact    Stack = "react"
)

var Stacks = []Stack{StackGin, StackMonorepo, StackNextjs, StackReact}

// Profile lists what a skill bundle of one stack must contain.
type Profile struct {
	Stack          Stack
	Title          string   // top level heading of SKILL.md and README.md
	Fields         []string // front matter keys beyond name and description
	Scripts        []string // required files in scripts/
	Files          []string // other required files
	SkillSections  []string
	ReadmeSections []string
	OptionalDirs   bool // references/ and examples/ only warn when missing
}

var profiles = map[Stack]Profile{
	StackGin: {
		Stack: StackGin,
		Title: "# Gin Developer Skill",
		Scripts: []string{
			"init_project.py", "generate_domain.py", "add_auth.py", "add_infrastructure.py",
			"add_middleware.py", "generate_docs.py", "helpers.py",
		},
		Files: []string{
			"references/ddd_architecture.md",
			"references/gin_best_practices.md",
			"references/gorm_examples.md",
			"examples/complete_example.md",
			"examples/quick_start.md",
		},
		SkillSections:  []string{"## Overview", "## Architecture", "## Scripts", "## Usage Guidelines"},
		ReadmeSections: []string{"## Overview", "## Quick Start", "## Project Structure", "## Scripts", "## Architecture"},
	},
	StackMonorepo: {
		Stack:         StackMonorepo,
		Title:         "# Monorepo Developer Skill",
		Fields:        []string{"version", "license"},
		Scripts:       []string{"init_project.py", "generate_package.py", "add_component.py", "validate_skill.py"},
		Files:         []string{"LICENSE"},
		SkillSections: []string{"## Overview", "## Tech Stack", "## Project Structure", "## Scripts", "## Usage Guidelines"},
		OptionalDirs:  true,
	},
	StackNextjs: {
		Stack: StackNextjs,
		Title: "# Next.js Developer Skill",
		Scripts: []string{
			"init_project.py", "generate_component.py", "generate_page.py",
			"add_auth.py", "generate_auth_components.py",
		},
		SkillSections:  []string{"## Overview", "## Tech Stack", "## Scripts", "## Usage Guidelines"},
		ReadmeSections: []string{"## Features", "## Quick Start", "## Scripts", "## Project Structure"},
	},
	StackReact: {
		Stack: StackReact,
		Title: "# React Developer Skill",
		Scripts: []string{
			"init_project.py", "add_component.py", "generate_page.py",
			"generate_component.py", "generate_hook.py",
		},
		SkillSections:  []string{"## Overview", "## Tech Stack", "## Scripts", "## Usage Guidelines"},
		ReadmeSections: []string{"## Features", "## Quick Start", "## Scripts", "## Project Structure"},
	},
}

// genericProfile applies when the stack is neither given nor inferable.
var genericProfile = Profile{OptionalDirs: true}

// ProfileFor returns the profile of stack.
func ProfileFor(stack Stack) Profile {
	if p, ok := profiles[stack]; ok {
		return p
	}
	return genericProfile
}

// inferStack maps a skill name like "gin-developer" to its stack.
func inferStack(name string) (Stack, bool) {
	for _, s := range Stacks {
		if name == string(s) || name == string(s)+"-developer" {
			return s, true
		}
	}
	return "", false
}
