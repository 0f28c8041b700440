package validate_cmd

import (
	"bufio"
	"strings"

	"github.com/pixie-sh/errors-go"
	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// FrontMatter is the YAML header of SKILL.md.
type FrontMatter struct {
	Name        string `yaml:"name" validate:"required,max=64,kebab"`
	Description string `yaml:"description" validate:"required,max=1024"`
	Version     string `yaml:"version"`
	License     string `yaml:"license"`

	// Raw keeps every key, including the ones above.
	Raw map[string]any `yaml:"-"`
}

// ParseFrontMatter splits SKILL.md into its YAML header and the markdown
// body. The header must open on the first line and close with a line of
// three dashes.
func ParseFrontMatter(content string) (FrontMatter, string, error) {
	var fm FrontMatter

	scanner := bufio.NewScanner(strings.NewReader(content))
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != frontMatterDelimiter {
		return fm, content, errors.New("YAML front matter not found: SKILL.md must start with %q", frontMatterDelimiter)
	}

	var header, body strings.Builder
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if !closed {
			if strings.TrimSpace(line) == frontMatterDelimiter {
				closed = true
				continue
			}
			header.WriteString(line)
			header.WriteByte('\n')
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return fm, content, errors.Wrap(err, "failed to read SKILL.md")
	}
	if !closed {
		return fm, content, errors.New("YAML front matter is not closed with %q", frontMatterDelimiter)
	}

	if err := yaml.Unmarshal([]byte(header.String()), &fm); err != nil {
		return fm, body.String(), errors.Wrap(err, "invalid YAML front matter")
	}
	if err := yaml.Unmarshal([]byte(header.String()), &fm.Raw); err != nil {
		return fm, body.String(), errors.Wrap(err, "invalid YAML front matter")
	}
	return fm, body.String(), nil
}

// Headings returns the markdown headings of body, trimmed. Fenced code
// blocks are skipped.
func Headings(body string) map[string]bool {
	out := make(map[string]bool)
	fenced := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			fenced = !fenced
			continue
		}
		if !fenced && strings.HasPrefix(trimmed, "#") {
			out[trimmed] = true
		}
	}
	return out
}
