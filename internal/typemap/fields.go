package typemap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// reserved are json names of columns and methods every generated entity
// already has.
var reserved = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"table_name": true,
}

// Field is one parsed `name:type` token.
type Field struct {
	Name     string // as declared
	GoName   string // exported Go field name
	JSONName string // snake_case wire name
	Type     Type
}

// Tag returns the struct tag body, e.g. `json:"age" gorm:"type:bigint"`.
func (f Field) Tag() string {
	return fmt.Sprintf(`json:"%s" gorm:"%s"`, f.JSONName, f.Type.Gorm)
}

// Declaration returns the struct field line without indentation.
func (f Field) Declaration() string {
	return fmt.Sprintf("%s %s `%s`", f.GoName, f.Type.Go, f.Tag())
}

// ParseField parses a single `name:type` token, splitting on the first colon.
func ParseField(token string) (Field, error) {
	name, declared, ok := strings.Cut(token, ":")
	if !ok {
		return Field{}, scaffold.UsageError("invalid field %q: expected name:type", strings.TrimSpace(token))
	}
	name = strings.TrimSpace(name)
	declared = strings.TrimSpace(declared)
	if name == "" || declared == "" {
		return Field{}, scaffold.UsageError("invalid field %q: name and type must not be empty", strings.TrimSpace(token))
	}

	goName, ok := scaffold.ExportedName(name)
	if !ok {
		return Field{}, scaffold.UsageError("invalid field name %q: use ASCII letters, digits, '-' or '_', starting with a letter", name)
	}

	return Field{
		Name:     name,
		GoName:   goName,
		JSONName: scaffold.Snake(name),
		Type:     Resolve(declared),
	}, nil
}

// Parse parses a comma-separated field list. Empty tokens are ignored.
func Parse(list string) ([]Field, error) {
	var fields []Field
	seen := make(map[string]bool)

	for _, token := range strings.Split(list, ",") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		f, err := ParseField(token)
		if err != nil {
			return nil, err
		}
		if reserved[f.JSONName] {
			return nil, scaffold.UsageError("field %q collides with a generated column", f.Name)
		}
		if seen[f.JSONName] {
			return nil, scaffold.UsageError("duplicate field %q", f.Name)
		}
		seen[f.JSONName] = true
		fields = append(fields, f)
	}

	return fields, nil
}

// Imports returns the sorted, de-duplicated imports the fields need plus extra.
func Imports(fields []Field, extra ...string) []string {
	set := make(map[string]bool)
	for _, e := range extra {
		set[e] = true
	}
	for _, f := range fields {
		for _, imp := range f.Type.Imports {
			set[imp] = true
		}
	}

	out := make([]string, 0, len(set))
	for imp := range set {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}
