package openapi

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/pixie-sh/errors-go"
)

// SchemaResolver resolves Go struct types found in source to JSON schemas.
type SchemaResolver struct {
	structs map[string]*ast.StructType
	schemas map[string]*Schema
}

// NewSchemaResolver returns an empty resolver.
func NewSchemaResolver() *SchemaResolver {
	return &SchemaResolver{
		structs: make(map[string]*ast.StructType),
		schemas: make(map[string]*Schema),
	}
}

// LoadDir collects the struct declarations of every Go file in dir. A
// missing dir is not an error.
func (r *SchemaResolver) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read directory %s", dir)
	}

	fset := token.NewFileSet()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}
		node, err := parser.ParseFile(fset, filepath.Join(dir, entry.Name()), nil, 0)
		if err != nil {
			continue
		}
		ast.Inspect(node, func(n ast.Node) bool {
			if ts, ok := n.(*ast.TypeSpec); ok {
				if st, ok := ts.Type.(*ast.StructType); ok {
					r.structs[ts.Name.Name] = st
				}
			}
			return true
		})
	}
	return nil
}

// Resolve returns a $ref for a known struct type, registering its schema, or
// nil when the type is unknown. Package qualifiers are ignored.
func (r *SchemaResolver) Resolve(typeName string) *Schema {
	name := unqualified(typeName)
	if _, done := r.schemas[name]; done {
		return Ref(name)
	}
	st, ok := r.structs[name]
	if !ok {
		return nil
	}

	// Registered before walking the fields so self references terminate.
	schema := &Schema{Type: "object", Properties: make(map[string]*Schema)}
	r.schemas[name] = schema

	for _, field := range st.Fields.List {
		jsonName, omitempty, skip := jsonTag(field)
		if skip {
			continue
		}
		if len(field.Names) == 0 {
			// Embedded struct: inline its properties.
			embedded := expressionString(field.Type)
			if r.Resolve(embedded) != nil {
				inner := r.schemas[unqualified(embedded)]
				for k, v := range inner.Properties {
					schema.Properties[k] = v
				}
				schema.Required = append(schema.Required, inner.Required...)
			}
			continue
		}
		prop := r.fieldSchema(field.Type)
		for _, n := range field.Names {
			if !n.IsExported() {
				continue
			}
			key := jsonName
			if key == "" {
				key = n.Name
			}
			schema.Properties[key] = prop
			if !omitempty && !prop.Nullable {
				schema.Required = append(schema.Required, key)
			}
		}
	}

	return Ref(name)
}

// Schemas returns every schema registered by Resolve.
func (r *SchemaResolver) Schemas() map[string]*Schema {
	return r.schemas
}

func (r *SchemaResolver) fieldSchema(expr ast.Expr) *Schema {
	switch x := expr.(type) {
	case *ast.StarExpr:
		s := r.fieldSchema(x.X)
		if s.Ref != "" {
			return s
		}
		s.Nullable = true
		return s
	case *ast.ArrayType:
		if ident, ok := x.Elt.(*ast.Ident); ok && ident.Name == "byte" {
			return &Schema{Type: "string", Format: "byte"}
		}
		return &Schema{Type: "array", Items: r.fieldSchema(x.Elt)}
	case *ast.MapType:
		return &Schema{Type: "object", AdditionalProperties: r.fieldSchema(x.Value)}
	case *ast.InterfaceType:
		return &Schema{}
	}

	name := expressionString(expr)
	if s := builtinSchema(name); s != nil {
		return s
	}
	if ref := r.Resolve(name); ref != nil {
		return ref
	}
	return &Schema{Type: "object"}
}

// builtinSchema resolves built-in Go types and common library types
func builtinSchema(typeName string) *Schema {
	switch typeName {
	case "string":
		return &Schema{Type: "string"}
	case "int", "int8", "int16", "int32", "uint", "uint8", "uint16", "uint32":
		return &Schema{Type: "integer", Format: "int32"}
	case "int64", "uint64":
		return &Schema{Type: "integer", Format: "int64"}
	case "float32":
		return &Schema{Type: "number", Format: "float"}
	case "float64":
		return &Schema{Type: "number", Format: "double"}
	case "bool":
		return &Schema{Type: "boolean"}
	case "any":
		return &Schema{}
	case "time.Time":
		return &Schema{Type: "string", Format: "date-time"}
	case "uuid.UUID":
		return &Schema{Type: "string", Format: "uuid"}
	case "gorm.DeletedAt":
		return &Schema{Type: "string", Format: "date-time", Nullable: true}
	}
	return nil
}

// jsonTag returns the json name of a field and whether it is omitted.
func jsonTag(field *ast.Field) (name string, omitempty, skip bool) {
	if field.Tag == nil {
		return "", false, false
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return "", false, false
	}
	tag, ok := reflect.StructTag(raw).Lookup("json")
	if !ok {
		return "", false, false
	}
	parts := strings.Split(tag, ",")
	if parts[0] == "-" {
		return "", false, true
	}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			omitempty = true
		}
	}
	return parts[0], omitempty, false
}

func unqualified(typeName string) string {
	typeName = strings.TrimLeft(typeName, "*[]")
	if i := strings.LastIndex(typeName, "."); i >= 0 {
		return typeName[i+1:]
	}
	return typeName
}
