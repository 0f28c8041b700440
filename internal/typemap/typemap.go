// Package typemap maps the `name:type` field DSL to Go struct fields with
// json and gorm tags.
package typemap

import (
	"strings"
)

const (
	importTime = "time"
	importUUID = "github.com/google/uuid"

	gormSerialized = "type:jsonb;serializer:json"
)

type mapping struct {
	goType  string
	gorm    string
	imports []string
}

var (
	stringMapping = mapping{goType: "string", gorm: "type:varchar(255)"}
	textMapping   = mapping{goType: "string", gorm: "type:text"}
	intMapping    = mapping{goType: "int", gorm: "type:bigint"}
	floatMapping  = mapping{goType: "float64", gorm: "type:decimal(10,2)"}
	boolMapping   = mapping{goType: "bool", gorm: "type:boolean;default:false"}
	timeMapping   = mapping{goType: "time.Time", gorm: "type:timestamp", imports: []string{importTime}}
	uuidMapping   = mapping{goType: "uuid.UUID", gorm: "type:uuid", imports: []string{importUUID}}
	bytesMapping  = mapping{goType: "[]byte", gorm: "type:bytea"}
	jsonMapping   = mapping{goType: "map[string]any", gorm: gormSerialized}
)

// table is keyed by the lower-cased declared type.
var table = map[string]mapping{
	"string": stringMapping,
	"str":    stringMapping,
	"text":   textMapping,

	"int":     intMapping,
	"integer": intMapping,
	"int32":   {goType: "int32", gorm: "type:integer"},
	"int64":   {goType: "int64", gorm: "type:bigint"},
	"uint":    {goType: "uint", gorm: "type:bigint"},
	"uint32":  {goType: "uint32", gorm: "type:bigint"},
	"uint64":  {goType: "uint64", gorm: "type:bigint"},

	"float":   floatMapping,
	"float64": floatMapping,
	"decimal": floatMapping,
	"number":  floatMapping,
	"float32": {goType: "float32", gorm: "type:real"},

	"bool":    boolMapping,
	"boolean": boolMapping,

	"time":      timeMapping,
	"datetime":  timeMapping,
	"timestamp": timeMapping,
	"date":      {goType: "time.Time", gorm: "type:date", imports: []string{importTime}},

	"uuid": uuidMapping,
	"guid": uuidMapping,

	"bytes":  bytesMapping,
	"binary": bytesMapping,

	"json":  jsonMapping,
	"jsonb": jsonMapping,
}

// Type is a declared field type resolved to Go.
type Type struct {
	Declared string   // as written, trimmed
	Go       string   // full Go type, e.g. "[]*time.Time"
	Base     string   // innermost Go type, e.g. "time.Time"
	Gorm     string   // gorm tag value
	Imports  []string // packages the Go type needs
	Known    bool     // false when the base type fell back to string
}

// Resolve maps a declared type to Go. `[]T` and `*T` are unwrapped
// recursively, mapped and rewrapped. Unknown base types silently become
// string.
func Resolve(declared string) Type {
	d := strings.TrimSpace(declared)

	switch {
	case strings.HasPrefix(d, "[]"):
		inner := Resolve(d[2:])
		return Type{
			Declared: d,
			Go:       "[]" + inner.Go,
			Base:     inner.Base,
			Gorm:     gormSerialized,
			Imports:  inner.Imports,
			Known:    inner.Known,
		}
	case strings.HasPrefix(d, "*"):
		inner := Resolve(d[1:])
		return Type{
			Declared: d,
			Go:       "*" + inner.Go,
			Base:     inner.Base,
			Gorm:     inner.Gorm,
			Imports:  inner.Imports,
			Known:    inner.Known,
		}
	}

	m, ok := table[strings.ToLower(d)]
	if !ok {
		m = stringMapping
	}
	return Type{
		Declared: d,
		Go:       m.goType,
		Base:     m.goType,
		Gorm:     m.gorm,
		Imports:  append([]string(nil), m.imports...),
		Known:    ok,
	}
}

// Known reports whether declared resolves without falling back to string.
func Known(declared string) bool {
	return Resolve(declared).Known
}
