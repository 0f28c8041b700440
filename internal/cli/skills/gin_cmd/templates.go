package gin_cmd

import (
	"embed"
	"path"
	"strings"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

//go:embed templates
var Templates embed.FS

var renderer = scaffold.NewRenderer(Templates)

// layer is one generated Go package: its directory below the project root,
// its import path and its package name.
type layer struct {
	Dir    string
	Import string
	Pkg    string
}

func newLayer(module, dir string) (layer, error) {
	dir = path.Clean(strings.ReplaceAll(dir, "\\", "/"))
	pkg := path.Base(dir)
	if !scaffold.IsGoIdentifier(pkg) {
		return layer{}, scaffold.UsageError("directory %q does not end in a valid Go package name", dir)
	}
	return layer{Dir: dir, Import: module + "/" + dir, Pkg: pkg}, nil
}

// File returns the slash path of name inside the layer.
func (l layer) File(name string) string {
	return path.Join(l.Dir, name)
}

// ginLayout holds the configured layer packages of a Gin project.
type ginLayout struct {
	Entities        layer
	Repositories    layer
	RepositoryImpls layer
	Usecases        layer
	Handlers        layer
	Infrastructure  layer
	Middleware      layer
}

func newGinLayout(module string, cfg shared.GinConfig) (ginLayout, error) {
	var l ginLayout
	dirs := []struct {
		dst *layer
		dir string
	}{
		{&l.Entities, cfg.EntityDir},
		{&l.Repositories, cfg.RepositoryDir},
		{&l.RepositoryImpls, cfg.RepositoryImplDir},
		{&l.Usecases, cfg.UsecaseDir},
		{&l.Handlers, cfg.HandlerDir},
		{&l.Infrastructure, cfg.InfrastructureDir},
		{&l.Middleware, cfg.MiddlewareDir},
	}
	for _, d := range dirs {
		ly, err := newLayer(module, d.dir)
		if err != nil {
			return ginLayout{}, err
		}
		*d.dst = ly
	}
	return l, nil
}

// Sub returns the layer for a sub package of l.
func (l layer) Sub(module, name string) (layer, error) {
	return newLayer(module, path.Join(l.Dir, name))
}
