package scaffold

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testKind string

type testPair struct {
	category, provider string
}

func (p testPair) String() string { return p.category + "/" + p.provider }

func echo(name string) (Plan, error) {
	return Plan{Files: []File{{Path: name + ".txt", Content: []byte(name)}}}, nil
}

func TestCatalog_Generate(t *testing.T) {
	c := NewCatalog[testKind, string]("component").
		Register("basic", echo).
		Register("card", echo)

	plan, err := c.Generate("card", "Profile")
	require.NoError(t, err)
	require.Len(t, plan.Files, 1)
	assert.Equal(t, "Profile.txt", plan.Files[0].Path)

	assert.Equal(t, []testKind{"basic", "card"}, c.Keys())
	assert.True(t, c.Supports("basic"))
	assert.False(t, c.Supports("modal"))
}

func TestCatalog_Unsupported(t *testing.T) {
	c := NewCatalog[testKind, string]("component").Register("basic", echo)
	_, err := c.Generate("modal", "x")
	require.Error(t, err)
	assert.Equal(t, KindUnsupported, KindOf(err))
	assert.Contains(t, err.Error(), "unsupported combination: component/modal")

	pairs := NewCatalog[testPair, string]("infra").Register(testPair{"cache", "redis"}, echo)
	_, err = pairs.Generate(testPair{"storage", "redis"}, "x")
	assert.Contains(t, err.Error(), "unsupported combination: storage/redis")
}

func TestCatalog_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewCatalog[testKind, string]("hook").Register("basic", echo).Register("basic", echo)
	})
}

func TestCatalog_Deterministic(t *testing.T) {
	c := NewCatalog[testKind, string]("page").Register("basic", echo)
	a, err := c.Generate("basic", "Home")
	require.NoError(t, err)
	b, err := c.Generate("basic", "Home")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlan_Merge(t *testing.T) {
	p := Plan{Dependencies: []string{"a", "b"}, Install: "go get", Usage: "one"}
	p.Merge(Plan{
		Files:        []File{{Path: "x"}},
		Dependencies: []string{"b", "c"},
		Install:      "npm install",
		Usage:        "two",
		Steps:        []Step{{Title: "step"}},
	})

	assert.Equal(t, []string{"a", "b", "c"}, p.Dependencies)
	assert.Equal(t, "go get", p.Install)
	assert.Equal(t, "one\ntwo", p.Usage)
	assert.Len(t, p.Files, 1)
	assert.Len(t, p.Steps, 1)
}

func TestChoose(t *testing.T) {
	allowed := []testKind{"storage", "cache"}

	got, err := Choose("type", "Cache", allowed)
	require.NoError(t, err)
	assert.Equal(t, testKind("cache"), got)

	_, err = Choose("type", "queue", allowed)
	require.Error(t, err)
	assert.Equal(t, KindUsage, KindOf(err))
	assert.Contains(t, err.Error(), `invalid --type "queue" (choose from: storage, cache)`)

	all, err := ChooseAll("type", []string{"cache", "storage", "CACHE"}, allowed)
	require.NoError(t, err)
	assert.Equal(t, []testKind{"cache", "storage"}, all)
}

func TestErrorFormatting(t *testing.T) {
	err := IOError("/tmp/x", fmt.Errorf("permission denied"))
	assert.Equal(t, "io error: /tmp/x: permission denied", err.Error())
	assert.Equal(t, 1, ExitCode(err))
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, KindUnknown, KindOf(fmt.Errorf("plain")))
	assert.Equal(t, KindIO, KindOf(fmt.Errorf("wrapped: %w", err)))
}
