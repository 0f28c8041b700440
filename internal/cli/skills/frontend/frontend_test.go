package frontend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

func TestHookName(t *testing.T) {
	tests := map[string]string{
		"counter":     "useCounter",
		"use-counter": "useCounter",
		"useCounter":  "useCounter",
		"user":        "useUser",
		"window_size": "useWindowSize",
	}
	for in, want := range tests {
		assert.Equal(t, want, HookName(in), "HookName(%q)", in)
	}
}

func TestNewPage_Suffix(t *testing.T) {
	u, err := NewPage("settings", "Page", "src/pages", "@/pages")
	require.NoError(t, err)
	assert.Equal(t, "SettingsPage", u.Name)
	assert.Equal(t, "settings", u.Route)

	u, err = NewPage("settings-page", "Page", "src/pages", "@/pages")
	require.NoError(t, err)
	assert.Equal(t, "SettingsPage", u.Name)
	assert.Equal(t, "Settings Page", u.Title)
}

func TestNewUnit_InvalidNames(t *testing.T) {
	_, err := NewComponent("", "src/components", "@/components")
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))

	_, err = NewComponent("9lives", "src/components", "@/components")
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))

	_, err = NewPage("", "Page", "src/pages", "@/pages")
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))

	_, err = NewComponent("émile-card", "src/components", "@/components")
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))

	_, err = NewHook("größe", "src/hooks", "@/hooks")
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
}

func TestSourceDir(t *testing.T) {
	ok := map[string]string{
		"components":          "components",
		"/components/ui/":     "components/ui",
		`components\forms`:    "components/forms",
		"features/../widgets": "widgets",
	}
	for in, want := range ok {
		got, err := SourceDir(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "/", "..", "../outside", "a/../../outside"} {
		_, err := SourceDir(in)
		assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err), "SourceDir(%q)", in)
	}
}

func TestComponents_EveryKindRenders(t *testing.T) {
	u, err := NewComponent("user-card", "src/components", "@/components")
	require.NoError(t, err)

	for _, kind := range Components.Keys() {
		t.Run(string(kind), func(t *testing.T) {
			plan, err := Components.Generate(kind, u)
			require.NoError(t, err)
			require.Len(t, plan.Files, 2)
			assert.Equal(t, "src/components/UserCard.tsx", plan.Files[0].Path)
			assert.Contains(t, string(plan.Files[0].Content), "UserCard")
			assert.Equal(t, "src/components/index.ts", plan.Files[1].Path)
			assert.Equal(t, scaffold.AppendOnce, plan.Files[1].Mode)
			assert.Equal(t, "export { UserCard } from './UserCard'\n", string(plan.Files[1].Content))
			assert.Equal(t, "import { UserCard } from '@/components'", plan.Usage)
		})
	}
}

func TestComponents_ClientDirective(t *testing.T) {
	u, err := NewComponent("counter", "src/components", "@/components")
	require.NoError(t, err)

	plan, err := Components.Generate(ComponentState, u)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(string(plan.Files[0].Content), `"use client"`))

	u.Client = true
	plan, err = Components.Generate(ComponentState, u)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(plan.Files[0].Content), `"use client"`))
}

func TestComponents_ShadcnStep(t *testing.T) {
	u, err := NewComponent("signup", "src/components", "@/components")
	require.NoError(t, err)

	plan, err := Components.Generate(ComponentForm, u)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, []string{"npx shadcn@latest add button input label"}, plan.Steps[0].Lines)

	u.Runner = "pnpm dlx"
	plan, err = Components.Generate(ComponentForm, u)
	require.NoError(t, err)
	assert.Equal(t, []string{"pnpm dlx shadcn@latest add button input label"}, plan.Steps[0].Lines)

	plan, err = Components.Generate(ComponentBasic, u)
	require.NoError(t, err)
	assert.Empty(t, plan.Steps)
}

func TestHooks_EveryKindRenders(t *testing.T) {
	u, err := NewHook("counter", "src/hooks", "@/hooks")
	require.NoError(t, err)

	for _, kind := range Hooks.Keys() {
		t.Run(string(kind), func(t *testing.T) {
			plan, err := Hooks.Generate(kind, u)
			require.NoError(t, err)
			assert.Equal(t, "src/hooks/useCounter.ts", plan.Files[0].Path)
			assert.Contains(t, string(plan.Files[0].Content), "useCounter")
		})
	}
}

func TestPages(t *testing.T) {
	u, err := NewPage("orders", "Page", "src/pages", "@/pages")
	require.NoError(t, err)

	for _, kind := range Pages.Keys() {
		t.Run(string(kind), func(t *testing.T) {
			plan, err := Pages.Generate(kind, u)
			require.NoError(t, err)
			require.Len(t, plan.Files, 1)
			assert.Equal(t, "src/pages/OrdersPage.tsx", plan.Files[0].Path)
			assert.Contains(t, plan.Usage, "import OrdersPage from '@/pages/OrdersPage'")
		})
	}

	plan, err := Pages.Generate(PageDetail, u)
	require.NoError(t, err)
	assert.Contains(t, plan.Usage, `<Route path="/orders/:id" element={<OrdersPage />} />`)
	assert.Equal(t, []string{"react-router-dom"}, plan.Dependencies)

	plan, err = Pages.Generate(PageData, u)
	require.NoError(t, err)
	assert.Equal(t, []string{"@tanstack/react-query"}, plan.Dependencies)
}

func TestPages_LayoutControlsBasicStep(t *testing.T) {
	u, err := NewPage("about", "Page", "src/pages", "@/pages")
	require.NoError(t, err)

	plan, err := Pages.Generate(PageBasic, u)
	require.NoError(t, err)
	assert.Empty(t, plan.Steps)

	u.Layout = true
	plan, err = Pages.Generate(PageBasic, u)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, []string{"npx shadcn@latest add card"}, plan.Steps[0].Lines)
}
