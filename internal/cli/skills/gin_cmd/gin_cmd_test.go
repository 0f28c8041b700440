package gin_cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

const testModule = "example.com/shop"

func newGoProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module "+testModule+"\n\ngo 1.23\n"), 0o644))
	return dir
}

func common(dir string, out *bytes.Buffer) shared.Common {
	return shared.Common{ProjectPath: dir, Out: out}
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err, "reading %s", rel)
	return string(data)
}

func TestGenerateDomain(t *testing.T) {
	dir := newGoProject(t)
	var out bytes.Buffer

	err := generateDomain(context.Background(), DomainOptions{
		Common: common(dir, &out),
		Name:   "product",
		Fields: "name:string,price:float64,stock:int,sku:uuid",
	})
	require.NoError(t, err)

	for _, rel := range []string{
		"internal/domain/entity/product.go",
		"internal/domain/repository/product_repository.go",
		"internal/infrastructure/repository/product_repository.go",
		"internal/usecase/product_usecase.go",
		"internal/handler/product_handler.go",
	} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(rel)))
		assert.Contains(t, out.String(), rel)
	}

	entity := readFile(t, dir, "internal/domain/entity/product.go")
	assert.Contains(t, entity, "package entity")
	assert.Contains(t, entity, `"time"`)
	assert.Contains(t, entity, `"github.com/google/uuid"`)
	assert.Regexp(t, regexp.MustCompile(`Price\s+float64\s+`+"`"+`json:"price" gorm:"type:decimal\(10,2\)"`+"`"), entity)
	assert.Regexp(t, regexp.MustCompile(`Sku\s+uuid\.UUID\s+`+"`"+`json:"sku" gorm:"type:uuid"`+"`"), entity)
	assert.Regexp(t, regexp.MustCompile(`ID\s+uint\s+`+"`"+`json:"id" gorm:"primaryKey"`+"`"), entity)
	assert.Contains(t, entity, `return "products"`)

	handler := readFile(t, dir, "internal/handler/product_handler.go")
	assert.Contains(t, handler, `router.Group("/products")`)
	assert.Contains(t, handler, `"example.com/shop/internal/usecase"`)

	impl := readFile(t, dir, "internal/infrastructure/repository/product_repository.go")
	assert.Contains(t, impl, `domainrepo "example.com/shop/internal/domain/repository"`)

	assert.Contains(t, out.String(), "github.com/google/uuid")
	assert.Contains(t, out.String(), "Next steps")
}

func TestGenerateDomain_NoFieldsStillImportsTime(t *testing.T) {
	dir := newGoProject(t)

	err := generateDomain(context.Background(), DomainOptions{Common: common(dir, &bytes.Buffer{}), Name: "tag"})
	require.NoError(t, err)

	entity := readFile(t, dir, "internal/domain/entity/tag.go")
	assert.Contains(t, entity, `"time"`)
	assert.Contains(t, entity, "CreatedAt")
}

func TestGenerateDomain_Idempotent(t *testing.T) {
	dir := newGoProject(t)
	opts := DomainOptions{Common: common(dir, &bytes.Buffer{}), Name: "order_item", Fields: "quantity:int"}

	require.NoError(t, generateDomain(context.Background(), opts))
	first := readFile(t, dir, "internal/domain/entity/order_item.go")

	var out bytes.Buffer
	opts.Out = &out
	require.NoError(t, generateDomain(context.Background(), opts))
	assert.Equal(t, first, readFile(t, dir, "internal/domain/entity/order_item.go"))
	assert.Equal(t, 5, strings.Count(out.String(), "UNCHANGED"))
}

func TestGenerateDomain_Errors(t *testing.T) {
	t.Run("missing go.mod", func(t *testing.T) {
		err := generateDomain(context.Background(), DomainOptions{Common: common(t.TempDir(), &bytes.Buffer{}), Name: "product"})
		assert.Equal(t, scaffold.KindPrecondition, scaffold.KindOf(err))
	})

	t.Run("bad field", func(t *testing.T) {
		dir := newGoProject(t)
		err := generateDomain(context.Background(), DomainOptions{Common: common(dir, &bytes.Buffer{}), Name: "product", Fields: "price"})
		assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
		assert.NoFileExists(t, filepath.Join(dir, "internal/domain/entity/product.go"))
	})

	t.Run("bad name", func(t *testing.T) {
		dir := newGoProject(t)
		err := generateDomain(context.Background(), DomainOptions{Common: common(dir, &bytes.Buffer{}), Name: "9lives"})
		assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
	})

	t.Run("non ascii field", func(t *testing.T) {
		dir := newGoProject(t)
		err := generateDomain(context.Background(), DomainOptions{Common: common(dir, &bytes.Buffer{}), Name: "customer", Fields: "émail:string"})
		assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
		assert.NoFileExists(t, filepath.Join(dir, "internal/domain/entity/customer.go"))
	})

	t.Run("field shadowing TableName", func(t *testing.T) {
		dir := newGoProject(t)
		err := generateDomain(context.Background(), DomainOptions{Common: common(dir, &bytes.Buffer{}), Name: "customer", Fields: "table_name:string"})
		assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
	})
}

func TestGenerateDomain_DryRun(t *testing.T) {
	dir := newGoProject(t)
	var out bytes.Buffer
	c := common(dir, &out)
	c.DryRun = true

	require.NoError(t, generateDomain(context.Background(), DomainOptions{Common: c, Name: "product"}))
	assert.NoDirExists(t, filepath.Join(dir, "internal"))
	assert.Contains(t, out.String(), "(dry run)")
}

func TestGenerateInfra_CacheRedis(t *testing.T) {
	dir := newGoProject(t)
	var out bytes.Buffer

	err := generateInfra(context.Background(), InfraOptions{
		Common:    common(dir, &out),
		Type:      "cache",
		Providers: []string{"redis"},
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "internal/infrastructure/cache"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"cache.go", "redis.go"}, names)

	assert.Contains(t, readFile(t, dir, "internal/infrastructure/cache/redis.go"), "package cache")
	assert.Contains(t, out.String(), "github.com/redis/go-redis/v9")
}

func TestGenerateInfra_UnsupportedCombination(t *testing.T) {
	dir := newGoProject(t)
	var out bytes.Buffer

	err := generateInfra(context.Background(), InfraOptions{
		Common:    common(dir, &out),
		Type:      "storage",
		Providers: []string{"redis"},
	})
	require.Error(t, err)
	assert.Equal(t, scaffold.KindUnsupported, scaffold.KindOf(err))
	assert.Contains(t, err.Error(), "storage/redis")
	assert.NoDirExists(t, filepath.Join(dir, "internal/infrastructure/storage"))
}

func TestGenerateInfra_BatchContinues(t *testing.T) {
	dir := newGoProject(t)
	var out bytes.Buffer

	err := generateInfra(context.Background(), InfraOptions{
		Common:    common(dir, &out),
		Type:      "storage",
		Providers: []string{"redis", "local", "s3"},
	})
	require.Error(t, err)
	assert.Equal(t, 1, scaffold.ExitCode(err))

	for _, name := range []string{"storage.go", "local.go", "s3.go"} {
		assert.FileExists(t, filepath.Join(dir, "internal/infrastructure/storage", name))
	}
	assert.NoFileExists(t, filepath.Join(dir, "internal/infrastructure/storage", "redis.go"))
	assert.Contains(t, out.String(), "github.com/aws/aws-sdk-go-v2/service/s3")
}

func TestGenerateInfra_WriteFailureReportedOnce(t *testing.T) {
	dir := newGoProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "internal/infrastructure"), 0o755))
	// a regular file where the package directory belongs
	require.NoError(t, os.WriteFile(filepath.Join(dir, "internal/infrastructure/cache"), []byte("x"), 0o644))
	var out bytes.Buffer

	err := generateInfra(context.Background(), InfraOptions{
		Common:    common(dir, &out),
		Type:      "cache",
		Providers: []string{"redis"},
	})
	require.Error(t, err)
	assert.Equal(t, scaffold.KindIO, scaffold.KindOf(err))
	assert.True(t, scaffold.IsReported(err))
	// one line per failed file, none added by the batch
	assert.Equal(t, 2, strings.Count(out.String(), "ERROR"), out.String())
}

func TestGenerateInfra_InvalidValues(t *testing.T) {
	dir := newGoProject(t)

	tests := []InfraOptions{
		{Type: "database", Providers: []string{"local"}},
		{Type: "cache", Providers: []string{"memcached"}},
		{Type: "cache"},
	}
	for _, opts := range tests {
		opts.Common = common(dir, &bytes.Buffer{})
		err := generateInfra(context.Background(), opts)
		assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err), "%+v", opts)
	}
}

func TestInfraCatalog(t *testing.T) {
	for _, typ := range InfraTypes {
		assert.NotEmpty(t, SupportedProviders(typ), "type %s", typ)
	}
	assert.True(t, infraCatalog.Supports(InfraKey{InfraQueue, ProviderKafka}))
	assert.False(t, infraCatalog.Supports(InfraKey{InfraEmail, ProviderRedis}))

	layout, err := newGinLayout(testModule, shared.DefaultConfig().Gin)
	require.NoError(t, err)
	for _, key := range infraCatalog.Keys() {
		dir, err := layout.Infrastructure.Sub(testModule, string(key.Type))
		require.NoError(t, err)

		plan, err := infraCatalog.Generate(key, infraData{Pkg: dir.Pkg, Dir: dir})
		require.NoError(t, err, "key %s", key)
		require.Len(t, plan.Files, 2, "key %s", key)
		assert.NotEmpty(t, plan.Usage, "key %s", key)
		for _, f := range plan.Files {
			assert.Contains(t, string(f.Content), "package "+string(key.Type), "file %s", f.Path)
		}
	}
}

func TestGenerateMiddleware(t *testing.T) {
	dir := newGoProject(t)
	var out bytes.Buffer

	err := generateMiddleware(context.Background(), MiddlewareOptions{
		Common: common(dir, &out),
		Types:  []string{"ratelimit", "requestid"},
	})
	require.NoError(t, err)

	assert.Contains(t, readFile(t, dir, "pkg/middleware/ratelimit.go"), "package middleware")
	assert.FileExists(t, filepath.Join(dir, "pkg/middleware/requestid.go"))
	assert.Contains(t, out.String(), "golang.org/x/time/rate")
	assert.Contains(t, out.String(), "github.com/google/uuid")
}

func TestMiddlewareCatalog_AllKinds(t *testing.T) {
	mw, err := newLayer(testModule, "pkg/middleware")
	require.NoError(t, err)

	for _, kind := range MiddlewareKinds {
		t.Run(string(kind), func(t *testing.T) {
			plan, err := middlewareCatalog.Generate(kind, mw)
			require.NoError(t, err)
			require.Len(t, plan.Files, 1)
			assert.Equal(t, "pkg/middleware/"+string(kind)+".go", plan.Files[0].Path)
			assert.NotEmpty(t, plan.Usage)
		})
	}
}

func TestGenerateMiddleware_UnknownKind(t *testing.T) {
	dir := newGoProject(t)
	err := generateMiddleware(context.Background(), MiddlewareOptions{
		Common: common(dir, &bytes.Buffer{}),
		Types:  []string{"cors", "csrf"},
	})
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
	assert.NoFileExists(t, filepath.Join(dir, "pkg/middleware/cors.go"))
}

func TestGenerateProject(t *testing.T) {
	out := t.TempDir()
	var buf bytes.Buffer

	err := generateProject(context.Background(), InitOptions{
		Common:     common(out, &buf),
		Name:       "blog",
		ModulePath: "github.com/acme/blog",
	})
	require.NoError(t, err)

	root := filepath.Join(out, "blog")
	assert.Contains(t, readFile(t, root, "go.mod"), "module github.com/acme/blog")
	assert.Contains(t, readFile(t, root, "cmd/api/main.go"), `"github.com/acme/blog/pkg/middleware"`)
	assert.Contains(t, readFile(t, root, ".env.example"), "DB_NAME=blog")
	for _, rel := range []string{"internal/domain/entity", "internal/handler", "internal/usecase"} {
		assert.DirExists(t, filepath.Join(root, rel))
	}

	err = generateProject(context.Background(), InitOptions{Common: common(out, &bytes.Buffer{}), Name: "blog"})
	assert.Equal(t, scaffold.KindPrecondition, scaffold.KindOf(err))
}

func TestGenerateProject_WithCI(t *testing.T) {
	out := t.TempDir()
	var buf bytes.Buffer

	require.NoError(t, generateProject(context.Background(), InitOptions{
		Common: common(out, &buf),
		Name:   "shop-api",
		WithCI: true,
	}))

	root := filepath.Join(out, "shop-api")
	assert.Contains(t, readFile(t, root, "Makefile"), "go run ./cmd/api")
	assert.Contains(t, readFile(t, root, "docker-compose.yaml"), "POSTGRES_DB: shop_api")
	assert.Contains(t, readFile(t, root, ".github/workflows/tests.yaml"), `go-version: "`+GoVersion+`"`)
	assert.Contains(t, readFile(t, root, ".github/workflows/build.yaml"), "name: shop-api-${{ github.ref_name }}")
	assert.Contains(t, buf.String(), "make up")
}

func TestGenerateProject_WithoutCI(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, generateProject(context.Background(), InitOptions{Common: common(out, &bytes.Buffer{}), Name: "blog"}))
	assert.NoFileExists(t, filepath.Join(out, "blog", "Makefile"))
	assert.NoDirExists(t, filepath.Join(out, "blog", ".github"))
}

func TestGenerateProject_InvalidName(t *testing.T) {
	err := generateProject(context.Background(), InitOptions{Common: common(t.TempDir(), &bytes.Buffer{}), Name: "My Blog"})
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
}

func TestGenerateAuth(t *testing.T) {
	dir := newGoProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.example"), []byte("PORT=8080"), 0o644))

	var out bytes.Buffer
	require.NoError(t, generateAuth(context.Background(), AuthOptions{Common: common(dir, &out), Provider: "both"}))

	for _, rel := range []string{
		"internal/domain/auth/entity/user.go",
		"internal/domain/auth/dto/auth_dto.go",
		"internal/domain/auth/repository/auth_repository.go",
		"internal/domain/auth/repository/auth_repository_impl.go",
		"internal/domain/auth/service/auth_service.go",
		"internal/domain/auth/service/auth_service_impl.go",
		"internal/domain/auth/handler/auth_handler.go",
		"pkg/jwt/jwt.go",
		"pkg/middleware/auth.go",
	} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(rel)))
	}
	assert.DirExists(t, filepath.Join(dir, "uploads/avatars"))

	env := readFile(t, dir, ".env.example")
	assert.True(t, strings.HasPrefix(env, "PORT=8080\n"))
	assert.Contains(t, env, "JWT_SECRET=")
	assert.Contains(t, env, "GOOGLE_CLIENT_ID=")
	assert.Contains(t, out.String(), "google.golang.org/api/idtoken")

	// a second run leaves the env block alone
	out.Reset()
	require.NoError(t, generateAuth(context.Background(), AuthOptions{Common: common(dir, &out), Provider: "both"}))
	assert.Equal(t, env, readFile(t, dir, ".env.example"))
	assert.Equal(t, 1, strings.Count(env, "JWT_SECRET="))
}

func TestGenerateAuth_LocalOnly(t *testing.T) {
	dir := newGoProject(t)
	var out bytes.Buffer

	require.NoError(t, generateAuth(context.Background(), AuthOptions{Common: common(dir, &out), Provider: "local"}))

	service := readFile(t, dir, "internal/domain/auth/service/auth_service_impl.go")
	assert.NotContains(t, service, "idtoken")
	assert.Contains(t, service, "func NewAuthService(repo repository.AuthRepository, jwtService *jwt.JWTService) AuthService")

	env := readFile(t, dir, ".env.example")
	assert.Contains(t, env, "DB_HOST=localhost")
	assert.Contains(t, env, "JWT_SECRET=")
	assert.NotContains(t, env, "GOOGLE_CLIENT_ID")
	assert.Contains(t, out.String(), "golang.org/x/crypto/bcrypt")
	assert.NotContains(t, out.String(), "google.golang.org/api")
}

func TestGenerateAuth_GoogleOnly(t *testing.T) {
	dir := newGoProject(t)
	require.NoError(t, generateAuth(context.Background(), AuthOptions{Common: common(dir, &bytes.Buffer{}), Provider: "google"}))

	user := readFile(t, dir, "internal/domain/auth/entity/user.go")
	assert.NotContains(t, user, "bcrypt")
}

func TestGenerateAuth_InvalidProvider(t *testing.T) {
	err := generateAuth(context.Background(), AuthOptions{Common: common(newGoProject(t), &bytes.Buffer{}), Provider: "github"})
	assert.Equal(t, scaffold.KindUsage, scaffold.KindOf(err))
}

func TestGenerateDocs(t *testing.T) {
	dir := newGoProject(t)
	require.NoError(t, generateDomain(context.Background(), DomainOptions{
		Common: common(dir, &bytes.Buffer{}),
		Name:   "product",
		Fields: "name:string,price:float64",
	}))

	var out bytes.Buffer
	require.NoError(t, generateDocs(context.Background(), DocsOptions{Common: common(dir, &out), Format: "yaml"}))

	doc := readFile(t, dir, "docs/openapi.yaml")
	assert.Contains(t, doc, "openapi: 3.0.3")
	assert.Contains(t, doc, "/api/v1/products/{id}:")
	assert.Contains(t, doc, "Product:")
	assert.Contains(t, out.String(), "docs/openapi.yaml")

	require.NoError(t, generateDocs(context.Background(), DocsOptions{Common: common(dir, &bytes.Buffer{}), Format: "json"}))
	assert.Contains(t, readFile(t, dir, "docs/openapi.json"), `"/api/v1/products"`)
}

func TestGenerateDocs_NoRoutes(t *testing.T) {
	err := generateDocs(context.Background(), DocsOptions{Common: common(newGoProject(t), &bytes.Buffer{}), Format: "yaml"})
	assert.Equal(t, scaffold.KindPrecondition, scaffold.KindOf(err))
}
