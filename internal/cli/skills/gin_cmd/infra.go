package gin_cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixie-sh/skills-cli/internal/cli/skills/shared"
	"github.com/pixie-sh/skills-cli/internal/scaffold"
)

// InfraType is an infrastructure concern.
type InfraType string

const (
	InfraStorage InfraType = "storage"
	InfraCache   InfraType = "cache"
	InfraQueue   InfraType = "queue"
	InfraEmail   InfraType = "email"
)

var InfraTypes = []InfraType{InfraStorage, InfraCache, InfraQueue, InfraEmail}

// Provider is a backend implementing an InfraType.
type Provider string

const (
	ProviderLocal    Provider = "local"
	ProviderS3       Provider = "s3"
	ProviderGCS      Provider = "gcs"
	ProviderRedis    Provider = "redis"
	ProviderMemory   Provider = "memory"
	ProviderKafka    Provider = "kafka"
	ProviderRabbitMQ Provider = "rabbitmq"
	ProviderSMTP     Provider = "smtp"
	ProviderSendGrid Provider = "sendgrid"
)

// Providers is every provider known to any infrastructure type. Whether a
// provider serves a given type is decided by the catalog.
var Providers = []Provider{
	ProviderLocal, ProviderS3, ProviderGCS,
	ProviderRedis, ProviderMemory,
	ProviderKafka, ProviderRabbitMQ,
	ProviderSMTP, ProviderSendGrid,
}

// InfraKey selects one infrastructure generator.
type InfraKey struct {
	Type     InfraType
	Provider Provider
}

func (k InfraKey) String() string {
	return string(k.Type) + "/" + string(k.Provider)
}

type infraData struct {
	Pkg string
	Dir layer
}

var redisDeps = []string{"github.com/redis/go-redis/v9"}

var infraCatalog = func() *scaffold.Catalog[InfraKey, infraData] {
	c := scaffold.NewCatalog[InfraKey, infraData]("infra")
	entries := []struct {
		key  InfraKey
		deps []string
	}{
		{InfraKey{InfraStorage, ProviderLocal}, nil},
		{InfraKey{InfraStorage, ProviderS3}, []string{
			"github.com/aws/aws-sdk-go-v2/aws",
			"github.com/aws/aws-sdk-go-v2/config",
			"github.com/aws/aws-sdk-go-v2/credentials",
			"github.com/aws/aws-sdk-go-v2/service/s3",
		}},
		{InfraKey{InfraStorage, ProviderGCS}, []string{"cloud.google.com/go/storage"}},
		{InfraKey{InfraCache, ProviderRedis}, redisDeps},
		{InfraKey{InfraCache, ProviderMemory}, nil},
		{InfraKey{InfraQueue, ProviderRedis}, redisDeps},
		{InfraKey{InfraQueue, ProviderKafka}, []string{"github.com/segmentio/kafka-go"}},
		{InfraKey{InfraQueue, ProviderRabbitMQ}, []string{"github.com/rabbitmq/amqp091-go"}},
		{InfraKey{InfraEmail, ProviderSMTP}, nil},
		{InfraKey{InfraEmail, ProviderSendGrid}, []string{"github.com/sendgrid/sendgrid-go"}},
	}
	for _, e := range entries {
		c.Register(e.key, infraGenerator(e.key, e.deps))
	}
	return c
}()

// infraGenerator renders the interface file of the key's type and the
// provider implementation next to it.
func infraGenerator(key InfraKey, deps []string) scaffold.Generator[infraData] {
	return func(d infraData) (scaffold.Plan, error) {
		iface, err := renderer.File(
			fmt.Sprintf("templates/infra/%s.go.tmpl", key.Type),
			d.Dir.File(string(key.Type)+".go"), d)
		if err != nil {
			return scaffold.Plan{}, err
		}
		impl, err := renderer.File(
			fmt.Sprintf("templates/infra/%s_%s.go.tmpl", key.Type, key.Provider),
			d.Dir.File(string(key.Provider)+".go"), d)
		if err != nil {
			return scaffold.Plan{}, err
		}
		usage, err := renderer.Render(fmt.Sprintf("templates/infra/usage/%s_%s.txt", key.Type, key.Provider), d)
		if err != nil {
			return scaffold.Plan{}, err
		}

		return scaffold.Plan{
			Files:        []scaffold.File{iface, impl},
			Dependencies: deps,
			Install:      "go get",
			Usage:        string(usage),
		}, nil
	}
}

// SupportedProviders returns the providers registered for t.
func SupportedProviders(t InfraType) []Provider {
	var out []Provider
	for _, k := range infraCatalog.Keys() {
		if k.Type == t {
			out = append(out, k.Provider)
		}
	}
	return out
}

// InfraOptions holds all the options for infrastructure generation.
type InfraOptions struct {
	shared.Common
	Type       string
	Providers  []string
	ModuleName string
}

// InfraCmd returns the cobra command for infrastructure generation.
func InfraCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infra",
		Short: "Add storage, cache, queue or email infrastructure",
		Long: `Add an infrastructure interface and one implementation per provider
below <infrastructure_dir>/<type>/.

Supported combinations:
  storage  local, s3, gcs
  cache    redis, memory
  queue    redis, kafka, rabbitmq
  email    smtp, sendgrid

--provider may be repeated; every provider is generated even if another one
fails, and the command exits non-zero at the end if any did.

Examples:
  skills gin infra --type storage --provider s3
  skills gin infra --type cache --provider redis --provider memory
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var infraType, _ = cmd.Flags().GetString("type")
			var providers, _ = cmd.Flags().GetStringSlice("provider")
			var moduleName, _ = cmd.Flags().GetString("module-name")

			opts := InfraOptions{
				Common:     shared.CommonFromCmd(cmd),
				Type:       infraType,
				Providers:  providers,
				ModuleName: moduleName,
			}

			return generateInfra(cmd.Context(), opts)
		},
	}

	shared.AddProjectPathFlag(cmd)
	cmd.Flags().String("type", "", "Infrastructure type: "+scaffold.JoinChoices(InfraTypes))
	cmd.Flags().StringSlice("provider", nil, "Provider (repeatable): "+scaffold.JoinChoices(Providers))
	cmd.Flags().String("module-name", "", "Go module name (auto-detected from go.mod if not provided)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("provider")
	scaffold.RegisterChoices(cmd, "type", InfraTypes)
	scaffold.RegisterChoices(cmd, "provider", Providers)

	return cmd
}

func generateInfra(ctx context.Context, opts InfraOptions) error {
	infraType, err := scaffold.Choose("type", opts.Type, InfraTypes)
	if err != nil {
		return err
	}
	providers, err := scaffold.ChooseAll("provider", opts.Providers, Providers)
	if err != nil {
		return err
	}
	if len(providers) == 0 {
		return scaffold.UsageError("at least one --provider is required (choose from: %s)", scaffold.JoinChoices(Providers))
	}

	s, err := opts.Open(ctx, scaffold.GoModule)
	if err != nil {
		return err
	}
	module, err := shared.ResolveModule(firstNonEmpty(opts.ModuleName, s.Config.ModuleName), s.Root)
	if err != nil {
		return scaffold.PreconditionError("%v", err)
	}
	layout, err := newGinLayout(module, s.Config.Gin)
	if err != nil {
		return err
	}
	dir, err := layout.Infrastructure.Sub(module, string(infraType))
	if err != nil {
		return err
	}
	data := infraData{Pkg: dir.Pkg, Dir: dir}

	return shared.Batch(s, providers, func(p Provider) error {
		key := InfraKey{Type: infraType, Provider: p}
		s.Reporter.Title("Adding %s infrastructure with %s provider", infraType, p)

		plan, err := infraCatalog.Generate(key, data)
		if err != nil {
			return err
		}
		if err := s.Execute(plan); err != nil {
			return err
		}
		s.Reporter.Success("%s/%s infrastructure added successfully", infraType, p)
		return nil
	})
}
