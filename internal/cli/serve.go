package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padring/pkg/cache"
	"github.com/matzehuels/padring/pkg/observability"
	"github.com/matzehuels/padring/pkg/pipeline"
	"github.com/matzehuels/padring/pkg/server"
	"github.com/matzehuels/padring/pkg/store"
)

// Environment variables read by the serve command.
const (
	envRedisAddr = "PADRING_REDIS_ADDR"
	envMongoURI  = "PADRING_MONGO_URI"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr      string
	redisAddr string
	mongoURI  string
	storeDir  string
	keyPrefix string
	memory    bool
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		redisAddr: os.Getenv(envRedisAddr),
		mongoURI:  os.Getenv(envMongoURI),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Layouts and artifacts are cached in Redis when --redis is set and on disk
otherwise. Layout documents are stored in MongoDB when --mongo is set, in
memory with --memory, and as files under --store-dir otherwise.

The Redis address and MongoDB URI default to $` + envRedisAddr + ` and
$` + envMongoURI + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", opts.redisAddr, "Redis address for the cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", opts.mongoURI, "MongoDB URI for layout storage")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory for stored layouts (default: ~/.local/share/padring/layouts)")
	cmd.Flags().StringVar(&opts.keyPrefix, "key-prefix", "", "prefix for cache keys, to share a cache between deployments")
	cmd.Flags().BoolVar(&opts.memory, "memory", false, "keep layouts in memory only")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	ch, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if opts.keyPrefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), opts.keyPrefix)
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	return server.New(runner, st, c.Logger).Run(ctx, opts.addr)
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.redisAddr != "" {
		ch, err := cache.NewRedisCache(ctx, opts.redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", opts.redisAddr)
		return ch, nil
	}
	ch, err := newCache(false)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return ch, nil
}

func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch {
	case opts.mongoURI != "":
		st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Info("using mongo store")
		return st, nil
	case opts.memory:
		c.Logger.Info("using in-memory store")
		return store.NewMemoryStore(), nil
	}

	dir := opts.storeDir
	if dir == "" {
		d, err := layoutsDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	st, err := store.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	c.Logger.Info("using file store", "dir", st.Dir())
	return st, nil
}
