package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/wayfinder/pkg/errors"
	"github.com/matzehuels/wayfinder/pkg/graphio"
	"github.com/matzehuels/wayfinder/pkg/heuristic"
	"github.com/matzehuels/wayfinder/pkg/httputil"
	"github.com/matzehuels/wayfinder/pkg/search"
	"github.com/matzehuels/wayfinder/pkg/source"
)

// sourceOpts selects where a command reads its graph from. Exactly one
// backend may be chosen; --graph is the default path for local files.
type sourceOpts struct {
	graph   string // JSON graph file
	redis   bool   // Redis source from config
	mongo   bool   // MongoDB source from config
	url     string // HTTP source base URL
	noCache bool   // bypass the expansion cache
}

// register adds the shared source selection flags to cmd.
func (o *sourceOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.graph, "graph", "g", "", "JSON graph file to search")
	cmd.Flags().BoolVar(&o.redis, "redis", false, "read links from Redis (configured via [redis])")
	cmd.Flags().BoolVar(&o.mongo, "mongo", false, "read links from MongoDB (configured via [mongo])")
	cmd.Flags().StringVar(&o.url, "url", "", "read links from an HTTP graph service")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "bypass the expansion cache")
}

// openedSource bundles an expander with the extras a backend may provide.
type openedSource struct {
	expander search.Expander[string]
	coords   heuristic.Coords // nil when the backend carries no positions
	close    func()
}

// openSource builds the expander selected by the flags. Remote backends are
// wrapped in the expansion cache unless --no-cache is set; the file-backed
// source is already local and needs none.
func (c *CLI) openSource(ctx context.Context, cfg Config, opts sourceOpts) (*openedSource, error) {
	chosen := 0
	for _, set := range []bool{opts.graph != "", opts.redis, opts.mongo, opts.url != ""} {
		if set {
			chosen++
		}
	}
	if chosen == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no graph source: use --graph, --redis, --mongo, or --url")
	}
	if chosen > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "choose exactly one of --graph, --redis, --mongo, --url")
	}

	switch {
	case opts.graph != "":
		g, err := graphio.ReadFile(opts.graph)
		if err != nil {
			return nil, err
		}
		mem := source.NewMemory(g)
		return &openedSource{expander: mem, coords: mem.Coord, close: func() {}}, nil

	case opts.redis:
		if cfg.Redis.Addr == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "--redis requires redis.addr in the config file")
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		src, err := c.withCache(cfg, opts, source.NewRedis(client, cfg.Redis.Prefix), "redis:"+cfg.Redis.Addr)
		if err != nil {
			client.Close()
			return nil, err
		}
		return &openedSource{expander: src, close: func() { client.Close() }}, nil

	case opts.mongo:
		if cfg.Mongo.URI == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "--mongo requires mongo.uri in the config file")
		}
		client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to MongoDB")
		}
		db := cfg.Mongo.Database
		if db == "" {
			db = appName
		}
		coll := cfg.Mongo.Collection
		if coll == "" {
			coll = "links"
		}
		src, err := c.withCache(cfg, opts, source.NewMongo(client.Database(db).Collection(coll)), "mongo:"+db+"."+coll)
		if err != nil {
			client.Disconnect(context.Background())
			return nil, err
		}
		return &openedSource{expander: src, close: func() { client.Disconnect(context.Background()) }}, nil

	default:
		client := httputil.NewClient(cfg.httpTimeout())
		src, err := c.withCache(cfg, opts, source.NewHTTP(opts.url, client), "http:"+opts.url)
		if err != nil {
			return nil, err
		}
		return &openedSource{expander: src, close: func() {}}, nil
	}
}

func (c *CLI) withCache(cfg Config, opts sourceOpts, inner search.Expander[string], scope string) (search.Expander[string], error) {
	cch, err := newCache(cfg, opts.noCache)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return source.NewCached(inner, cch, scope, cfg.cacheTTL()), nil
}

// buildEstimator turns the --heuristic/--weight flags into an estimator.
// Position-based heuristics need node coordinates, which only the file
// backend provides.
func buildEstimator(name string, weight float64, goal string, coords heuristic.Coords) (search.Estimator[string], error) {
	var est search.Estimator[string]
	switch name {
	case "", "none":
		return nil, nil
	case "euclidean":
		est = heuristic.EuclideanTo(goal, coords)
	case "manhattan":
		est = heuristic.ManhattanTo(goal, coords)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown heuristic %q (euclidean, manhattan, none)", name)
	}
	if coords == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--heuristic %s needs node positions: use a --graph file source", name)
	}
	if weight != 0 && weight != 1 {
		est = heuristic.Scale(est, weight)
	}
	return est, nil
}
