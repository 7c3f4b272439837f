package source

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/wayfinder/pkg/graphio"
	"github.com/matzehuels/wayfinder/pkg/search"
)

// Redis reads adjacency from Redis. Each node's outgoing links live in the
// hash "<prefix>:links:<node>" with the target node as field and the cost as
// value; the node list itself is the set "<prefix>:nodes".
//
// Hash field order is unspecified in Redis, so Expand sorts links by target
// to keep searches deterministic.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a source over an existing client. prefix defaults to
// "wayfinder" when empty.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "wayfinder"
	}
	return &Redis{client: client, prefix: prefix}
}

// Expand returns the outgoing links of node, sorted by target ID.
// A node with no hash is a dead end.
func (s *Redis) Expand(ctx context.Context, node string) ([]search.Link[string], error) {
	fields, err := s.client.HGetAll(ctx, s.linksKey(node)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: links of %s: %w", node, err)
	}

	links := make([]search.Link[string], 0, len(fields))
	for to, raw := range fields {
		cost, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("redis: link %s→%s has cost %q: %w", node, to, raw, err)
		}
		links = append(links, search.Link[string]{From: node, To: to, Cost: cost})
	}
	slices.SortFunc(links, func(a, b search.Link[string]) int {
		switch {
		case a.To < b.To:
			return -1
		case a.To > b.To:
			return 1
		}
		return 0
	})
	return links, nil
}

// Seed loads a graph into Redis, replacing any links already stored for the
// graph's nodes.
func (s *Redis) Seed(ctx context.Context, g graphio.Graph) error {
	if err := g.Validate(); err != nil {
		return err
	}
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, n := range g.Nodes {
			pipe.Del(ctx, s.linksKey(n.ID))
			pipe.SAdd(ctx, s.nodesKey(), n.ID)
		}
		for _, l := range g.Links {
			pipe.HSet(ctx, s.linksKey(l.From), l.To, strconv.FormatFloat(l.Cost, 'g', -1, 64))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: seed: %w", err)
	}
	return nil
}

// Clear removes all seeded data under the source's prefix.
func (s *Redis) Clear(ctx context.Context) error {
	nodes, err := s.client.SMembers(ctx, s.nodesKey()).Result()
	if err != nil {
		return fmt.Errorf("redis: clear: %w", err)
	}
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, n := range nodes {
			pipe.Del(ctx, s.linksKey(n))
		}
		pipe.Del(ctx, s.nodesKey())
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: clear: %w", err)
	}
	return nil
}

func (s *Redis) linksKey(node string) string { return s.prefix + ":links:" + node }
func (s *Redis) nodesKey() string            { return s.prefix + ":nodes" }

var _ search.Expander[string] = (*Redis)(nil)
