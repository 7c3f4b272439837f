package source

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/wayfinder/pkg/graphio"
	"github.com/matzehuels/wayfinder/pkg/search"
)

// Mongo reads adjacency from a MongoDB collection holding one document per
// link, shaped like {"from": "a", "to": "b", "cost": 1.5}. An index on the
// "from" field keeps expansion cheap on large graphs.
type Mongo struct {
	links *mongo.Collection
}

// NewMongo creates a source over an existing collection.
func NewMongo(links *mongo.Collection) *Mongo {
	return &Mongo{links: links}
}

// Expand returns the outgoing links of node, sorted by target ID.
// A node with no documents is a dead end.
func (s *Mongo) Expand(ctx context.Context, node string) ([]search.Link[string], error) {
	opts := options.Find().SetSort(bson.D{{Key: "to", Value: 1}})
	cur, err := s.links.Find(ctx, bson.M{"from": node}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: links of %s: %w", node, err)
	}

	var links []search.Link[string]
	if err := cur.All(ctx, &links); err != nil {
		return nil, fmt.Errorf("mongo: links of %s: %w", node, err)
	}
	return links, nil
}

// Seed replaces the collection contents with the graph's links and ensures
// the "from" index exists. Nodes without outgoing links need no documents.
func (s *Mongo) Seed(ctx context.Context, g graphio.Graph) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if _, err := s.links.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongo: seed: %w", err)
	}
	if len(g.Links) > 0 {
		docs := make([]any, len(g.Links))
		for i, l := range g.Links {
			docs[i] = l
		}
		if _, err := s.links.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("mongo: seed: %w", err)
		}
	}
	_, err := s.links.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "from", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("mongo: seed: %w", err)
	}
	return nil
}

var _ search.Expander[string] = (*Mongo)(nil)
