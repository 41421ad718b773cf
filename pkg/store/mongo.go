package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	tocerr "github.com/matzehuels/tocview/pkg/errors"
	"github.com/matzehuels/tocview/pkg/toc"
)

// Default MongoDB locations.
const (
	DefaultMongoDatabase   = "tocview"
	DefaultMongoCollection = "diagrams"
)

// MongoStore keeps one document per diagram with the name as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig locates the diagram collection.
type MongoConfig struct {
	URI        string
	Database   string // Defaults to DefaultMongoDatabase
	Collection string // Defaults to DefaultMongoCollection
}

type mongoDiagram struct {
	Name      string        `bson:"_id"`
	Columns   []mongoColumn `bson:"columns"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

type mongoColumn struct {
	Title string      `bson:"title"`
	Nodes []mongoNode `bson:"nodes"`
}

type mongoNode struct {
	ID            string   `bson:"id"`
	Title         string   `bson:"title"`
	Text          string   `bson:"text,omitempty"`
	ConnectionIDs []string `bson:"connection_ids"`
}

// NewMongoStore connects to MongoDB and pings the primary.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, tocerr.Wrap(tocerr.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, tocerr.Wrap(tocerr.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// List returns all diagram names.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	raw, err := s.coll.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, tocerr.Wrap(tocerr.ErrCodeInternal, err, "list diagrams")
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Get loads the diagram called name.
func (s *MongoStore) Get(ctx context.Context, name string) (toc.Data, error) {
	if err := tocerr.ValidateDiagramName(name); err != nil {
		return toc.Data{}, err
	}
	var doc mongoDiagram
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return toc.Data{}, tocerr.New(tocerr.ErrCodeDiagramNotFound, "diagram not found: %s", name)
	}
	if err != nil {
		return toc.Data{}, tocerr.Wrap(tocerr.ErrCodeInternal, err, "load diagram %s", name)
	}
	return doc.toData(), nil
}

// Put upserts the diagram called name.
func (s *MongoStore) Put(ctx context.Context, name string, d toc.Data) error {
	if err := tocerr.ValidateDiagramName(name); err != nil {
		return err
	}
	doc := fromData(name, d)
	doc.UpdatedAt = time.Now().UTC()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return tocerr.Wrap(tocerr.ErrCodeInternal, err, "save diagram %s", name)
	}
	return nil
}

// Delete removes the diagram called name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := tocerr.ValidateDiagramName(name); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return tocerr.Wrap(tocerr.ErrCodeInternal, err, "delete diagram %s", name)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

func fromData(name string, d toc.Data) mongoDiagram {
	doc := mongoDiagram{Name: name, Columns: make([]mongoColumn, len(d.Columns))}
	for i, c := range d.Columns {
		nodes := make([]mongoNode, len(c.Nodes))
		for j, n := range c.Nodes {
			ids := n.ConnectionIDs
			if ids == nil {
				ids = []string{}
			}
			nodes[j] = mongoNode{ID: n.ID, Title: n.Title, Text: n.Text, ConnectionIDs: ids}
		}
		doc.Columns[i] = mongoColumn{Title: c.Title, Nodes: nodes}
	}
	return doc
}

func (doc mongoDiagram) toData() toc.Data {
	d := toc.Data{Columns: make([]toc.Column, len(doc.Columns))}
	for i, c := range doc.Columns {
		nodes := make([]toc.Node, len(c.Nodes))
		for j, n := range c.Nodes {
			nodes[j] = toc.Node{ID: n.ID, Title: n.Title, Text: n.Text, ConnectionIDs: n.ConnectionIDs}
		}
		d.Columns[i] = toc.Column{Title: c.Title, Nodes: nodes}
	}
	return d
}

var _ Store = (*MongoStore)(nil)
