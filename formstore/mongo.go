// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package formstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/danielhkuo/quickly-form/models"
)

const formsCollection = "forms"

// MongoStore reads form definitions from the document database the form
// builder writes to.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// formDocument accepts both ObjectID and string _id values.
type formDocument struct {
	ID          bson.RawValue `bson:"_id"`
	models.Form `bson:",inline"`
}

func (d formDocument) toForm() models.Form {
	f := d.Form
	if oid, ok := d.ID.ObjectIDOK(); ok {
		f.ID = oid.Hex()
	} else if s, ok := d.ID.StringValueOK(); ok {
		f.ID = s
	}
	return f
}

func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(formsCollection),
	}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) GetByFormKey(ctx context.Context, formKey int) (*models.Form, error) {
	var doc formDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "formKey", Value: formKey}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load form %d: %w", formKey, err)
	}
	f := doc.toForm()
	return &f, nil
}

func (s *MongoStore) ListPublished(ctx context.Context) ([]models.Form, error) {
	cur, err := s.coll.Find(ctx,
		bson.D{{Key: "status", Value: models.StatusPublished}},
		options.Find().SetSort(bson.D{{Key: "formKey", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list published forms: %w", err)
	}

	var docs []formDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode forms: %w", err)
	}

	out := make([]models.Form, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toForm())
	}
	return out, nil
}

// Put upserts a form by form key. The form builder owns this collection;
// Put exists for seeding and tests.
func (s *MongoStore) Put(ctx context.Context, f models.Form) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "formKey", Value: f.FormKey}},
		f,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to store form %d: %w", f.FormKey, err)
	}
	return nil
}
