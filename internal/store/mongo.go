// Package store provides read access to the catalog and interaction
// collections. The engine never talks to Mongo directly; it is handed the
// raw slices these fetchers return.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/flicknest/backend/internal/models"
)

const (
	moviesCollection       = "movies"
	interactionsCollection = "interactions"
)

// Store wraps the Mongo client and the two databases the service reads.
type Store struct {
	client         *mongo.Client
	moviesDB       string
	interactionsDB string
	log            *zap.Logger
}

// Connect opens and pings the Mongo deployment.
func Connect(ctx context.Context, uri, moviesDB, interactionsDB string, log *zap.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	log.Info("Mongo store connected", zap.String("uri", uri))
	return &Store{
		client:         client,
		moviesDB:       moviesDB,
		interactionsDB: interactionsDB,
		log:            log,
	}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// FetchCatalog loads every movie document. An empty catalog is returned
// as an empty slice, not an error; the caller decides whether that is a
// precondition failure.
func (s *Store) FetchCatalog(ctx context.Context) ([]models.RawMovie, error) {
	cursor, err := s.client.Database(s.moviesDB).Collection(moviesCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer cursor.Close(ctx)

	movies := make([]models.RawMovie, 0)
	for cursor.Next(ctx) {
		var m models.RawMovie
		if err := cursor.Decode(&m); err != nil {
			// One undecodable document should not sink the catalog.
			s.log.Warn("skipping undecodable movie document", zap.Error(err))
			continue
		}
		movies = append(movies, m)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("movies cursor failed: %w", err)
	}
	return movies, nil
}

// FetchInteractions loads every rating event. An empty log is valid and
// forces cold-start mode for every user.
func (s *Store) FetchInteractions(ctx context.Context) ([]models.RawInteraction, error) {
	cursor, err := s.client.Database(s.interactionsDB).Collection(interactionsCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]models.RawInteraction, 0)
	for cursor.Next(ctx) {
		var ev models.RawInteraction
		if err := cursor.Decode(&ev); err != nil {
			s.log.Warn("skipping undecodable interaction document", zap.Error(err))
			continue
		}
		events = append(events, ev)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("interactions cursor failed: %w", err)
	}
	return events, nil
}
