package fetcher

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"parking-analytics/config"
	"parking-analytics/models"
	"parking-analytics/utils"
)

// NewClient opens the Firestore client used for the whole run. When
// FIRESTORE_EMULATOR_HOST is set the client library talks to the emulator
// and credentials are not required.
func NewClient(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: new client: %w", err)
	}
	return client, nil
}

// FirestoreFetcher reads lot documents from a Firestore collection.
type FirestoreFetcher struct {
	client     *firestore.Client
	collection string
	logger     *utils.Logger
}

// New creates a fetcher over the given collection.
func New(client *firestore.Client, collection string, logger *utils.Logger) *FirestoreFetcher {
	return &FirestoreFetcher{client: client, collection: collection, logger: logger}
}

// FetchLots streams every document in the collection and returns the raw
// field maps in iteration order.
func (f *FirestoreFetcher) FetchLots(ctx context.Context) ([]models.LotRecord, error) {
	f.logger.Info("[firestore] Reading collection %q", f.collection)

	iter := f.client.Collection(f.collection).Documents(ctx)
	defer iter.Stop()

	var lots []models.LotRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore: read %q: %w", f.collection, err)
		}
		f.logger.Debug("[firestore] Document %s", doc.Ref.ID)
		lots = append(lots, models.LotRecord(doc.Data()))
	}

	return lots, nil
}
