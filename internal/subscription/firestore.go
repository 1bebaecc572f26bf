package subscription

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// CollectionName is the Firestore collection for push registrations.
	CollectionName = "subscriptions"
)

// Store is the persistence contract for push registrations.
type Store interface {
	Save(ctx context.Context, sub *Subscription) error
	All(ctx context.Context) ([]Subscription, error)
}

// FirestoreStore persists one document per registration.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed subscription store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Save appends a registration. Existing registrations are never updated in
// place; pruning of dead endpoints is intentionally not done here.
func (f *FirestoreStore) Save(ctx context.Context, sub *Subscription) error {
	if f == nil || f.client == nil {
		return status.Error(codes.Internal, "firestore client is nil")
	}
	if sub == nil || sub.Payload == "" {
		return status.Error(codes.InvalidArgument, "subscription payload must be non-empty")
	}

	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	docRef := f.client.Collection(CollectionName).Doc(sub.ID)
	if _, err := docRef.Create(ctx, sub); err != nil {
		return status.Errorf(codes.Internal, "failed to save subscription: %v", err)
	}
	return nil
}

// All returns every registration, oldest first.
func (f *FirestoreStore) All(ctx context.Context) ([]Subscription, error) {
	if f == nil || f.client == nil {
		return nil, status.Error(codes.Internal, "firestore client is nil")
	}

	snapshot, err := f.client.Collection(CollectionName).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to list subscriptions: %v", err)
	}

	subs := make([]Subscription, 0, len(snapshot))
	for _, doc := range snapshot {
		var sub Subscription
		if err := doc.DataTo(&sub); err != nil {
			return nil, status.Errorf(codes.Internal, "failed to parse subscription: %v", err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
