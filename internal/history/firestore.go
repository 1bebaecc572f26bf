package history

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// CollectionName is the Firestore collection for task history.
	CollectionName = "taskHistory"
)

// Store is the persistence contract for history entries.
type Store interface {
	Save(ctx context.Context, entry *Entry) error
	ByUser(ctx context.Context, userID string) ([]Entry, error)
}

// FirestoreStore appends one document per saved entry.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed history store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Save appends an entry. Entries are immutable once written.
func (f *FirestoreStore) Save(ctx context.Context, entry *Entry) error {
	if f == nil || f.client == nil {
		return status.Error(codes.Internal, "firestore client is nil")
	}
	if entry == nil || entry.UserID == "" {
		return status.Error(codes.InvalidArgument, "entry and userId must be non-empty")
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	docRef := f.client.Collection(CollectionName).Doc(entry.ID)
	if _, err := docRef.Create(ctx, entry); err != nil {
		return status.Errorf(codes.Internal, "failed to save history entry: %v", err)
	}
	return nil
}

// ByUser returns a user's entries, most recent first.
func (f *FirestoreStore) ByUser(ctx context.Context, userID string) ([]Entry, error) {
	if f == nil || f.client == nil {
		return nil, status.Error(codes.Internal, "firestore client is nil")
	}
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "userId must be non-empty")
	}

	snapshot, err := f.client.Collection(CollectionName).
		Where("userId", "==", userID).
		OrderBy("completedAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to query history: %v", err)
	}

	entries := make([]Entry, 0, len(snapshot))
	for _, doc := range snapshot {
		var entry Entry
		if err := doc.DataTo(&entry); err != nil {
			return nil, status.Errorf(codes.Internal, "failed to parse history entry: %v", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
