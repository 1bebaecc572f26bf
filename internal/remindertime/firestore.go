package remindertime

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
)

const (
	// CollectionName is the Firestore collection for reminder trigger times.
	CollectionName = "reminderTimes"
)

// Store is the persistence contract the service and scheduler read through.
type Store interface {
	Get(ctx context.Context) (Times, error)
	Put(ctx context.Context, rt ReminderTime) error
}

// FirestoreStore persists one document per slot, keyed by the slot name.
type FirestoreStore struct {
	client   *firestore.Client
	defaults Times
}

// NewFirestoreStore creates the store. The defaults are written on first read
// when a slot has no document yet.
func NewFirestoreStore(client *firestore.Client, defaults Times) *FirestoreStore {
	return &FirestoreStore{client: client, defaults: defaults}
}

// Get reads both slot documents, creating defaulted records for any that are
// missing. The defaults therefore become visible to later readers too.
func (f *FirestoreStore) Get(ctx context.Context) (Times, error) {
	if f == nil || f.client == nil {
		return Times{}, status.Error(codes.Internal, "firestore client is nil")
	}

	var times Times
	for _, slot := range routine.Slots() {
		rt, err := f.getSlot(ctx, slot)
		if err != nil {
			return Times{}, err
		}
		if slot == routine.SlotEvening {
			times.Evening = rt
		} else {
			times.Morning = rt
		}
	}
	return times, nil
}

func (f *FirestoreStore) getSlot(ctx context.Context, slot routine.Slot) (ReminderTime, error) {
	docRef := f.client.Collection(CollectionName).Doc(string(slot))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			rt := f.defaults.ForSlot(slot)
			if _, err := docRef.Set(ctx, rt); err != nil {
				return ReminderTime{}, status.Errorf(codes.Internal, "failed to create default reminder time: %v", err)
			}
			return rt, nil
		}
		return ReminderTime{}, status.Errorf(codes.Internal, "failed to get reminder time: %v", err)
	}

	var rt ReminderTime
	if err := doc.DataTo(&rt); err != nil {
		return ReminderTime{}, status.Errorf(codes.Internal, "failed to parse reminder time: %v", err)
	}
	return rt, nil
}

// Put upserts the document for the record's slot.
func (f *FirestoreStore) Put(ctx context.Context, rt ReminderTime) error {
	if f == nil || f.client == nil {
		return status.Error(codes.Internal, "firestore client is nil")
	}
	if !rt.TimeOfDay.Valid() {
		return status.Errorf(codes.InvalidArgument, "unknown time of day: %q", rt.TimeOfDay)
	}

	docRef := f.client.Collection(CollectionName).Doc(string(rt.TimeOfDay))
	if _, err := docRef.Set(ctx, rt); err != nil {
		return status.Errorf(codes.Internal, "failed to upsert reminder time: %v", err)
	}
	return nil
}
