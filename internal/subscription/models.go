package subscription

import (
	"time"
)

// Subscription is one push-endpoint registration. The browser's subscription
// object is kept as an opaque serialized blob; its shape is only validated at
// the push-delivery boundary. Re-subscribing appends a new record, so the
// store may hold duplicates for the same endpoint.
type Subscription struct {
	ID        string    `json:"id" firestore:"id"`
	Payload   string    `json:"subscription" firestore:"subscription"`
	UserName  string    `json:"userName,omitempty" firestore:"userName,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
