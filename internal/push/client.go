package push

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
)

// maxPayloadBytes is the encrypted-record ceiling push services accept.
const maxPayloadBytes = 4096

// Payload is the wire shape delivered to the browser's push handler, which
// renders it as a platform notification with the well-known icon resource.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag,omitempty"`
}

// Sender delivers one payload to one registered endpoint.
type Sender interface {
	Send(ctx context.Context, endpointPayload string, p Payload) error
}

// Client sends VAPID-authenticated, encrypted web-push messages.
type Client struct {
	publicKey  string
	privateKey string
	subscriber string
	ttl        int
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a web-push client. subscriber is the contact address
// announced to push services (webpush-go adds the mailto: scheme itself).
func NewClient(publicKey, privateKey, subscriber string, ttlSeconds int, logger *logger.Logger) *Client {
	return &Client{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
		ttl:        ttlSeconds,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Send encrypts the payload to the subscription's keys and posts it to the
// endpoint. Failures come back as *DeliveryError so callers can isolate and
// classify them per subscriber.
func (c *Client) Send(ctx context.Context, endpointPayload string, p Payload) error {
	sub, err := decodeSubscription(endpointPayload)
	if err != nil {
		// A blob we cannot decode can never be delivered to; same
		// treatment as a gone endpoint.
		return &DeliveryError{Kind: KindExpired, Err: err}
	}

	body, err := json.Marshal(p)
	if err != nil {
		return &DeliveryError{Kind: KindTransient, Endpoint: sub.Endpoint, Err: err}
	}
	if len(body) > maxPayloadBytes {
		return &DeliveryError{Kind: KindPayloadTooLarge, Endpoint: sub.Endpoint}
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, sub, &webpush.Options{
		HTTPClient:      c.httpClient,
		Subscriber:      c.subscriber,
		VAPIDPublicKey:  c.publicKey,
		VAPIDPrivateKey: c.privateKey,
		TTL:             c.ttl,
	})
	if err != nil {
		return &DeliveryError{Kind: KindTransient, Endpoint: sub.Endpoint, Err: err}
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if kind := classifyStatus(resp.StatusCode); kind != "" {
		return &DeliveryError{Kind: kind, StatusCode: resp.StatusCode, Endpoint: sub.Endpoint}
	}
	return nil
}

// decodeSubscription validates the opaque stored blob at the delivery
// boundary. Shape is checked nowhere earlier.
func decodeSubscription(endpointPayload string) (*webpush.Subscription, error) {
	var sub webpush.Subscription
	if err := json.Unmarshal([]byte(endpointPayload), &sub); err != nil {
		return nil, err
	}
	if sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		return nil, errMissingFields
	}
	return &sub, nil
}

type subscriptionError string

func (e subscriptionError) Error() string { return string(e) }

const errMissingFields = subscriptionError("subscription is missing endpoint or keys")
