package push

import (
	"fmt"
)

// ErrorKind classifies a failed delivery.
type ErrorKind string

const (
	// KindExpired means the endpoint is no longer valid (HTTP 404/410, or a
	// blob that cannot be decoded into a usable subscription).
	KindExpired ErrorKind = "expired"
	// KindTransient covers network failures, 429 and 5xx responses.
	KindTransient ErrorKind = "transient"
	// KindPayloadTooLarge means the payload exceeds what the push service
	// accepts (pre-flight size check or HTTP 413).
	KindPayloadTooLarge ErrorKind = "payload_too_large"
)

// DeliveryError is a per-subscription failure. Deliveries are isolated: a
// DeliveryError for one subscriber never aborts the fan-out to the rest.
type DeliveryError struct {
	Kind       ErrorKind
	StatusCode int
	Endpoint   string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("push delivery failed (%s, status %d)", e.Kind, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("push delivery failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("push delivery failed (%s)", e.Kind)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// classifyStatus maps a push-service HTTP status to an error kind, or "" for
// success.
func classifyStatus(code int) ErrorKind {
	switch {
	case code >= 200 && code < 300:
		return ""
	case code == 404 || code == 410:
		return KindExpired
	case code == 413:
		return KindPayloadTooLarge
	default:
		// 429, 5xx and anything unexpected: worth retrying tomorrow.
		return KindTransient
	}
}
