package push

import (
	"errors"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		code int
		want ErrorKind
	}{
		{code: 200, want: ""},
		{code: 201, want: ""},
		{code: 404, want: KindExpired},
		{code: 410, want: KindExpired},
		{code: 413, want: KindPayloadTooLarge},
		{code: 429, want: KindTransient},
		{code: 500, want: KindTransient},
		{code: 502, want: KindTransient},
		{code: 400, want: KindTransient},
	}

	for _, tt := range tests {
		if got := classifyStatus(tt.code); got != tt.want {
			t.Errorf("classifyStatus(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestDecodeSubscription(t *testing.T) {
	tests := []struct {
		name    string
		blob    string
		wantErr bool
	}{
		{
			name: "well-formed",
			blob: `{"endpoint":"https://push.example.com/send/abc","keys":{"p256dh":"pubkey","auth":"secret"}}`,
		},
		{
			name:    "not json",
			blob:    `<subscription/>`,
			wantErr: true,
		},
		{
			name:    "missing keys",
			blob:    `{"endpoint":"https://push.example.com/send/abc"}`,
			wantErr: true,
		},
		{
			name:    "missing endpoint",
			blob:    `{"keys":{"p256dh":"pubkey","auth":"secret"}}`,
			wantErr: true,
		},
		{
			name:    "empty",
			blob:    ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := decodeSubscription(tt.blob)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sub.Endpoint == "" {
				t.Error("decoded subscription has empty endpoint")
			}
		})
	}
}

func TestDeliveryErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &DeliveryError{Kind: KindTransient, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("DeliveryError does not unwrap to its cause")
	}

	var derr *DeliveryError
	if !errors.As(error(err), &derr) {
		t.Error("errors.As failed for *DeliveryError")
	}
	if derr.Kind != KindTransient {
		t.Errorf("kind = %q, want %q", derr.Kind, KindTransient)
	}
}
