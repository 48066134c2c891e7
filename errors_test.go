package mirra

import (
	"errors"
	"testing"
)

func TestErrorString(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  &Error{Kind: KindTransport, Message: "request failed: dial tcp"},
			want: "mirra: request failed: dial tcp",
		},
		{
			name: "code and status",
			err:  &Error{Kind: KindAPI, Message: "agent not found", Code: "not_found", StatusCode: 404},
			want: "mirra: agent not found (code=not_found, status=404)",
		},
		{
			name: "status only",
			err:  &Error{Kind: KindInvalidResponse, Message: "invalid JSON response from API", StatusCode: 502},
			want: "mirra: invalid JSON response from API (status=502)",
		},
		{
			name: "code only",
			err:  &Error{Kind: KindAPI, Message: "nope", Code: "denied"},
			want: "mirra: nope (code=denied)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := transportError(cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the transport cause")
	}
	if err.Kind != KindTransport {
		t.Errorf("got kind %q, want %q", err.Kind, KindTransport)
	}
}

func TestInvalidResponseErrorCarriesStatus(t *testing.T) {
	err := invalidResponseError(404)
	if err.StatusCode != 404 {
		t.Errorf("got status %d, want 404", err.StatusCode)
	}
	if err.Kind != KindInvalidResponse {
		t.Errorf("got kind %q, want %q", err.Kind, KindInvalidResponse)
	}
}
