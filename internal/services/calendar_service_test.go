package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestIsGone(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "not found", err: &googleapi.Error{Code: http.StatusNotFound}, want: true},
		{name: "gone", err: &googleapi.Error{Code: http.StatusGone}, want: true},
		{name: "wrapped not found", err: fmt.Errorf("delete event: %w", &googleapi.Error{Code: http.StatusNotFound}), want: true},
		{name: "rate limited", err: &googleapi.Error{Code: http.StatusTooManyRequests}, want: false},
		{name: "plain error mentioning 404", err: errors.New("dial tcp 10.0.4.4:443: connect: connection refused"), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isGone(tc.err); got != tc.want {
				t.Errorf("isGone(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
