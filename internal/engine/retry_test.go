package engine

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

var testRetryConfig = RetryConfig{MaxRetries: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond, Multiplier: 2}

func httpResp(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(""))}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"http 429", &httpStatusError{429}, true},
		{"http 502", &httpStatusError{502}, true},
		{"http 503", &httpStatusError{503}, true},
		{"regular error", errors.New("something"), false},
		{"timeout", &net.DNSError{IsTimeout: true}, true},
		{"op error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRetryableStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !isRetryableStatus(code) {
			t.Errorf("expected %d retryable", code)
		}
	}
	for _, code := range []int{200, 301, 400, 403, 404} {
		if isRetryableStatus(code) {
			t.Errorf("expected %d not retryable", code)
		}
	}
}

func TestRetryHTTPSuccess(t *testing.T) {
	calls := 0
	resp, err := RetryHTTP(context.Background(), testRetryConfig, func() (*http.Response, error) {
		calls++
		return httpResp(200), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryHTTPEventualSuccess(t *testing.T) {
	calls := 0
	resp, err := RetryHTTP(context.Background(), testRetryConfig, func() (*http.Response, error) {
		calls++
		if calls < 3 {
			return httpResp(503), nil
		}
		return httpResp(200), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryHTTPClientErrorNotRetried(t *testing.T) {
	// 404 is not retryable; the response is returned as-is for the caller.
	calls := 0
	resp, err := RetryHTTP(context.Background(), testRetryConfig, func() (*http.Response, error) {
		calls++
		return httpResp(404), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryHTTPNonRetryableError(t *testing.T) {
	calls := 0
	_, err := RetryHTTP(context.Background(), testRetryConfig, func() (*http.Response, error) {
		calls++
		return nil, errors.New("permanent")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("non-retryable error should not retry, got %d calls", calls)
	}
}

func TestRetryHTTPExhausted(t *testing.T) {
	calls := 0
	_, err := RetryHTTP(context.Background(), testRetryConfig, func() (*http.Response, error) {
		calls++
		return httpResp(502), nil
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != testRetryConfig.MaxRetries+1 {
		t.Errorf("expected %d calls, got %d", testRetryConfig.MaxRetries+1, calls)
	}
}

func TestRetryHTTPContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RetryHTTP(ctx, testRetryConfig, func() (*http.Response, error) {
		return httpResp(503), nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
