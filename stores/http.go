package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	o "github.com/launchdarkly/laws-harness/framework/opt"
)

// HTTPStore is a client for a StoreService, or for any other service that implements the same
// endpoints.
type HTTPStore struct {
	baseURL string
	status  ServiceStatus
	client  *http.Client
}

// ConnectHTTPStore polls the service's status endpoint until it responds or the timeout elapses.
// Progress is written to output so that a slow-starting service is visible on the console.
func ConnectHTTPStore(baseURL string, timeout time.Duration, output io.Writer) (*HTTPStore, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	fmt.Fprintf(output, "Connecting to store service at %s", baseURL)

	client := &http.Client{Timeout: 10 * time.Second}
	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := client.Get(baseURL + "/")
		if err == nil {
			fmt.Fprintln(output)
			data, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("store service returned status code %d", resp.StatusCode)
			}
			if readErr != nil {
				return nil, readErr
			}
			var status ServiceStatus
			if err := json.Unmarshal(data, &status); err != nil {
				return nil, fmt.Errorf("malformed status response from store service: %s", string(data))
			}
			fmt.Fprintf(output, "Store service is backed by %s (%s)\n", status.Name, status.DSN)
			return &HTTPStore{baseURL: baseURL, status: status, client: client}, nil
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

func (h *HTTPStore) Name() string { return "service" }

func (h *HTTPStore) DSN() string {
	return fmt.Sprintf("%s -> %s (%s)", h.baseURL, h.status.Name, h.status.DSN)
}

// Backend returns the name reported by the service for the store it is backed by.
func (h *HTTPStore) Backend() string { return h.status.Name }

func (h *HTTPStore) keyURL(key string) string {
	return h.baseURL + keysPathPrefix + url.PathEscape(key)
}

func (h *HTTPStore) do(ctx context.Context, op, method, key string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, h.keyURL(key), reader)
	if err != nil {
		return nil, opError(h, op, key, err)
	}
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, opError(h, op, key, err)
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, opError(h, op, key, err)
	}
	if resp.StatusCode >= 300 {
		msg := fmt.Sprintf("status %d", resp.StatusCode)
		if len(data) > 0 {
			msg += ": " + string(data)
		}
		return nil, opError(h, op, key, errors.New(msg))
	}
	return data, nil
}

func (h *HTTPStore) Get(ctx context.Context, key string) (o.Maybe[string], error) {
	data, err := h.do(ctx, "get", "GET", key, nil)
	if err != nil {
		return o.None[string](), err
	}
	var body ValueBody
	if err := json.Unmarshal(data, &body); err != nil {
		return o.None[string](), opError(h, "get", key, fmt.Errorf("malformed response: %w", err))
	}
	return body.Value, nil
}

func (h *HTTPStore) Put(ctx context.Context, key, value string) error {
	data, _ := json.Marshal(ValueBody{Value: o.Some(value)})
	_, err := h.do(ctx, "put", "PUT", key, data)
	return err
}

func (h *HTTPStore) Delete(ctx context.Context, key string) error {
	_, err := h.do(ctx, "delete", "DELETE", key, nil)
	return err
}

func (h *HTTPStore) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
