// Package store talks to the remote REST collections that own the student and
// teacher records. Every call is a single round trip without retries.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/pkg/config"
)

// Operation names reported in errors and metrics.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpRemove = "remove"
)

// Observer receives the outcome of every round trip.
type Observer interface {
	ObserveStoreRequest(entity, op string, status int, duration time.Duration)
}

// RequestError is returned for transport failures and non-2xx responses. It
// only says which entity and operation failed.
type RequestError struct {
	Entity     string
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	verb := e.Op
	switch e.Op {
	case OpList, OpGet:
		verb = "fetch"
	case OpCreate:
		verb = "add"
	case OpRemove:
		verb = "delete"
	}
	return fmt.Sprintf("failed to %s %s", verb, e.Entity)
}

func (e *RequestError) Unwrap() error { return e.Err }

// NotFound reports a 404 from the store.
func (e *RequestError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// Client holds the connection settings shared by all collections.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
	logger   *zap.Logger
}

// NewClient builds a store client for the configured host.
func NewClient(cfg config.StoreConfig, observer Observer, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		observer: observer,
		logger:   logger,
	}
}

func (c *Client) do(ctx context.Context, entity, op, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Entity: entity, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	status := http.StatusServiceUnavailable
	if resp != nil {
		status = resp.StatusCode
	}
	if c.observer != nil {
		c.observer.ObserveStoreRequest(entity, op, status, duration)
	}

	if err != nil {
		c.logger.Warn("store request failed",
			zap.String("entity", entity), zap.String("op", op), zap.Error(err))
		return &RequestError{Entity: entity, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn("store responded with error status",
			zap.String("entity", entity), zap.String("op", op), zap.Int("status", resp.StatusCode))
		return &RequestError{Entity: entity, Op: op, StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Entity: entity, Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// Collection is the typed accessor for one entity collection.
type Collection[T any] struct {
	client *Client
	entity string
}

// NewCollection binds a collection name such as "students".
func NewCollection[T any](client *Client, entity string) *Collection[T] {
	return &Collection[T]{client: client, entity: entity}
}

// Entity returns the collection name.
func (c *Collection[T]) Entity() string { return c.entity }

// List fetches the whole collection.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := c.client.do(ctx, c.entity, OpList, http.MethodGet, "/"+c.entity, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one record.
func (c *Collection[T]) Get(ctx context.Context, id models.ID) (T, error) {
	var out T
	err := c.client.do(ctx, c.entity, OpGet, http.MethodGet, c.itemPath(id), nil, &out)
	return out, err
}

// Create posts a new record and returns it with the store-assigned id.
func (c *Collection[T]) Create(ctx context.Context, payload T) (T, error) {
	var out T
	body, err := encodeWritePayload(payload, true)
	if err != nil {
		return out, &RequestError{Entity: c.entity, Op: OpCreate, Err: err}
	}
	err = c.client.do(ctx, c.entity, OpCreate, http.MethodPost, "/"+c.entity, body, &out)
	return out, err
}

// Update replaces a record and returns the stored version.
func (c *Collection[T]) Update(ctx context.Context, id models.ID, payload T) (T, error) {
	var out T
	body, err := encodeWritePayload(payload, false)
	if err != nil {
		return out, &RequestError{Entity: c.entity, Op: OpUpdate, Err: err}
	}
	err = c.client.do(ctx, c.entity, OpUpdate, http.MethodPut, c.itemPath(id), body, &out)
	return out, err
}

// Remove deletes a record.
func (c *Collection[T]) Remove(ctx context.Context, id models.ID) error {
	return c.client.do(ctx, c.entity, OpRemove, http.MethodDelete, c.itemPath(id), nil, nil)
}

func (c *Collection[T]) itemPath(id models.ID) string {
	return "/" + c.entity + "/" + url.PathEscape(string(id))
}

// encodeWritePayload is the only place records are encoded for the store.
// Gender is always written in the boolean form legacy records use.
func encodeWritePayload(payload interface{}, dropID bool) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	if g, ok := fields["gender"]; ok {
		fields["gender"] = models.NormalizeGender(g) == models.GenderMale
	}
	if dropID {
		delete(fields, "id")
	}
	return json.Marshal(fields)
}
