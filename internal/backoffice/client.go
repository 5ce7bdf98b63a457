package backoffice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/farah-rezgui/ecume-admin/internal/logging"
)

const (
	// DefaultBaseURL is the development API address
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout bounds every request. The original dashboard issued
	// requests with no deadline at all, so a dead server hung the workflow
	// forever; an explicit timeout closes that gap.
	DefaultTimeout = 10 * time.Second
)

// API endpoint paths
const (
	PathListProducts = "/prod/getAllProduit"
	PathAddProduct   = "/prod/addProduit"
	PathListUsers    = "/user/getAllUser"
	PathListClients  = "/client/getAllClient"
	PathListOrders   = "/commande/getAllCommande"
	PathOrderStream  = "/ws/commande"
)

// Client performs requests against the Ecume back-office REST API.
// Every call takes a context so a closing view can cancel its own in-flight
// requests. Submissions are issued exactly once - no retries.
type Client struct {
	// BaseURL is the API base URL (e.g., "http://localhost:5000")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a client for the given API base URL.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the per-request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Ping performs a cheap reachability check against the API
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.getBody(ctx, PathListUsers)
	return err
}

// ListProducts fetches the full product collection.
// The result replaces any local copy wholesale - there is no pagination
// and no caching; every screen mount refetches.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	body, err := c.getBody(ctx, PathListProducts)
	if err != nil {
		return nil, err
	}
	return ParseProductList(body)
}

// ListUsers fetches the full user collection
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	body, err := c.getBody(ctx, PathListUsers)
	if err != nil {
		return nil, err
	}
	return ParseUserList(body)
}

// ListClients fetches the full client collection
func (c *Client) ListClients(ctx context.Context) ([]Customer, error) {
	body, err := c.getBody(ctx, PathListClients)
	if err != nil {
		return nil, err
	}
	return ParseClientList(body)
}

// ListOrders fetches the full order collection
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	body, err := c.getBody(ctx, PathListOrders)
	if err != nil {
		return nil, err
	}
	return ParseOrderList(body)
}

// SubmissionResult is the tagged outcome of one submission.
// It is never partially populated: Success carries the server's returned
// entity (possibly nil when the body omitted it), Failure carries the error.
type SubmissionResult struct {
	Success    bool
	StatusCode int
	Entity     *Product
	Err        *APIError
}

// newSuccessResult builds a success outcome
func newSuccessResult(statusCode int, entity *Product) *SubmissionResult {
	return &SubmissionResult{Success: true, StatusCode: statusCode, Entity: entity}
}

// newFailureResult builds a failure outcome
func newFailureResult(err *APIError) *SubmissionResult {
	return &SubmissionResult{Success: false, StatusCode: err.StatusCode, Err: err}
}

// CreateProduct submits a new product draft payload
func (c *Client) CreateProduct(ctx context.Context, payload *Payload) *SubmissionResult {
	return c.Submit(ctx, PathAddProduct, payload)
}

// Submit issues one POST request with the given payload and maps the
// response to a SubmissionResult. 2xx is Success; everything else is a
// Failure whose kind is inferred from the status range (or the transport
// failure). The caller keeps its draft on failure so the user can retry
// without re-entering data.
func (c *Client) Submit(ctx context.Context, path string, payload *Payload) *SubmissionResult {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload.Body))
	if err != nil {
		return newFailureResult(NewNetworkError("failed to create POST request", err))
	}
	req.Header.Set("Content-Type", payload.ContentType)

	logging.Debug("submitting payload",
		zap.String("path", path),
		zap.String("content_type", payload.ContentType),
		zap.Int("size", len(payload.Body)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return newFailureResult(NewNetworkError("POST request failed", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newFailureResult(NewNetworkError("failed to read response body", err))
	}

	logging.LogResponse(http.MethodPost, c.BaseURL+path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := parseErrorMessage(body)
		return newFailureResult(ClassifyStatus(resp.StatusCode, message))
	}

	entity, parseErr := ParseCreatedProduct(body)
	if parseErr != nil {
		apiErr, ok := parseErr.(*APIError)
		if !ok {
			apiErr = NewFormatError("failed to decode created entity", parseErr)
		}
		return newFailureResult(apiErr)
	}

	return newSuccessResult(resp.StatusCode, entity)
}

// getBody performs one GET request and returns the raw body for parsing.
// Non-2xx statuses are classified by range; the error message comes from
// the response body when the API provided one.
func (c *Client) getBody(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create GET request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("GET request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	logging.LogResponse(http.MethodGet, c.BaseURL+path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		message := parseErrorMessage(body)
		if message == "" {
			message = fmt.Sprintf("HTTP error %d", resp.StatusCode)
		}
		return nil, ClassifyStatus(resp.StatusCode, message)
	}

	return body, nil
}
