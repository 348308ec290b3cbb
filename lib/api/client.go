// Copyright 2026 The QuickDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package api provides a typed HTTP client for the QuickDesk REST
// backend. All network I/O in the client goes through this package: it
// attaches the bearer token when one is held, serializes JSON bodies,
// bounds response reads, and normalizes server rejections into
// RequestError values whose message comes from the server verbatim.
//
// The client performs no retries and holds no entity state beyond the
// token; callers own caching and retry policy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// maxResponseSize bounds JSON response body reads: 64 MB. Legitimate
// API responses are orders of magnitude smaller; the limit only exists
// so a misbehaving server cannot exhaust memory. Attachment downloads
// are not subject to it.
const maxResponseSize int64 = 64 << 20

// RequestError is a server rejection: the request reached the server
// and came back non-2xx (or with an unreadable body). Message is the
// server-provided explanation when one was present.
type RequestError struct {
	StatusCode int
	Message    string
}

func (requestError *RequestError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", requestError.StatusCode, requestError.Message)
}

// genericFailureMessage is shown when the server's error body carried
// no usable message, and for transport-level failures.
const genericFailureMessage = "Request failed. Please try again."

// ErrorMessage extracts the user-facing text for an API error: the
// server's message verbatim for rejections, a generic phrase for
// transport failures. Never returns an empty string for a non-nil
// error.
func ErrorMessage(err error) string {
	var requestError *RequestError
	if errors.As(err, &requestError) && requestError.Message != "" {
		return requestError.Message
	}
	if err != nil {
		return genericFailureMessage
	}
	return ""
}

// IsAuthError reports whether err is a server rejection for a missing,
// expired, or invalid token. The auth manager clears the stored token
// when initialization fails this way.
func IsAuthError(err error) bool {
	var requestError *RequestError
	return errors.As(err, &requestError) && requestError.StatusCode == http.StatusUnauthorized
}

// Client is the typed HTTP client for the QuickDesk backend.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// OnLoading, when set, is called with true before each request and
	// false after it settles — on success, server rejection, and
	// transport failure alike. With overlapping requests it reports
	// edge transitions only (0→1 and 1→0 in-flight).
	OnLoading func(active bool)

	mutex    sync.Mutex
	token    string
	inFlight int
}

// New creates a Client for the server at serverURL (scheme and host;
// the "/api" prefix is appended here). Timeout bounds each request.
func New(serverURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(serverURL, "/") + "/api",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewForTesting creates a Client pointed directly at a test server URL
// with no timeout, for use with httptest.Server.
func NewForTesting(serverURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(serverURL, "/") + "/api",
		httpClient: &http.Client{},
	}
}

// SetToken stores the bearer token attached to subsequent requests.
// An empty token detaches authentication.
func (client *Client) SetToken(token string) {
	client.mutex.Lock()
	defer client.mutex.Unlock()
	client.token = token
}

// Token returns the currently held bearer token, or empty.
func (client *Client) Token() string {
	client.mutex.Lock()
	defer client.mutex.Unlock()
	return client.token
}

// beginRequest and endRequest bracket every request so the loading
// indicator fires regardless of outcome. endRequest runs deferred,
// covering panics in decode paths as well.
func (client *Client) beginRequest() {
	client.mutex.Lock()
	client.inFlight++
	transition := client.inFlight == 1
	notify := client.OnLoading
	client.mutex.Unlock()
	if transition && notify != nil {
		notify(true)
	}
}

func (client *Client) endRequest() {
	client.mutex.Lock()
	client.inFlight--
	transition := client.inFlight == 0
	notify := client.OnLoading
	client.mutex.Unlock()
	if transition && notify != nil {
		notify(false)
	}
}

// do performs one JSON API round trip. requestBody is JSON-encoded
// when non-nil; responseTarget is JSON-decoded into when non-nil. A
// non-2xx status returns a *RequestError carrying the server's
// "message" field when the body has one.
func (client *Client) do(ctx context.Context, method, path string, requestBody, responseTarget any) error {
	client.beginRequest()
	defer client.endRequest()

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	client.authorize(request)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &RequestError{
			StatusCode: response.StatusCode,
			Message:    serverMessage(payload),
		}
	}

	if responseTarget != nil {
		if err := json.Unmarshal(payload, responseTarget); err != nil {
			return &RequestError{
				StatusCode: response.StatusCode,
				Message:    genericFailureMessage,
			}
		}
	}
	return nil
}

// authorize attaches the bearer header when a token is held.
func (client *Client) authorize(request *http.Request) {
	if token := client.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
}

// serverMessage extracts the "message" field from an error body,
// falling back to a generic phrase for empty or malformed bodies.
func serverMessage(payload []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return genericFailureMessage
}

// UploadAttachment uploads a file to a ticket as a multipart form.
// Bypasses JSON request encoding but still attaches the auth header
// and toggles the loading indicator.
func (client *Client) UploadAttachment(ctx context.Context, ticketID int, filename string, content io.Reader) (*Attachment, error) {
	client.beginRequest()
	defer client.endRequest()

	var formBuffer bytes.Buffer
	formWriter := multipart.NewWriter(&formBuffer)
	filePart, err := formWriter.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(filePart, content); err != nil {
		return nil, fmt.Errorf("reading upload content: %w", err)
	}
	if err := formWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing upload form: %w", err)
	}

	path := fmt.Sprintf("/tickets/%d/attachments", ticketID)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+path, &formBuffer)
	if err != nil {
		return nil, fmt.Errorf("building upload request: %w", err)
	}
	request.Header.Set("Content-Type", formWriter.FormDataContentType())
	client.authorize(request)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("uploading attachment: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("uploading attachment: reading response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &RequestError{
			StatusCode: response.StatusCode,
			Message:    serverMessage(payload),
		}
	}

	var result struct {
		Attachment Attachment `json:"attachment"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &RequestError{StatusCode: response.StatusCode, Message: genericFailureMessage}
	}
	return &result.Attachment, nil
}

// DownloadAttachment fetches an attachment's binary content. The
// caller owns closing the returned reader; the transfer counts as in
// flight for the loading indicator until then. Unlike JSON endpoints
// the body is streamed, not buffered.
func (client *Client) DownloadAttachment(ctx context.Context, attachmentID int) (io.ReadCloser, error) {
	client.beginRequest()

	path := fmt.Sprintf("/attachments/%d/download", attachmentID)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		client.endRequest()
		return nil, fmt.Errorf("building download request: %w", err)
	}
	client.authorize(request)

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.endRequest()
		return nil, fmt.Errorf("downloading attachment %d: %w", attachmentID, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
		response.Body.Close()
		client.endRequest()
		return nil, &RequestError{
			StatusCode: response.StatusCode,
			Message:    serverMessage(payload),
		}
	}
	return &downloadBody{ReadCloser: response.Body, client: client}, nil
}

// downloadBody defers the request's loading edge until the caller
// finishes streaming. Close is idempotent with respect to the edge.
type downloadBody struct {
	io.ReadCloser
	client *Client
	once   sync.Once
}

func (body *downloadBody) Close() error {
	err := body.ReadCloser.Close()
	body.once.Do(body.client.endRequest)
	return err
}

// encodeTicketQuery renders non-zero filters as a query string,
// prefixed with "?" when non-empty.
func encodeTicketQuery(filters TicketFilters) string {
	values := url.Values{}
	if filters.Search != "" {
		values.Set("search", filters.Search)
	}
	if filters.Status != "" {
		values.Set("status", filters.Status)
	}
	if filters.Priority != "" {
		values.Set("priority", filters.Priority)
	}
	if filters.AssignedTo != "" {
		values.Set("assigned_to", filters.AssignedTo)
	}
	if filters.SortBy != "" {
		values.Set("sort_by", filters.SortBy)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
