/* Copyright 2025 Chronicle Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package client provides the HTTP client of the chronicle server API and
// the data structures for its requests and responses
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/chronicle/chronicle/pkg/cli/log"
	"github.com/chronicle/chronicle/pkg/event"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// ErrInvalidLogin is an error for invalid credentials for login
var ErrInvalidLogin = errors.New("wrong credentials")

// ErrContentTypeMismatch is returned when the response is not of the expected type
var ErrContentTypeMismatch = errors.New("content type mismatch")

// ErrNoSession is returned for authorized requests made while signed out
var ErrNoSession = errors.New("no session key found")

// HTTPError represents an HTTP error response from the server
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(`response %d "%s"`, e.StatusCode, e.Message)
}

// IsUnauthorized returns true if the error is a 401 Unauthorized error
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

var contentTypeApplicationJSON = "application/json"
var contentTypeNone = ""

const (
	// clientRateLimitPerSecond is the max requests per second the client will make
	clientRateLimitPerSecond = 50
	// clientRateLimitBurst is the burst capacity for rate limiting
	clientRateLimitBurst = 100
)

// rateLimitedTransport wraps an http.RoundTripper with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	return t.transport.RoundTrip(req)
}

// NewRateLimitedHTTPClient creates an HTTP client with rate limiting
func NewRateLimitedHTTPClient() *http.Client {
	interval := time.Second / time.Duration(clientRateLimitPerSecond)

	return &http.Client{
		Transport: &rateLimitedTransport{
			transport: http.DefaultTransport,
			limiter:   rate.NewLimiter(rate.Every(interval), clientRateLimitBurst),
		},
		Timeout: 30 * time.Second,
	}
}

// Options configures a Client
type Options struct {
	// Endpoint is the base URL of the API, e.g. http://localhost:3001/api
	Endpoint   string
	Version    string
	SessionKey string
	HTTPClient *http.Client
}

// Client talks to the chronicle server
type Client struct {
	endpoint   string
	version    string
	sessionKey string
	hc         *http.Client
}

// New returns a client for the given options
func New(o Options) *Client {
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{
		endpoint:   strings.TrimRight(o.Endpoint, "/"),
		version:    o.Version,
		sessionKey: o.SessionKey,
		hc:         hc,
	}
}

// requestOptions contains options for a single request
type requestOptions struct {
	HTTPClient *http.Client
	// ExpectedContentType is the Content-Type that the client is expecting from the server
	ExpectedContentType *string
	// ContentType of the request body. Defaults to JSON.
	ContentType string
}

func (c *Client) newReq(ctx context.Context, method, path string, body io.Reader, options *requestOptions) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "constructing http request")
	}

	req.Header.Set("CLI-Version", c.version)

	contentType := contentTypeApplicationJSON
	if options != nil && options.ContentType != "" {
		contentType = options.ContentType
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	if c.sessionKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.sessionKey))
	}

	return req, nil
}

// checkRespErr returns an HTTPError if the response indicates an error
func checkRespErr(res *http.Response) error {
	if res.StatusCode < 400 {
		return nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "server responded with %d but client could not read the response body", res.StatusCode)
	}

	return &HTTPError{
		StatusCode: res.StatusCode,
		Message:    strings.TrimRight(string(body), "\n"),
	}
}

func checkContentType(res *http.Response, options *requestOptions) error {
	expected := contentTypeApplicationJSON
	if options != nil && options.ExpectedContentType != nil {
		expected = *options.ExpectedContentType
	}
	if expected == contentTypeNone {
		return nil
	}

	got := res.Header.Get("Content-Type")
	if !strings.HasPrefix(got, expected) {
		return errors.Wrapf(ErrContentTypeMismatch, "got: '%s' want: '%s'. Did you configure your endpoint correctly?", got, expected)
	}

	return nil
}

// doReq does a http request to the given path in the api endpoint. The
// caller must close the body of the returned response.
func (c *Client) doReq(ctx context.Context, method, path string, body io.Reader, options *requestOptions) (*http.Response, error) {
	req, err := c.newReq(ctx, method, path, body, options)
	if err != nil {
		return nil, errors.Wrap(err, "getting request")
	}

	log.Debug("HTTP %s %s\n", method, path)

	hc := c.hc
	if options != nil && options.HTTPClient != nil {
		hc = options.HTTPClient
	}

	res, err := hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	log.Debug("HTTP %s\n", res.Status)

	if err = checkRespErr(res); err != nil {
		res.Body.Close()
		return nil, errors.Wrap(err, "server responded with an error")
	}

	if err = checkContentType(res, options); err != nil {
		res.Body.Close()
		return nil, errors.Wrap(err, "unexpected Content-Type")
	}

	return res, nil
}

// doAuthorizedReq does a http request as the signed in user
func (c *Client) doAuthorizedReq(ctx context.Context, method, path string, body io.Reader, options *requestOptions) (*http.Response, error) {
	if c.sessionKey == "" {
		return nil, ErrNoSession
	}

	return c.doReq(ctx, method, path, body, options)
}

func jsonBody(v interface{}) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling payload")
	}

	return bytes.NewReader(b), nil
}

func decode(res *http.Response, dest interface{}) error {
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		return errors.Wrap(err, "decoding payload")
	}

	return nil
}

// EventsResponse is a response carrying a list of events
type EventsResponse struct {
	Events []event.Event `json:"events"`
}

func (c *Client) getEvents(ctx context.Context, path string) ([]event.Event, error) {
	res, err := c.doAuthorizedReq(ctx, "GET", path, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	var resp EventsResponse
	if err := decode(res, &resp); err != nil {
		return nil, err
	}
	if resp.Events == nil {
		return []event.Event{}, nil
	}

	return resp.Events, nil
}

// GetMyEvents returns all events of the user
func (c *Client) GetMyEvents(ctx context.Context, userID string) ([]event.Event, error) {
	q := url.Values{}
	q.Set("user_id", userID)

	return c.getEvents(ctx, "/v1/events?"+q.Encode())
}

// GetMyEventsOnDate returns the events of the user on the date
func (c *Client) GetMyEventsOnDate(ctx context.Context, userID, date string) ([]event.Event, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("date", date)

	return c.getEvents(ctx, "/v1/events?"+q.Encode())
}

// GetPublicEvents returns the public events of all users
func (c *Client) GetPublicEvents(ctx context.Context) ([]event.Event, error) {
	return c.getEvents(ctx, "/v1/events/public")
}

// CreateEventResponse is a response from the create event endpoint
type CreateEventResponse struct {
	Key string `json:"key"`
}

// Add creates an event document and returns its key
func (c *Client) Add(ctx context.Context, e event.Event) (string, error) {
	body, err := jsonBody(e)
	if err != nil {
		return "", err
	}

	res, err := c.doAuthorizedReq(ctx, "POST", "/v1/events", body, nil)
	if err != nil {
		return "", errors.Wrap(err, "making http request")
	}

	var resp CreateEventResponse
	if err := decode(res, &resp); err != nil {
		return "", err
	}

	return resp.Key, nil
}

// PatchEventPayload is a payload for partially updating an event document
type PatchEventPayload struct {
	EventID *string `json:"eventId,omitempty"`
}

// SetEventID stores the document key as the event id of the document
func (c *Client) SetEventID(ctx context.Context, key string) error {
	body, err := jsonBody(PatchEventPayload{EventID: &key})
	if err != nil {
		return err
	}

	res, err := c.doAuthorizedReq(ctx, "PATCH", "/v1/events/"+url.PathEscape(key), body, nil)
	if err != nil {
		return errors.Wrap(err, "making http request")
	}
	res.Body.Close()

	return nil
}

// Edit replaces the event document
func (c *Client) Edit(ctx context.Context, e event.Event) error {
	body, err := jsonBody(e)
	if err != nil {
		return err
	}

	res, err := c.doAuthorizedReq(ctx, "PUT", "/v1/events/"+url.PathEscape(e.EventID), body, nil)
	if err != nil {
		return errors.Wrap(err, "making http request")
	}
	res.Body.Close()

	return nil
}

// Delete removes the event document
func (c *Client) Delete(ctx context.Context, e event.Event) error {
	opts := requestOptions{ExpectedContentType: &contentTypeNone}

	res, err := c.doAuthorizedReq(ctx, "DELETE", "/v1/events/"+url.PathEscape(e.EventID), nil, &opts)
	if err != nil {
		return errors.Wrap(err, "making http request")
	}
	res.Body.Close()

	return nil
}

// UploadImageResponse is a response from the image upload endpoint
type UploadImageResponse struct {
	URL string `json:"url"`
}

// UploadImage uploads image content and returns its download URL
func (c *Client) UploadImage(ctx context.Context, filename string, content []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", errors.Wrap(err, "creating form file")
	}
	if _, err := part.Write(content); err != nil {
		return "", errors.Wrap(err, "writing form file")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "closing multipart writer")
	}

	opts := requestOptions{ContentType: w.FormDataContentType()}
	res, err := c.doAuthorizedReq(ctx, "POST", "/v1/images", &buf, &opts)
	if err != nil {
		return "", errors.Wrap(err, "making http request")
	}

	var resp UploadImageResponse
	if err := decode(res, &resp); err != nil {
		return "", err
	}

	return resp.URL, nil
}

// SigninPayload is a payload for the signin and register endpoints
type SigninPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninResponse is a response from the signin and register endpoints
type SigninResponse struct {
	Key       string `json:"key"`
	ExpiresAt int64  `json:"expires_at"`
	UserUUID  string `json:"user_uuid"`
}

func (c *Client) session(ctx context.Context, path, email, password string) (SigninResponse, error) {
	body, err := jsonBody(SigninPayload{Email: email, Password: password})
	if err != nil {
		return SigninResponse{}, err
	}

	res, err := c.doReq(ctx, "POST", path, body, nil)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.IsUnauthorized() {
			return SigninResponse{}, ErrInvalidLogin
		}

		return SigninResponse{}, errors.Wrap(err, "making http request")
	}

	var resp SigninResponse
	if err := decode(res, &resp); err != nil {
		return SigninResponse{}, err
	}

	return resp, nil
}

// Signin requests a session key
func (c *Client) Signin(ctx context.Context, email, password string) (SigninResponse, error) {
	return c.session(ctx, "/v1/signin", email, password)
}

// Register creates an account and requests a session key for it
func (c *Client) Register(ctx context.Context, email, password string) (SigninResponse, error) {
	return c.session(ctx, "/v1/register", email, password)
}

// Signout deletes the session on the server side
func (c *Client) Signout(ctx context.Context) error {
	hc := &http.Client{
		Transport: c.hc.Transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	opts := requestOptions{
		HTTPClient:          hc,
		ExpectedContentType: &contentTypeNone,
	}
	res, err := c.doAuthorizedReq(ctx, "POST", "/v1/signout", nil, &opts)
	if err != nil {
		return errors.Wrap(err, "making http request")
	}
	res.Body.Close()

	return nil
}

// CheckHealth reports whether the server is reachable and healthy
func (c *Client) CheckHealth(ctx context.Context) error {
	opts := requestOptions{ExpectedContentType: &contentTypeNone}

	res, err := c.doReq(ctx, "GET", "/health", nil, &opts)
	if err != nil {
		return errors.Wrap(err, "checking health")
	}
	res.Body.Close()

	return nil
}
