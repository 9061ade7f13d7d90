package bloom

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
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Service defines the Bloom API surface used by the diary screen.
// It is implemented by *Client; tests use it to swap in fakes.
type Service interface {
	FetchAnswer(ctx context.Context, date string) (QuestionAnswer, error)
	RegisterQuestion(ctx context.Context) error
	SaveAnswer(ctx context.Context, date, answer string) error
	FetchDoneList(ctx context.Context, date string) ([]DoneItem, error)
	CreateDoneItem(ctx context.Context, item NewDoneItem) error
	UpdateDoneItem(ctx context.Context, id int64, patch DoneItemPatch) error
	DeleteDoneItem(ctx context.Context, id int64) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the Bloom HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *logrus.Entry
}

// ClientOptions configure NewClient.
type ClientOptions struct {
	// Tokens supplies the bearer token. Nil sends unauthenticated requests.
	Tokens  oauth2.TokenSource
	Logger  *logrus.Logger
	Timeout time.Duration
}

const (
	defaultAPIBase   = "http://127.0.0.1:8080"
	defaultUserAgent = "bloom/0.1"
	requestTimeout   = 5 * time.Second

	requestIDHeader = "X-Request-ID"
)

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// NewClient builds a Client for the API rooted at apiBase.
func NewClient(apiBase string, opts ClientOptions) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}

	var transport http.RoundTripper = http.DefaultTransport
	if opts.Tokens != nil {
		transport = &oauth2.Transport{Source: opts.Tokens, Base: http.DefaultTransport}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: defaultUserAgent,
		log:       logger.WithField("component", "bloom_client"),
	}, nil
}

// FetchAnswer retrieves the question and the user's answer for date.
func (c *Client) FetchAnswer(ctx context.Context, date string) (QuestionAnswer, error) {
	if c == nil {
		return QuestionAnswer{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("date", date)
	rel := &url.URL{Path: "/api/daily-question/answer", RawQuery: values.Encode()}
	var payload QuestionAnswer
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return QuestionAnswer{}, err
	}
	return payload, nil
}

// RegisterQuestion asks the server to assign today's question.
func (c *Client) RegisterQuestion(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodGet, "/api/daily-question", nil, nil)
}

// SaveAnswer writes the answer for date.
func (c *Client) SaveAnswer(ctx context.Context, date, answer string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body, err := jsonBody(AnswerRequest{Date: date, Answer: answer})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/daily-question/answer", body, nil)
}

// FetchDoneList retrieves every done-list entry recorded on date.
func (c *Client) FetchDoneList(ctx context.Context, date string) ([]DoneItem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("date required")
	}
	var payload DoneListResponse
	if err := c.do(ctx, http.MethodGet, "/api/done-list/"+url.PathEscape(date), nil, &payload); err != nil {
		return nil, err
	}
	return payload.DoneList, nil
}

// CreateDoneItem creates a done-list entry.
func (c *Client) CreateDoneItem(ctx context.Context, item NewDoneItem) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body, err := multipartBody(item)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/done-list", body, nil)
}

// UpdateDoneItem replaces the title and content of an existing entry.
func (c *Client) UpdateDoneItem(ctx context.Context, id int64, patch DoneItemPatch) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return fmt.Errorf("item id required")
	}
	body, err := multipartBody(patch)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/api/done-list/"+strconv.FormatInt(id, 10), body, nil)
}

// DeleteDoneItem removes a done-list entry.
func (c *Client) DeleteDoneItem(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return fmt.Errorf("item id required")
	}
	return c.do(ctx, http.MethodDelete, "/api/done-list/"+strconv.FormatInt(id, 10), nil, nil)
}

// requestBody pairs an encoded payload with its content type.
type requestBody struct {
	contentType string
	data        []byte
}

func jsonBody(v any) (*requestBody, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return &requestBody{contentType: "application/json", data: data}, nil
}

// multipartBody encodes v as JSON inside the form field "data", which is how
// the done-list endpoints accept writes.
func multipartBody(v any) (*requestBody, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("data", string(payload)); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}
	return &requestBody{contentType: mw.FormDataContentType(), data: buf.Bytes()}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body *requestBody, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body *requestBody, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.data)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}

	entry := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       rel.Path,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	entry.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("request completed")

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.Path, StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
