package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quiz-builder/internal/domain"
	"quiz-builder/internal/dto"
)

const defaultTimeout = 10 * time.Second

// Error is a non-2xx answer from the Quiz API.
type Error struct {
	Status     int
	Message    string
	Code       string
	Violations []domain.ValidationError
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("quiz api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("quiz api: status %d", e.Status)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client is a typed wrapper over the Quiz API HTTP surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. to change timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	var quiz dto.QuizResponse
	if err := c.do(ctx, http.MethodPost, "/quizzes", req, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (c *Client) ListQuizzes(ctx context.Context) ([]dto.QuizSummaryResponse, error) {
	quizzes := []dto.QuizSummaryResponse{}
	if err := c.do(ctx, http.MethodGet, "/quizzes", nil, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (c *Client) GetQuiz(ctx context.Context, id int64) (*dto.QuizResponse, error) {
	var quiz dto.QuizResponse
	if err := c.do(ctx, http.MethodGet, "/quizzes/"+strconv.FormatInt(id, 10), nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (c *Client) DeleteQuiz(ctx context.Context, id int64) (*dto.DeleteQuizResponse, error) {
	var resp dto.DeleteQuizResponse
	if err := c.do(ctx, http.MethodDelete, "/quizzes/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Health(ctx context.Context) error {
	var resp dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("quiz api unhealthy: %q", resp.Status)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeError accepts both the {error, code} and the {errors:[...]} bodies.
func decodeError(status int, raw []byte) *Error {
	apiErr := &Error{Status: status}
	var body struct {
		Error  string                   `json:"error"`
		Code   string                   `json:"code"`
		Errors []domain.ValidationError `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	apiErr.Message = body.Error
	apiErr.Code = body.Code
	apiErr.Violations = body.Errors
	if apiErr.Message == "" && len(body.Errors) > 0 {
		apiErr.Message = body.Errors[0].Message
	}
	return apiErr
}
