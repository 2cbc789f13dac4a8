package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/adanwillian46-design/trackflix2.0/internal/model"
)

const (
	defaultBaseURL   = "http://127.0.0.1:5000"
	defaultUserAgent = "trackflix/2.0"
	requestTimeout   = 15 * time.Second
	maxResponseBody  = 1 << 20
)

// CreateResult POST /api/movies 的响应
type CreateResult struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Movie   *model.Movie `json:"movie,omitempty"`
}

// Status GET /api/test 的响应
type Status struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	MoviesCount int    `json:"movies_count"`
	Timestamp   string `json:"timestamp"`
}

// APIError 服务端返回的失败状态
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api returned status %d", e.StatusCode)
}

// Client Trackflix HTTP API 客户端
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient 创建客户端，baseURL 也可以是 "host:port"
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}, nil
}

// WithHTTPClient 替换底层 http.Client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.http = hc
	}
	return c
}

// CreateMovie 提交草稿到 /api/movies
// 无论状态码都解析响应体（拒绝时返回 {success:false,error}），网络失败或非 JSON 响应返回错误
func (c *Client) CreateMovie(ctx context.Context, draft model.MovieDraft) (*CreateResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var result CreateResult
	if _, err := c.send(ctx, http.MethodPost, &url.URL{Path: "/api/movies"}, draft, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListMovies 获取全部电影
func (c *Client) ListMovies(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := c.expectOK(ctx, http.MethodGet, &url.URL{Path: "/api/movies"}, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// SearchMovies 调用 /api/search
func (c *Client) SearchMovies(ctx context.Context, query string) ([]model.Movie, error) {
	values := url.Values{}
	values.Set("q", query)
	rel := &url.URL{Path: "/api/search", RawQuery: values.Encode()}
	var movies []model.Movie
	if err := c.expectOK(ctx, http.MethodGet, rel, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// UpdateRating 更新评分
func (c *Client) UpdateRating(ctx context.Context, id int, rating float64) error {
	rel := &url.URL{Path: "/api/movies/" + strconv.Itoa(id) + "/rating"}
	return c.expectOK(ctx, http.MethodPut, rel, model.RatingRequest{Rating: rating}, nil)
}

// UpdateStatus 更新状态
func (c *Client) UpdateStatus(ctx context.Context, id int, status string) error {
	rel := &url.URL{Path: "/api/movies/" + strconv.Itoa(id) + "/status"}
	return c.expectOK(ctx, http.MethodPut, rel, model.StatusRequest{Status: status}, nil)
}

// DeleteMovie 删除电影
func (c *Client) DeleteMovie(ctx context.Context, id int) error {
	rel := &url.URL{Path: "/api/movies/" + strconv.Itoa(id)}
	return c.expectOK(ctx, http.MethodDelete, rel, nil, nil)
}

// Ping 调用 /api/test 自检
func (c *Client) Ping(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.expectOK(ctx, http.MethodGet, &url.URL{Path: "/api/test"}, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) expectOK(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	raw := json.RawMessage{}
	status, err := c.send(ctx, method, rel, body, &raw)
	if err != nil {
		return err
	}
	if status >= 400 {
		var failure struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &failure)
		return &APIError{StatusCode: status, Message: failure.Error}
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method string, rel *url.URL, body, dest any) (int, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody))
	if err := decoder.Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
