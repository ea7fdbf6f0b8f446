// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

const defaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// Client fetches homework statuses from the Practicum API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a new API client authorised with the OAuth token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   defaultEndpoint,
		token:      token,
		logger:     logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorBody struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
}

// Fetch returns the decoded, unvalidated JSON body of the statuses changed since the given
// epoch second. Errors are *homework.Error of kind network, upstream or schema.
func (c *Client) Fetch(ctx context.Context, since int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(since, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	log := c.logger.WithField("from_date", since)
	log.Debug("Requesting homework statuses")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Сбой при запросе к сервису API")
		return nil, homework.NewNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Error("Сбой при чтении ответа сервиса API")
		return nil, homework.NewNetworkError(err)
	}

	if resp.StatusCode != http.StatusOK {
		var eb errorBody
		code := http.StatusText(resp.StatusCode)
		if json.Unmarshal(body, &eb) == nil && eb.Code != nil {
			code = fmt.Sprint(eb.Code)
		}
		log.WithFields(logrus.Fields{"http_status": resp.StatusCode, "code": code}).Warn("API returned non-OK status")
		return nil, homework.NewUpstreamError(resp.StatusCode, code, eb.Message)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &homework.Error{Kind: homework.KindSchema, Detail: "Ответ сервиса API не является JSON", Err: err}
	}
	log.Debug("Homework statuses received")
	return payload, nil
}
