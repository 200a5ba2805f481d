package odata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/bnema/xpertdoc-portal-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	servicePath      = "odata/"
	maxResponseBytes = 64 << 20
	requestIDHeader  = "X-Request-ID"

	defaultRequestTimeout   = 30 * time.Second
	defaultExecutionTimeout = 5 * time.Minute
	defaultPollInterval     = time.Second
)

type Config struct {
	// HTTPClient is cloned per session. For ambient credentials its transport
	// is expected to carry the OS identity (for example a Negotiate round tripper).
	HTTPClient       *http.Client
	RequestTimeout   time.Duration
	ExecutionTimeout time.Duration
	PollInterval     time.Duration
	Logger           logrus.FieldLogger
}

type Connector struct {
	cfg Config
}

var _ ports.Connector = (*Connector)(nil)

func NewConnector(cfg Config) *Connector {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.ExecutionTimeout <= 0 {
		cfg.ExecutionTimeout = defaultExecutionTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.Logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		cfg.Logger = logger
	}

	return &Connector{cfg: cfg}
}

func (c *Connector) Connect(session domain.Session) (ports.Portal, error) {
	base, err := parseBaseURL(session.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := *c.cfg.HTTPClient
	if !session.Credentials.IsAmbient() {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	return &Client{
		session: session,
		base:    base,
		http:    &httpClient,
		cfg:     c.cfg,
		log:     c.cfg.Logger.WithField("session", session.String()),
	}, nil
}

// Client is a portal client bound to one session.
type Client struct {
	session domain.Session
	base    *url.URL
	http    *http.Client
	cfg     Config
	log     logrus.FieldLogger

	loginMu  sync.Mutex
	loggedIn bool
}

var _ ports.Portal = (*Client)(nil)

type request struct {
	method string
	path   string
	query  url.Values
	body   any
}

type collectionResponse struct {
	Value []domain.Record `json:"value"`
}

type binaryResponse struct {
	Value []byte `json:"value"`
}

type updateContentRequest struct {
	Content []byte `json:"content"`
}

func (c *Client) Query(ctx context.Context, entitySet string, filter domain.Filter) ([]domain.Record, error) {
	expr, err := FormatFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", entitySet, err)
	}

	query := url.Values{}
	query.Set("$filter", expr)

	var payload collectionResponse
	err = c.call(ctx, request{method: http.MethodGet, path: servicePath + entitySet, query: query}, func(resp *http.Response) error {
		return decodeJSON(resp, &payload)
	})
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{"entity_set": entitySet, "filter": expr, "count": len(payload.Value)}).Debug("portal query")
	return payload.Value, nil
}

func (c *Client) FetchContent(ctx context.Context, ref domain.EntityRef) ([]byte, error) {
	var payload binaryResponse
	err := c.call(ctx, request{method: http.MethodGet, path: entityPath(ref, "GetContent")}, func(resp *http.Response) error {
		return decodeJSON(resp, &payload)
	})
	if err != nil {
		return nil, err
	}

	return payload.Value, nil
}

func (c *Client) Mutate(ctx context.Context, ref domain.EntityRef, mutation domain.Mutation) error {
	req := request{method: http.MethodPost, path: entityPath(ref, string(mutation.Kind))}
	switch mutation.Kind {
	case domain.MutationCheckOut, domain.MutationCheckIn:
	case domain.MutationUpdateContent:
		req.body = updateContentRequest{Content: mutation.Content}
	default:
		return fmt.Errorf("unsupported mutation %q", mutation.Kind)
	}

	if err := c.call(ctx, req, nil); err != nil {
		return err
	}

	c.log.WithFields(logrus.Fields{"entity": ref.String(), "mutation": mutation.Kind}).Debug("portal mutation")
	return nil
}

func (c *Client) call(ctx context.Context, req request, handle func(*http.Response) error) error {
	if err := c.ensureLogin(ctx); err != nil {
		return err
	}

	return c.send(ctx, req, handle)
}

func (c *Client) send(ctx context.Context, req request, handle func(*http.Response) error) error {
	endpoint, err := c.resolve(req.path, req.query)
	if err != nil {
		return err
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, req.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	c.log.WithFields(logrus.Fields{
		"method":     req.method,
		"path":       req.path,
		"request_id": httpReq.Header.Get(requestIDHeader),
	}).Debug("portal request")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return transportError(req, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(req, resp)
	}
	if handle == nil {
		return nil
	}
	if err := handle(resp); err != nil {
		return transportError(req, err)
	}

	return nil
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	endpoint, err := c.base.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse portal path %q: %w", path, err)
	}
	return endpoint.String(), nil
}

// requestContext bounds a single remote call by RequestTimeout. A caller
// deadline that expires earlier still wins.
func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.cfg.RequestTimeout)
}

func entityPath(ref domain.EntityRef, action string) string {
	return servicePath + ref.Set + "(" + ref.ID.String() + ")/" + action
}

func decodeJSON(resp *http.Response, out any) error {
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("portal base url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse portal base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("portal base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("portal base url host is required")
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
		if parsed.RawPath != "" {
			parsed.RawPath += "/"
		}
	}

	return parsed, nil
}
