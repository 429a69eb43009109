package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/usershelf/usershelf/internal/client/models"
	"github.com/usershelf/usershelf/internal/common"
)

const (
	// DefaultTimeout bounds one fetch including reading the body.
	DefaultTimeout = 10 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 5 * time.Second
	// MaxBodyBytes caps how much of a response is read.
	MaxBodyBytes = 10 << 20
)

// wireUser mirrors models.UserDTO with pointers so missing keys can be told
// apart from zero values.
type wireUser struct {
	ID       *int64  `json:"id" validate:"required"`
	Name     *string `json:"name" validate:"required"`
	Username *string `json:"username" validate:"required"`
	Email    *string `json:"email" validate:"required"`
}

// HTTPClient fetches users with a single GET request.
type HTTPClient struct {
	endpoint string
	http     *http.Client
	validate *validator.Validate
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the request timeout on the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http = NewDefaultHTTPClient(d) }
}

// NewHTTPClient returns a client for endpoint. The endpoint is checked on
// every Fetch, so a bad value surfaces as common.ErrInvalidEndpoint there.
func NewHTTPClient(endpoint string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		endpoint: endpoint,
		http:     NewDefaultHTTPClient(DefaultTimeout),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefaultHTTPClient builds an *http.Client with the given overall
// timeout and conservative transport limits.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   DialTimeout,
			ResponseHeaderTimeout: timeout,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Endpoint returns the configured endpoint as given.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

// Fetch performs the GET and decodes the response.
func (c *HTTPClient) Fetch(ctx context.Context) ([]models.UserDTO, error) {
	u, err := parseEndpoint(c.endpoint)
	if err != nil {
		return nil, common.NewError(common.KindInvalidEndpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, common.NewError(common.KindInvalidEndpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, common.NewError(common.KindTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, common.NewError(common.KindTransport, fmt.Errorf("unexpected status: %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, common.NewError(common.KindTransport, fmt.Errorf("read body: %w", err))
	}
	if len(body) > MaxBodyBytes {
		return nil, common.NewError(common.KindTransport, fmt.Errorf("response body exceeds %d bytes", MaxBodyBytes))
	}

	dtos, err := c.decode(body)
	if err != nil {
		return nil, common.NewError(common.KindDecode, err)
	}
	return dtos, nil
}

func (c *HTTPClient) decode(body []byte) ([]models.UserDTO, error) {
	var wire []wireUser
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, errors.New("payload is null, expected an array")
	}

	dtos := make([]models.UserDTO, 0, len(wire))
	for i := range wire {
		if err := c.validate.Struct(&wire[i]); err != nil {
			return nil, describeInvalid(i, err)
		}
		w := wire[i]
		dtos = append(dtos, models.UserDTO{ID: *w.ID, Name: *w.Name, Username: *w.Username, Email: *w.Email})
	}
	return dtos, nil
}

func describeInvalid(index int, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		names := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			names = append(names, fe.Field())
		}
		return fmt.Errorf("user at index %d: missing field(s) %s", index, strings.Join(names, ", "))
	}
	return fmt.Errorf("user at index %d: %w", index, err)
}

func parseEndpoint(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("endpoint is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("endpoint has no host")
	}
	return u, nil
}
