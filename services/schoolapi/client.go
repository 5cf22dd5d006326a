// Package schoolapi is the HTTP client for the School Management REST
// backend. It injects the bearer token from the bound session token
// store into every outbound request and intercepts 401 responses
// uniformly, regardless of which feature issued the call.
package schoolapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/core/session"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.TokenStore
}

// NewClient builds a client for the backend at conf.API.BaseURL, bound
// to the given token store. Pass a nil store for a purely anonymous
// client; WithStore rebinds per session.
func NewClient(conf *core.Config, store session.TokenStore) (*Client, error) {
	baseURL := strings.TrimSpace(conf.API.BaseURL)
	if baseURL == "" {
		return nil, errors.New("schoolapi: backend base URL is empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "schoolapi: parsing backend base URL")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Errorf("schoolapi: invalid backend base URL: %s", baseURL)
	}

	timeout := conf.API.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
	}, nil
}

// WithStore returns a shallow copy of the client bound to store. The
// web app calls this once per request to bind the browser session's
// token store; the underlying http.Client is shared.
func (c *Client) WithStore(store session.TokenStore) *Client {
	cp := *c
	cp.store = store
	return &cp
}

// do issues one JSON round trip. When a token is present it is always
// attached; absence of a token means the request goes out
// unauthenticated. A 401 on a non-anonymous call clears the bound
// store and yields ErrSessionInvalid; anonymous calls (login,
// registration, password reset) pass the 401 through untouched so
// intentional unauthenticated use never tears the session down.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}, anonymous bool) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &APIError{Op: op, Err: errors.Wrap(err, "encoding request body")}
		}
		body = bytes.NewReader(data)
	}

	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.store != nil {
		if access := c.store.AccessToken(); access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized && !anonymous {
		if c.store != nil {
			_ = c.store.ClearTokens()
		}
		return &APIError{Op: op, StatusCode: resp.StatusCode, Err: ErrSessionInvalid}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return parseAPIError(op, resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &APIError{Op: op, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "decoding response body")}
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, false)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out, false)
}

func (c *Client) patch(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, in, out, false)
}
