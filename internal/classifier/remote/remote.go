package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/modgate/modgate/internal/classifier"
	"github.com/modgate/modgate/pkg/metrics"
)

// Client implements classifier.Caller against the classification service's
// HTTP API. Requests are form-encoded (the API expects dashed field names,
// which is why submission keys are normalized before they reach this layer),
// responses are JSON objects.
//
// Failure reporting follows the Caller contract: transport errors, non-2xx
// statuses and undecodable bodies all collapse into ok == false. Retries and
// backoff are deliberately not implemented here.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a client for the given API endpoint. rps/burst configure a
// client-side token bucket so the service stays inside the remote quota;
// rps <= 0 disables throttling.
func New(baseURL, apiKey string, timeout time.Duration, rps float64, burst int) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return c
}

func (c *Client) Call(ctx context.Context, op classifier.Op, args ...any) (int, map[string]any, bool) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.ClassifierCalls.WithLabelValues(string(op), "failure").Inc()
			return 0, nil, false
		}
	}

	req, err := c.buildRequest(ctx, op, args)
	if err != nil {
		metrics.ClassifierCalls.WithLabelValues(string(op), "failure").Inc()
		return 0, nil, false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ClassifierCalls.WithLabelValues(string(op), "failure").Inc()
		return 0, nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ClassifierCalls.WithLabelValues(string(op), "failure").Inc()
		return resp.StatusCode, nil, false
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.ClassifierCalls.WithLabelValues(string(op), "failure").Inc()
		return resp.StatusCode, nil, false
	}

	metrics.ClassifierCalls.WithLabelValues(string(op), "success").Inc()
	return resp.StatusCode, payload, true
}

func (c *Client) buildRequest(ctx context.Context, op classifier.Op, args []any) (*http.Request, error) {
	switch op {
	case classifier.OpPostDocument:
		data, ok := first[map[string]string](args, 0)
		if !ok {
			return nil, fmt.Errorf("post_document: expected map[string]string payload")
		}
		form := url.Values{}
		for k, v := range data {
			form.Set(k, v)
		}
		return c.formRequest(ctx, http.MethodPost, c.baseURL+"/v1/documents", form)

	case classifier.OpPutDocument:
		sig, ok := first[string](args, 0)
		if !ok {
			return nil, fmt.Errorf("put_document: expected signature string")
		}
		fields, ok := first[map[string]any](args, 1)
		if !ok {
			return nil, fmt.Errorf("put_document: expected field map")
		}
		form := url.Values{}
		for k, v := range fields {
			switch t := v.(type) {
			case bool:
				form.Set(k, strconv.FormatBool(t))
			case string:
				form.Set(k, t)
			default:
				form.Set(k, fmt.Sprintf("%v", t))
			}
		}
		return c.formRequest(ctx, http.MethodPut, c.baseURL+"/v1/documents/"+url.PathEscape(sig), form)

	case classifier.OpGetDocument:
		sig, ok := first[string](args, 0)
		if !ok {
			return nil, fmt.Errorf("get_document: expected signature string")
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/documents/"+url.PathEscape(sig), nil)
		if err != nil {
			return nil, err
		}
		c.auth(req)
		return req, nil
	}
	return nil, fmt.Errorf("unknown operation %q", op)
}

func (c *Client) formRequest(ctx context.Context, method, endpoint string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.auth(req)
	return req, nil
}

func (c *Client) auth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
}

func first[T any](args []any, i int) (T, bool) {
	var zero T
	if i >= len(args) {
		return zero, false
	}
	v, ok := args[i].(T)
	return v, ok
}
