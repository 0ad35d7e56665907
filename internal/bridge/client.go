package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Client is the one request/response gateway to the automation backend.
type Client interface {
	Call(ctx context.Context, op Operation, payload any) (any, error)
}

type request struct {
	Resource Resource `json:"resource"`
	Action   Action   `json:"action"`
	Payload  any      `json:"payload"`
}

type response struct {
	OK    *bool           `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type httpClient struct {
	url   string
	token string
	hc    *http.Client
}

// NewClient posts every call to url. The http.Client carries no timeout
// of its own; callers bound requests through their context.
func NewClient(url, token string, hc *http.Client) Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &httpClient{url: url, token: token, hc: hc}
}

func (c *httpClient) Call(ctx context.Context, op Operation, payload any) (any, error) {
	if !Supported(op) {
		return nil, &Error{Kind: KindTransport, Op: op, Err: errors.New("unsupported operation")}
	}
	if c.url == "" {
		return nil, &Error{Kind: KindTransport, Op: op, Err: errors.New("bridge url is not configured")}
	}

	body, err := json.Marshal(request{Resource: op.Resource, Action: op.Action, Payload: payload})
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("encoding request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		slog.Info("bridge request failed", "op", op.String(), "error", err)
		return nil, &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}

	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.Info("bridge returned a non-JSON body", "op", op.String(), "status", resp.StatusCode)
		return nil, &Error{
			Kind: KindTransport,
			Op:   op,
			Err:  fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err),
		}
	}

	if out.OK == nil || !*out.OK {
		msg := strings.TrimSpace(out.Error)
		if out.OK == nil && resp.StatusCode < http.StatusBadRequest {
			return nil, &Error{Kind: KindTransport, Op: op, Err: errors.New("response is missing the ok flag")}
		}
		slog.Info("bridge rejected request", "op", op.String(), "status", resp.StatusCode, "error", msg)
		return nil, &Error{Kind: KindUpstream, Op: op, Message: msg}
	}

	if len(out.Data) == 0 {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal(out.Data, &data); err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("decoding data: %w", err)}
	}
	return data, nil
}
