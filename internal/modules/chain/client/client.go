// Package client is a minimal JSON-RPC 2.0 client for a Sui full node.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
)

const (
	defaultTimeout = 15 * time.Second
	pageLimit      = 50
	maxPages       = 10
)

// Node is the subset of the node API the rest of the service reads from.
type Node interface {
	LatestEpoch(ctx context.Context) (uint64, error)
	OwnedObjects(ctx context.Context, owner, structType string) ([]Object, error)
	PostedJobIDs(ctx context.Context, eventType string) ([]string, error)
	MultiGetObjects(ctx context.Context, ids []string) ([]Object, error)
	ResolveName(ctx context.Context, address string) (string, error)
}

type Client struct {
	url    string
	client *http.Client
	nextID atomic.Uint64
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (e *RPCError) Unwrap() error {
	return apperror.ErrUpstream
}

// call issues one request. Transport failures and node errors both unwrap to
// apperror.ErrUpstream.
func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", method, apperror.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s: %w: status %d: %s", method, apperror.ErrUpstream, resp.StatusCode, snippet)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%s: %w: decode response: %v", method, apperror.ErrUpstream, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%s: %w", method, rpcResp.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("%s: %w: decode result: %v", method, apperror.ErrUpstream, err)
	}
	return nil
}

func (c *Client) LatestEpoch(ctx context.Context) (uint64, error) {
	var state struct {
		Epoch json.RawMessage `json:"epoch"`
	}
	if err := c.call(ctx, "suix_getLatestSuiSystemState", []any{}, &state); err != nil {
		return 0, err
	}
	epoch, err := DecodeU64(state.Epoch)
	if err != nil {
		return 0, fmt.Errorf("suix_getLatestSuiSystemState: %w: bad epoch: %v", apperror.ErrUpstream, err)
	}
	return epoch, nil
}

var contentOptions = map[string]any{"showContent": true, "showType": true}

type page[T any] struct {
	Data        []T     `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

// OwnedObjects lists the objects of structType owned by owner, following
// cursors up to a fixed page cap.
func (c *Client) OwnedObjects(ctx context.Context, owner, structType string) ([]Object, error) {
	query := map[string]any{"options": contentOptions}
	if structType != "" {
		query["filter"] = map[string]any{"StructType": structType}
	}

	var objects []Object
	var cursor *string
	for i := 0; i < maxPages; i++ {
		var p page[objectResponse]
		if err := c.call(ctx, "suix_getOwnedObjects", []any{owner, query, cursor, pageLimit}, &p); err != nil {
			return nil, err
		}
		for _, r := range p.Data {
			if obj, ok := r.object(); ok {
				objects = append(objects, obj)
			}
		}
		if !p.HasNextPage || p.NextCursor == nil {
			break
		}
		cursor = p.NextCursor
	}
	return objects, nil
}

// PostedJobIDs returns the job ids announced by eventType events, newest
// first and without duplicates.
func (c *Client) PostedJobIDs(ctx context.Context, eventType string) ([]string, error) {
	type event struct {
		ParsedJSON struct {
			JobID string `json:"job_id"`
		} `json:"parsedJson"`
	}

	seen := map[string]bool{}
	var ids []string
	var cursor json.RawMessage
	for i := 0; i < maxPages; i++ {
		var p struct {
			Data        []event         `json:"data"`
			NextCursor  json.RawMessage `json:"nextCursor"`
			HasNextPage bool            `json:"hasNextPage"`
		}
		params := []any{map[string]any{"MoveEventType": eventType}, cursor, pageLimit, true}
		if err := c.call(ctx, "suix_queryEvents", params, &p); err != nil {
			return nil, err
		}
		for _, e := range p.Data {
			id := e.ParsedJSON.JobID
			if id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		if !p.HasNextPage || len(p.NextCursor) == 0 || string(p.NextCursor) == "null" {
			break
		}
		cursor = p.NextCursor
	}
	return ids, nil
}

// MultiGetObjects fetches ids in one call. Deleted or missing objects are
// skipped.
func (c *Client) MultiGetObjects(ctx context.Context, ids []string) ([]Object, error) {
	if len(ids) == 0 {
		return []Object{}, nil
	}

	var resp []objectResponse
	if err := c.call(ctx, "sui_multiGetObjects", []any{ids, contentOptions}, &resp); err != nil {
		return nil, err
	}

	objects := make([]Object, 0, len(resp))
	for _, r := range resp {
		if obj, ok := r.object(); ok {
			objects = append(objects, obj)
		}
	}
	return objects, nil
}

// ResolveName returns the first name registered for address, or "" when it
// has none.
func (c *Client) ResolveName(ctx context.Context, address string) (string, error) {
	var p page[string]
	if err := c.call(ctx, "suix_resolveNameServiceNames", []any{address}, &p); err != nil {
		return "", err
	}
	if len(p.Data) == 0 {
		return "", nil
	}
	return p.Data[0], nil
}
