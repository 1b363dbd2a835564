// Package chaintest runs a fake full node for tests.
package chaintest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/chain/client"
)

// HandlerFunc answers one method. A non-nil RPCError is sent as the error
// member.
type HandlerFunc func(params []json.RawMessage) (any, *client.RPCError)

type Node struct {
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]HandlerFunc
	calls    map[string]int
}

func NewNode(t *testing.T) *Node {
	t.Helper()
	n := &Node{handlers: map[string]HandlerFunc{}, calls: map[string]int{}}
	n.server = httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(n.server.Close)
	return n
}

func (n *Node) URL() string {
	return n.server.URL
}

func (n *Node) Handle(method string, fn HandlerFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = fn
}

// Result registers a fixed result for method.
func (n *Node) Result(method string, result any) {
	n.Handle(method, func([]json.RawMessage) (any, *client.RPCError) { return result, nil })
}

func (n *Node) Calls(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func (n *Node) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     uint64            `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls[req.Method]++
	fn, ok := n.handlers[req.Method]
	n.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if !ok {
		resp["error"] = client.RPCError{Code: -32601, Message: "method not found"}
	} else if result, rpcErr := fn(req.Params); rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Bytes renders s the way the node renders a vector<u8>.
func Bytes(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(s[i])
	}
	return out
}

// MoveObject renders an object response with content fields.
func MoveObject(id, typ string, fields map[string]any) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"objectId": id,
			"type":     typ,
			"content": map[string]any{
				"dataType": "moveObject",
				"type":     typ,
				"fields":   fields,
			},
		},
	}
}

// Page wraps data in a paginated result.
func Page(data any) map[string]any {
	return map[string]any{"data": data, "nextCursor": nil, "hasNextPage": false}
}

// SkillsMap renders a VecMap<vector<u8>, u64>.
func SkillsMap(skills map[string]uint64) map[string]any {
	contents := make([]any, 0, len(skills))
	for k, v := range skills {
		contents = append(contents, map[string]any{
			"fields": map[string]any{"key": Bytes(k), "value": strconv.FormatUint(v, 10)},
		})
	}
	return map[string]any{"fields": map[string]any{"contents": contents}}
}

