package client_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/chain/chaintest"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/chain/client"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
)

func TestLatestEpoch(t *testing.T) {
	node := chaintest.NewNode(t)
	node.Result("suix_getLatestSuiSystemState", map[string]any{"epoch": "412"})

	epoch, err := client.NewClient(node.URL(), time.Second).LatestEpoch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(412), epoch)
}

func TestRPCErrorIsUpstream(t *testing.T) {
	node := chaintest.NewNode(t)
	node.Handle("suix_getLatestSuiSystemState", func([]json.RawMessage) (any, *client.RPCError) {
		return nil, &client.RPCError{Code: -32000, Message: "node syncing"}
	})

	_, err := client.NewClient(node.URL(), time.Second).LatestEpoch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUpstream)

	var rpcErr *client.RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32000, rpcErr.Code)
}

func TestUnreachableNodeIsUpstream(t *testing.T) {
	c := client.NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.LatestEpoch(context.Background())
	assert.ErrorIs(t, err, apperror.ErrUpstream)
}

func TestOwnedObjects(t *testing.T) {
	node := chaintest.NewNode(t)
	var gotOwner, gotFilter string
	node.Handle("suix_getOwnedObjects", func(params []json.RawMessage) (any, *client.RPCError) {
		_ = json.Unmarshal(params[0], &gotOwner)
		var query struct {
			Filter struct {
				StructType string `json:"StructType"`
			} `json:"filter"`
		}
		_ = json.Unmarshal(params[1], &query)
		gotFilter = query.Filter.StructType

		return chaintest.Page([]any{
			chaintest.MoveObject("0xp1", "0xpkg::marketplace::Profile", map[string]any{"name": chaintest.Bytes("Ada")}),
			map[string]any{"error": map[string]any{"code": "deleted"}},
		}), nil
	})

	objects, err := client.NewClient(node.URL(), time.Second).OwnedObjects(context.Background(), "0xabc", "0xpkg::marketplace::Profile")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "0xp1", objects[0].ID)
	assert.Equal(t, "0xabc", gotOwner)
	assert.Equal(t, "0xpkg::marketplace::Profile", gotFilter)

	name, err := client.DecodeBytes(objects[0].Field("name"))
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)
}

func TestPostedJobIDsFollowsCursor(t *testing.T) {
	node := chaintest.NewNode(t)
	node.Handle("suix_queryEvents", func(params []json.RawMessage) (any, *client.RPCError) {
		if string(params[1]) == "null" {
			return map[string]any{
				"data": []any{
					map[string]any{"parsedJson": map[string]any{"job_id": "0xj2"}},
					map[string]any{"parsedJson": map[string]any{"job_id": "0xj1"}},
				},
				"nextCursor":  map[string]any{"txDigest": "d", "eventSeq": "1"},
				"hasNextPage": true,
			}, nil
		}
		return chaintest.Page([]any{
			map[string]any{"parsedJson": map[string]any{"job_id": "0xj1"}},
			map[string]any{"parsedJson": map[string]any{"job_id": "0xj0"}},
		}), nil
	})

	ids, err := client.NewClient(node.URL(), time.Second).PostedJobIDs(context.Background(), "0xpkg::marketplace::JobPosted")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xj2", "0xj1", "0xj0"}, ids)
	assert.Equal(t, 2, node.Calls("suix_queryEvents"))
}

func TestMultiGetObjectsEmptySkipsCall(t *testing.T) {
	node := chaintest.NewNode(t)
	objects, err := client.NewClient(node.URL(), time.Second).MultiGetObjects(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, objects)
	assert.Zero(t, node.Calls("sui_multiGetObjects"))
}

func TestResolveName(t *testing.T) {
	node := chaintest.NewNode(t)
	node.Result("suix_resolveNameServiceNames", chaintest.Page([]string{"ada.sui"}))
	c := client.NewClient(node.URL(), time.Second)

	name, err := c.ResolveName(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "ada.sui", name)

	node.Result("suix_resolveNameServiceNames", chaintest.Page([]string{}))
	name, err = c.ResolveName(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Empty(t, name)
}
