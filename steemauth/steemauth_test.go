package steemauth

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSidechainOperation(t *testing.T) {
	op, err := NewSidechainOperation("alice", "market_swap", map[string]interface{}{
		"tokenIn":     "STEEM",
		"tokenOut":    "MEER",
		"_trackingId": "tid1",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"alice"}, op.RequiredAuths)
	assert.Empty(t, op.RequiredPostingAuths)
	assert.Equal(t, SidechainOpId, op.Id)

	var env struct {
		Contract string                 `json:"contract"`
		Payload  map[string]interface{} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(op.Json), &env))
	assert.Equal(t, "market_swap", env.Contract)
	assert.Equal(t, "tid1", env.Payload["_trackingId"])
}

func TestNewSidechainOperationRequiresUser(t *testing.T) {
	_, err := NewSidechainOperation("", "market_swap", nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestInferType(t *testing.T) {
	// non-custom_json operations keep their name
	assert.Equal(t, "transfer", InferType("transfer", nil))
	assert.Equal(t, "vote", InferType("vote", &CustomJsonOperation{}))

	op, err := NewSidechainOperation("alice", "pool_swap", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "swap", InferType("custom_json", op))

	op, err = NewSidechainOperation("alice", "nft_mint", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "nft_mint", InferType("custom_json", op))

	// unknown contract passes through
	op, err = NewSidechainOperation("alice", "dao_propose", nil)
	require.NoError(t, err)
	assert.Equal(t, "dao_propose", InferType("custom_json", op))

	// unparsable body
	assert.Equal(t, "custom_json", InferType("custom_json", &CustomJsonOperation{Json: "{"}))
}

func TestSimSignerSubmit(t *testing.T) {
	s := NewSimSigner("alice")

	op, err := NewSidechainOperation("alice", "market_swap", nil)
	require.NoError(t, err)

	res, err := s.Submit("custom_json", op, &SubmitOptions{RequiredAuth: AuthActive})
	require.NoError(t, err)
	assert.Equal(t, "steemtx-1", res.Id)
	assert.Len(t, s.Submissions(), 1)
	assert.Equal(t, AuthActive, s.Submissions()[0].Opts.RequiredAuth)
}

func TestSimSignerFailures(t *testing.T) {
	s := NewSimSigner("")
	_, err := s.Submit("custom_json", nil, nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	s.SetUsername("alice")
	s.FailWith(errors.New("rpc down"))
	_, err = s.Submit("custom_json", nil, nil)
	assert.EqualError(t, err, "rpc down")
	assert.Empty(t, s.Submissions())
}

func TestTransactionHooks(t *testing.T) {
	s := NewSimSigner("alice")

	var seen []string
	cancel := RegisterTransactionHook(func(txId, opKind string, op *CustomJsonOperation) {
		seen = append(seen, txId+"/"+opKind)
	})
	defer cancel()

	// a panicking hook must not break the submission
	cancel2 := RegisterTransactionHook(func(txId, opKind string, op *CustomJsonOperation) {
		panic("bad hook")
	})
	defer cancel2()

	_, err := s.Submit("custom_json", &CustomJsonOperation{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"steemtx-1/custom_json"}, seen)

	cancel()
	_, err = s.Submit("transfer", nil, nil)
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}
