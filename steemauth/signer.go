// The external signing collaborator. Building and broadcasting the base
// chain operation is delegated to an authentication library; this package
// pins down the contract the tracker depends on and ships an in-process
// implementation for tests.

package steemauth

import (
	"encoding/json"
	"errors"
)

var (
	ErrNotAuthenticated = errors.New("no authenticated user identity")
	ErrSignerFailure    = errors.New("signer failed to broadcast operation")
)

// Required authority levels of the base chain.
const (
	AuthActive  = "active"
	AuthPosting = "posting"
)

// Operation id routing custom_json payloads to the sidechain processor.
const SidechainOpId = "sidechain"

type CustomJsonOperation struct {
	RequiredAuths        []string `json:"required_auths"`
	RequiredPostingAuths []string `json:"required_posting_auths"`
	Id                   string   `json:"id"`
	Json                 string   `json:"json"`
}

type SubmitOptions struct {
	RequiredAuth string
}

// Result of a successful broadcast: the base chain transaction id.
type Result struct {
	Id string
}

type Signer interface {
	// Username returns the signed-in identity, empty when none.
	Username() string
	// Submit signs and broadcasts one operation, returning the base chain
	// transaction id. Fails with an authentication or network error.
	Submit(opKind string, op *CustomJsonOperation, opts *SubmitOptions) (*Result, error)
}

// sidechainEnvelope is what ends up in the custom_json body.
type sidechainEnvelope struct {
	Contract string                 `json:"contract"`
	Payload  map[string]interface{} `json:"payload"`
}

// NewSidechainOperation builds the signer-ready custom_json operation
// embedding the contract call payload.
func NewSidechainOperation(username, contract string, payload map[string]interface{}) (*CustomJsonOperation, error) {
	if username == "" {
		return nil, ErrNotAuthenticated
	}

	body, err := json.Marshal(sidechainEnvelope{Contract: contract, Payload: payload})
	if err != nil {
		return nil, err
	}

	return &CustomJsonOperation{
		RequiredAuths:        []string{username},
		RequiredPostingAuths: []string{},
		Id:                   SidechainOpId,
		Json:                 string(body),
	}, nil
}
