package transport

import (
	"errors"

	"github.com/richard-senior/hoops/pkg/protocol"
)

// ErrMalformed is returned by ReadRequest when a complete frame was read but it
// is not a valid JSON-RPC request. The transport is still usable.
var ErrMalformed = errors.New("malformed request")

// Transport defines the interface for communication methods
type Transport interface {
	ReadRequest() (*protocol.JsonRpcRequest, error)
	WriteResponse(*protocol.JsonRpcResponse) error
}
