package transport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/protocol"
)

// StdioTransport implements communication over standard input/output.
// Requests are read as whole JSON objects, newlines inside them are allowed.
type StdioTransport struct {
	reader *bufio.Reader
	mu     sync.Mutex
	writer *bufio.Writer
}

// NewStdioTransport creates a new transport that uses stdin/stdout
func NewStdioTransport() *StdioTransport {
	return NewStreamTransport(os.Stdin, os.Stdout)
}

// NewStreamTransport frames requests from r and writes responses to w
func NewStreamTransport(r io.Reader, w io.Writer) *StdioTransport {
	return &StdioTransport{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
	}
}

// ReadRequest reads the next JSON-RPC request
func (t *StdioTransport) ReadRequest() (*protocol.JsonRpcRequest, error) {
	logger.Debug("Waiting for request on stdin...")

	frame, err := t.readFrame()
	if err != nil {
		if err == io.EOF {
			logger.Info("Received EOF on stdin, client disconnected")
		} else {
			logger.Error("Error reading from stdin:", err)
		}
		return nil, err
	}
	logger.Debug("Received raw request:", string(frame))

	request, err := protocol.ParseJsonRpcRequest(frame)
	if err != nil {
		logger.Error("Failed to parse JSON-RPC request:", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return request, nil
}

// readFrame returns the bytes of one top level JSON object. Anything between
// objects (whitespace, stray text) is dropped. Braces inside strings are ignored.
func (t *StdioTransport) readFrame() ([]byte, error) {
	var data []byte
	depth := 0
	inString := false
	escaped := false

	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			if err == io.EOF && depth > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}

		if depth == 0 {
			if b != '{' {
				continue
			}
			depth = 1
			data = append(data[:0], b)
			continue
		}

		data = append(data, b)
		switch {
		case escaped:
			escaped = false
		case inString && b == '\\':
			escaped = true
		case b == '"':
			inString = !inString
		case inString:
		case b == '{':
			depth++
		case b == '}':
			depth--
			if depth == 0 {
				return data, nil
			}
		}
	}
}

// WriteResponse writes a JSON-RPC response as a single line
func (t *StdioTransport) WriteResponse(response *protocol.JsonRpcResponse) error {
	responseBytes, err := json.Marshal(response)
	if err != nil {
		logger.Error("Failed to marshal response:", err)
		return err
	}
	responseBytes = append(responseBytes, '\n')

	logger.Debug("Sending response:", string(responseBytes))

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.writer.Write(responseBytes); err != nil {
		logger.Error("Failed to write response:", err)
		return err
	}
	if err := t.writer.Flush(); err != nil {
		logger.Error("Failed to flush response:", err)
		return err
	}
	return nil
}
