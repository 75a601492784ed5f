// Package server carries the fixed-size binary TCP protocol and the
// per-connection request loop.
package server

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Wire sizes. Every request and response is one fixed-size struct, padded
// with NULs, little-endian.
const (
	OpSize      = 64
	PayloadSize = 1024
	MessageSize = 1024
)

// Response status codes.
const (
	StatusOK    int32 = 0
	StatusError int32 = 1
)

// Request is the client-to-server frame: an operation name and a
// space-separated text payload.
type Request struct {
	Op      [OpSize]byte
	Payload [PayloadSize]byte
}

// Response is the server-to-client frame.
type Response struct {
	Status  int32
	Message [MessageSize]byte
}

// OpString returns the operation name with NUL padding stripped.
func (r *Request) OpString() string {
	return trimNul(r.Op[:])
}

// PayloadString returns the payload text with NUL padding stripped.
func (r *Request) PayloadString() string {
	return trimNul(r.Payload[:])
}

func trimNul(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

// ReadRequest reads one request frame. io.EOF means the peer closed the
// connection cleanly between frames.
func ReadRequest(r io.Reader) (*Request, error) {
	var req Request
	if err := binary.Read(r, binary.LittleEndian, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// WriteResponse writes one response frame. The message is truncated to the
// frame size; the frame always keeps a trailing NUL.
func WriteResponse(w io.Writer, status int32, message string) error {
	var resp Response
	resp.Status = status
	copy(resp.Message[:MessageSize-1], message)
	return binary.Write(w, binary.LittleEndian, &resp)
}

// NewRequest builds a request frame for a client. Op and payload longer
// than the frame fields are truncated.
func NewRequest(op, payload string) *Request {
	var req Request
	copy(req.Op[:OpSize-1], op)
	copy(req.Payload[:PayloadSize-1], payload)
	return &req
}

// ReadResponse reads one response frame on the client side.
func ReadResponse(r io.Reader) (int32, string, error) {
	var resp Response
	if err := binary.Read(r, binary.LittleEndian, &resp); err != nil {
		return 0, "", err
	}
	return resp.Status, trimNul(resp.Message[:]), nil
}

// WriteRequest writes one request frame on the client side.
func WriteRequest(w io.Writer, req *Request) error {
	return binary.Write(w, binary.LittleEndian, req)
}
