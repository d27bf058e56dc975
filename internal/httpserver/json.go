package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

const (
	OneMegabyte = 1_000_000
	// MaxBody limits the size of request payloads
	MaxBody = OneMegabyte
)

// ReadJSON decodes the body of r into out, bodies larger than MaxBody
// are rejected.
func ReadJSON(w http.ResponseWriter, r *http.Request, out interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBody))
	err := dec.Decode(out)
	if errors.Is(err, io.EOF) {
		return errors.New("missing request body")
	} else if err != nil {
		return fmt.Errorf("invalid request body, cause %w", err)
	}
	return nil
}

// EncodeJSON renders v into a buffer, so encoding errors can be handled
// before anything is written to the client.
func EncodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	err := json.NewEncoder(&buf).Encode(v)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON sends v as the response body with the given status
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	buf, err := EncodeJSON(v)
	if err != nil {
		http.Error(w, "unable to encode response", http.StatusInternalServerError)
		return err
	}
	WriteBody(w, status, buf)
	return nil
}

// WriteBody sends an already encoded JSON body
func WriteBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	w.Write(body)
}
