package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps request bodies. HealthMate payloads are a handful of
// fields, so anything near this is abuse.
const MaxBodyBytes = 1 << 20

// WriteJSON sends v with status code. Responses carry personal health data
// and are never cacheable.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	h.Set("Pragma", "no-cache")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError sends the {"error": code, "message": text} body the client
// gateway turns into its failure message.
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	WriteJSON(w, code, struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}{errCode, message})
}

// DecodeJSON reads one JSON value into v. An empty body leaves v at its zero
// value; a second value after the first is rejected.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("decode body: unexpected data after JSON value")
	}
	return nil
}
