// Package httpx holds the request and response helpers shared by the REST handlers.
package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-directory-service/internal/apperror"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"go.uber.org/zap"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes {"message": msg}.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"message": msg})
}

// WriteResult writes {"message": msg, key: v}.
func WriteResult(w http.ResponseWriter, status int, msg, key string, v any) {
	WriteJSON(w, status, map[string]any{"message": msg, key: v})
}

// WriteError maps err onto the dashboard's error contract: client errors as
// {"message"}, everything else as a 500 carrying the raw error text.
func WriteError(w http.ResponseWriter, log logger.ZapLogger, err error) {
	appErr := apperror.From(err)
	status := appErr.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		WriteJSON(w, status, map[string]string{"error": appErr.Error()})
		return
	}
	WriteMessage(w, status, appErr.Error())
}

// DecodeJSON reads a JSON request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apperror.Validation("Invalid JSON body")
	}
	return nil
}

// Form is a parsed multipart or urlencoded request body.
type Form struct {
	values    map[string][]string
	Multipart *multipart.Form
}

// ParseForm accepts multipart/form-data up to maxBytes, a JSON object body,
// or a urlencoded body. Only multipart requests carry files.
func ParseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (*Form, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return nil, apperror.Validation("File too large")
			}
			return nil, apperror.Validation("Invalid multipart form")
		}
		return &Form{values: r.MultipartForm.Value, Multipart: r.MultipartForm}, nil
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return parseJSONForm(r)
	}
	if err := r.ParseForm(); err != nil {
		return nil, apperror.Validation("Invalid form body")
	}
	return &Form{values: r.PostForm}, nil
}

// parseJSONForm flattens a JSON object into form values. Strings keep their
// text; objects, arrays and numbers keep their JSON encoding so Form.JSON can
// decode them. Null members count as absent.
func parseJSONForm(r *http.Request) (*Form, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, apperror.Validation("Request body too large")
		}
		return nil, apperror.Validation("Invalid JSON body")
	}
	values := make(map[string][]string, len(body))
	for key, raw := range body {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		if raw[0] == '"' {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, apperror.Validation("Invalid JSON body")
			}
			values[key] = []string{s}
			continue
		}
		values[key] = []string{string(raw)}
	}
	return &Form{values: values}, nil
}

func (f *Form) Get(key string) string {
	if vs := f.values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func (f *Form) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// GetPtr returns nil when key is absent so partial updates can tell "not sent" from "".
func (f *Form) GetPtr(key string) *string {
	if !f.Has(key) {
		return nil
	}
	v := f.Get(key)
	return &v
}

// JSON decodes a JSON-encoded form value into dst. Absent or empty values
// leave dst untouched and report false.
func (f *Form) JSON(key string, dst any) (bool, error) {
	raw := strings.TrimSpace(f.Get(key))
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, err
	}
	return true, nil
}
