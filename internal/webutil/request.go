// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"net/http"

	"vocab_tutor/internal/model"
)

// DecodeJSONBody decodes the request body into dst, rejecting unknown
// fields.
func DecodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.ErrInvalidInput
	}
	return nil
}
