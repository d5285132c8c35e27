package utils

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// ReadJSON decodes a request body, rejecting unknown fields so malformed
// payloads fail loudly instead of half-parsing.
func ReadJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func GenerateUUID() string {
	return uuid.New().String()
}
