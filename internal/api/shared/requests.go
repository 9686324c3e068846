package shared

import (
	"encoding/json"
	"net/http"
)

// maxRequestBody caps how much of a request body DecodeJSON reads.
// No payload in this API legitimately approaches it.
const maxRequestBody = 1 << 20

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody)).Decode(v)
}
