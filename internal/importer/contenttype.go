package importer

import (
	"encoding/json"
	"strings"

	"github.com/reqshift/reqshift/internal/core"
)

// normalizeContentType applies the shared content-type heuristic after a
// parser has filled in a request body. For a syntactically valid JSON
// body: a missing Content-Type header is appended as application/json,
// and an existing text/plain header is rewritten to application/json
// (dropping any charset parameter). Any other existing value, and any
// non-JSON body, is left alone.
func normalizeContentType(req *core.Request) {
	body := strings.TrimSpace(req.Body)
	if body == "" || (body[0] != '{' && body[0] != '[') {
		return
	}
	if !json.Valid([]byte(body)) {
		return
	}

	h, ok := req.Header("Content-Type")
	if !ok {
		req.Headers = append(req.Headers, core.Header{
			Key:     "Content-Type",
			Value:   "application/json",
			Enabled: true,
		})
		return
	}

	mediaType := strings.TrimSpace(strings.SplitN(h.Value, ";", 2)[0])
	if strings.EqualFold(mediaType, "text/plain") {
		req.SetHeader("Content-Type", "application/json")
	}
}
