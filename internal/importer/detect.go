package importer

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Detect classifies a raw JSON payload into one of the supported source
// formats using structural fingerprints. First match wins; the order
// matters because some formats share shallow shape. A successfully parsed
// JSON object or array never classifies as unknown — unknown is reserved
// for non-JSON input and parse failures.
func Detect(content []byte) Format {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return FormatUnknown
	}

	var value interface{}
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return FormatUnknown
	}

	obj, ok := value.(map[string]interface{})
	if !ok {
		if _, isArray := value.([]interface{}); isArray {
			return FormatJSON
		}
		return FormatUnknown
	}

	// Postman collection: info.schema mentions postman.
	if info, ok := obj["info"].(map[string]interface{}); ok {
		if schema, ok := info["schema"].(string); ok && strings.Contains(schema, "postman") {
			return FormatPostman
		}
	}

	// Postman environment: variable scope marker or a values array.
	if _, ok := obj["_postman_variable_scope"]; ok {
		return FormatPostman
	}
	if _, ok := obj["values"].([]interface{}); ok {
		return FormatPostman
	}

	// Insomnia export envelope.
	if t, ok := obj["_type"].(string); ok && t == "export" && truthy(obj["__export_format"]) {
		return FormatInsomnia
	}

	// Thunder Client collection.
	if _, hasName := obj["colName"]; hasName {
		if _, hasRequests := obj["requests"]; hasRequests {
			return FormatThunderClient
		}
	}

	return FormatJSON
}

// truthy mirrors loose boolean coercion for a decoded JSON value.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
