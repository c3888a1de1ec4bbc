package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Format
	}{
		{
			name:    "postman collection by schema",
			content: `{"info": {"name": "API", "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"}, "item": []}`,
			want:    FormatPostman,
		},
		{
			name:    "postman v2.0 schema",
			content: `{"info": {"name": "API", "schema": "https://schema.getpostman.com/json/collection/v2.0.0/collection.json"}, "item": []}`,
			want:    FormatPostman,
		},
		{
			name:    "postman environment by scope marker",
			content: `{"name": "Prod", "_postman_variable_scope": "environment", "values": []}`,
			want:    FormatPostman,
		},
		{
			name:    "postman environment by values array",
			content: `{"name": "Prod", "values": [{"key": "host", "value": "api"}]}`,
			want:    FormatPostman,
		},
		{
			name:    "insomnia export",
			content: `{"_type": "export", "__export_format": 4, "resources": []}`,
			want:    FormatInsomnia,
		},
		{
			name:    "insomnia envelope without format marker falls through",
			content: `{"_type": "export", "resources": []}`,
			want:    FormatJSON,
		},
		{
			name:    "thunder client",
			content: `{"colName": "My API", "requests": []}`,
			want:    FormatThunderClient,
		},
		{
			name:    "thunder client without requests falls through",
			content: `{"colName": "My API"}`,
			want:    FormatJSON,
		},
		{
			name:    "generic json object",
			content: `{"host": "api.example.com", "port": 8080}`,
			want:    FormatJSON,
		},
		{
			name:    "json array",
			content: `[1, 2, 3]`,
			want:    FormatJSON,
		},
		{
			name:    "empty object",
			content: `{}`,
			want:    FormatJSON,
		},
		{
			name:    "scalar is unknown",
			content: `42`,
			want:    FormatUnknown,
		},
		{
			name:    "plain text is unknown",
			content: `HOST=api.example.com`,
			want:    FormatUnknown,
		},
		{
			name:    "malformed json is unknown",
			content: `{"info": `,
			want:    FormatUnknown,
		},
		{
			name:    "empty input is unknown",
			content: ``,
			want:    FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect([]byte(tt.content)))
		})
	}
}

func TestDetectOrderPostmanBeforeInsomnia(t *testing.T) {
	// A document carrying both a postman schema and an insomnia envelope
	// classifies as postman because that rule runs first.
	content := `{
		"info": {"name": "Both", "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"},
		"_type": "export",
		"__export_format": 4
	}`
	assert.Equal(t, FormatPostman, Detect([]byte(content)))
}
