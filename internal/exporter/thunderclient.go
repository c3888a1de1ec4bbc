package exporter

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reqshift/reqshift/internal/core"
)

// ThunderClientExporter exports collections to the Thunder Client format.
// The target format holds folders only one level deep, so deeper unified
// folders are flattened into "Parent / Child" named folders.
type ThunderClientExporter struct{}

// NewThunderClientExporter creates a new Thunder Client exporter.
func NewThunderClientExporter() *ThunderClientExporter {
	return &ThunderClientExporter{}
}

func (t *ThunderClientExporter) Name() string {
	return "Thunder Client Collection"
}

func (t *ThunderClientExporter) Format() Format {
	return FormatThunderClient
}

func (t *ThunderClientExporter) FileExtension() string {
	return ".json"
}

func (t *ThunderClientExporter) Export(ctx context.Context, coll *core.Collection) ([]byte, error) {
	if coll == nil {
		return nil, ErrInvalidCollection
	}

	tc := thunderCollection{
		ID:       coll.ID,
		ColName:  coll.Name,
		Version:  "1.2",
		Exported: time.Now().UTC().Format(time.RFC3339),
		Folders:  make([]thunderFolder, 0, len(coll.Folders)),
		Requests: make([]thunderRequest, 0, len(coll.Requests)),
	}
	if tc.ID == "" {
		tc.ID = uuid.New().String()
	}

	for _, req := range coll.Requests {
		tc.Requests = append(tc.Requests, t.convertRequest(req))
	}

	for _, folder := range coll.Folders {
		tc.Folders = t.appendFolder(tc.Folders, folder, "", 0)
	}

	return json.MarshalIndent(tc, "", "  ")
}

// appendFolder emits one flat folder per unified folder, prefixing nested
// folder names with their ancestry path.
func (t *ThunderClientExporter) appendFolder(folders []thunderFolder, folder core.Folder, prefix string, depth int) []thunderFolder {
	name := folder.Name
	if prefix != "" {
		name = prefix + " / " + name
	}

	tf := thunderFolder{
		ID:   folder.ID,
		Name: name,
	}
	if tf.ID == "" {
		tf.ID = uuid.New().String()
	}
	for _, req := range folder.Requests {
		tf.Requests = append(tf.Requests, t.convertRequest(req))
	}
	folders = append(folders, tf)

	if depth < maxDepth {
		for _, sf := range folder.Folders {
			folders = t.appendFolder(folders, sf, name, depth+1)
		}
	}

	return folders
}

func (t *ThunderClientExporter) convertRequest(req core.Request) thunderRequest {
	tr := thunderRequest{
		ID:     req.ID,
		Name:   req.Name,
		Method: req.Method,
		URL:    req.URL,
	}
	if tr.ID == "" {
		tr.ID = uuid.New().String()
	}

	for _, h := range req.Headers {
		active := h.Enabled
		tr.Headers = append(tr.Headers, thunderHeader{
			Name:   h.Key,
			Value:  h.Value,
			Active: &active,
		})
	}

	if req.Body != "" {
		bodyType := "text"
		if h, ok := req.Header("Content-Type"); ok && strings.HasPrefix(h.Value, "application/json") {
			bodyType = "json"
		}
		tr.Body = &thunderBody{
			Type: bodyType,
			Raw:  req.Body,
		}
	}

	return tr
}

// Thunder Client format structures for export

type thunderCollection struct {
	ID       string           `json:"_id"`
	ColName  string           `json:"colName"`
	Version  string           `json:"version,omitempty"`
	Exported string           `json:"dateExported,omitempty"`
	Folders  []thunderFolder  `json:"folders"`
	Requests []thunderRequest `json:"requests"`
}

type thunderFolder struct {
	ID       string           `json:"_id"`
	Name     string           `json:"name"`
	Requests []thunderRequest `json:"requests,omitempty"`
}

type thunderRequest struct {
	ID      string          `json:"_id"`
	Name    string          `json:"name"`
	Method  string          `json:"method"`
	URL     string          `json:"url"`
	Headers []thunderHeader `json:"headers,omitempty"`
	Body    *thunderBody    `json:"body,omitempty"`
}

type thunderHeader struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Active *bool  `json:"active,omitempty"`
}

type thunderBody struct {
	Type string `json:"type,omitempty"`
	Raw  string `json:"raw,omitempty"`
}

// Verify ThunderClientExporter implements Exporter interface
var _ Exporter = (*ThunderClientExporter)(nil)
