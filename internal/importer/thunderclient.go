package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reqshift/reqshift/internal/core"
)

// ThunderClientImporter imports Thunder Client collection exports.
// The source format is at most two levels deep: folders hold requests
// but never nested folders, so the importer does not recurse.
type ThunderClientImporter struct{}

// NewThunderClientImporter creates a new Thunder Client importer.
func NewThunderClientImporter() *ThunderClientImporter {
	return &ThunderClientImporter{}
}

func (t *ThunderClientImporter) Name() string {
	return "Thunder Client Collection"
}

func (t *ThunderClientImporter) Format() Format {
	return FormatThunderClient
}

func (t *ThunderClientImporter) FileExtensions() []string {
	return []string{".json"}
}

func (t *ThunderClientImporter) DetectFormat(content []byte) bool {
	return Detect(content) == FormatThunderClient
}

func (t *ThunderClientImporter) Import(ctx context.Context, content []byte) (*core.Collection, error) {
	var tc thunderCollection
	if err := json.Unmarshal(content, &tc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseError, err)
	}

	if tc.ColName == "" && tc.Requests == nil && tc.Folders == nil {
		return nil, fmt.Errorf("%w: thunder client collection has no colName or requests", ErrMissingRequired)
	}

	name := tc.ColName
	if name == "" {
		name = "Thunder Client Collection"
	}

	coll := core.NewCollection(name)
	if tc.ID != "" {
		coll.ID = tc.ID
	}

	for _, f := range tc.Folders {
		folder := core.NewFolder(f.Name)
		if f.ID != "" {
			folder.ID = f.ID
		}
		for _, r := range f.Requests {
			folder.Requests = append(folder.Requests, t.convertRequest(r))
		}
		coll.Folders = append(coll.Folders, folder)
	}

	for _, r := range tc.Requests {
		coll.Requests = append(coll.Requests, t.convertRequest(r))
	}

	return coll, nil
}

func (t *ThunderClientImporter) convertRequest(tr thunderRequest) core.Request {
	method := tr.Method
	if method == "" {
		method = "GET"
	}

	req := core.NewRequest(tr.Name, method, tr.URL)
	if tr.ID != "" {
		req.ID = tr.ID
	}

	for _, h := range tr.Headers {
		req.Headers = append(req.Headers, core.Header{
			Key:     h.Name,
			Value:   h.Value,
			Enabled: h.Active == nil || *h.Active,
		})
	}

	if tr.Body != nil {
		req.Body = tr.Body.Raw
	}

	normalizeContentType(&req)

	return req
}

// Thunder Client format structures

type thunderCollection struct {
	ID       string           `json:"_id,omitempty"`
	ColName  string           `json:"colName"`
	Folders  []thunderFolder  `json:"folders,omitempty"`
	Requests []thunderRequest `json:"requests"`
}

type thunderFolder struct {
	ID       string           `json:"_id,omitempty"`
	Name     string           `json:"name"`
	Requests []thunderRequest `json:"requests,omitempty"`
}

type thunderRequest struct {
	ID      string          `json:"_id,omitempty"`
	Name    string          `json:"name"`
	Method  string          `json:"method"`
	URL     string          `json:"url"`
	Headers []thunderHeader `json:"headers,omitempty"`
	Body    *thunderBody    `json:"body,omitempty"`
}

// Thunder Client headers use name/value/active, not key/value/enabled.
type thunderHeader struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Active *bool  `json:"active,omitempty"`
}

type thunderBody struct {
	Type string `json:"type,omitempty"`
	Raw  string `json:"raw,omitempty"`
}

// Verify ThunderClientImporter implements Importer interface
var _ Importer = (*ThunderClientImporter)(nil)
