package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reqshift/reqshift/internal/core"
)

// InsomniaImporter imports Insomnia v4 export files. The export is a flat
// resource array tagged by _type; the tree is rebuilt from parentId links.
type InsomniaImporter struct{}

// NewInsomniaImporter creates a new Insomnia importer.
func NewInsomniaImporter() *InsomniaImporter {
	return &InsomniaImporter{}
}

func (i *InsomniaImporter) Name() string {
	return "Insomnia Export"
}

func (i *InsomniaImporter) Format() Format {
	return FormatInsomnia
}

func (i *InsomniaImporter) FileExtensions() []string {
	return []string{".json", ".insomnia.json"}
}

func (i *InsomniaImporter) DetectFormat(content []byte) bool {
	return Detect(content) == FormatInsomnia
}

func (i *InsomniaImporter) Import(ctx context.Context, content []byte) (*core.Collection, error) {
	var export insomniaExport
	if err := json.Unmarshal(content, &export); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseError, err)
	}

	if export.Resources == nil {
		return nil, fmt.Errorf("%w: insomnia export has no resources array", ErrMissingRequired)
	}

	coll := core.NewCollection("Insomnia Collection")

	var workspaceID string
	for _, res := range export.Resources {
		if res.Type == "workspace" {
			workspaceID = res.ID
			if res.Name != "" {
				coll.Name = res.Name
			}
			if res.ID != "" {
				coll.ID = res.ID
			}
			coll.Description = res.Description
			break
		}
	}

	// Every environment resource's data map flattens into the variable
	// list, each entry with the default type.
	for _, res := range export.Resources {
		if res.Type != "environment" {
			continue
		}
		for _, key := range sortedRawKeys(res.Data) {
			coll.Variables = append(coll.Variables, core.NewVariable(key, rawToString(res.Data[key])))
		}
	}

	// Root-level items are those parented to the workspace or orphaned.
	for _, res := range export.Resources {
		if !isRootLevel(res, workspaceID) {
			continue
		}
		switch res.Type {
		case "request":
			coll.Requests = append(coll.Requests, i.convertRequest(res))
		case "request_group":
			coll.Folders = append(coll.Folders, i.buildFolder(res, export.Resources))
		}
	}

	return coll, nil
}

func isRootLevel(res insomniaResource, workspaceID string) bool {
	return res.ParentID == "" || res.ParentID == workspaceID
}

// buildFolder recursively collects the children of a request group.
func (i *InsomniaImporter) buildFolder(group insomniaResource, resources []insomniaResource) core.Folder {
	folder := core.NewFolder(group.Name)
	if group.ID != "" {
		folder.ID = group.ID
	}
	folder.Description = group.Description
	folder.PreRequestScript = group.PreRequestScript
	folder.TestScript = group.AfterResponseScript

	for _, res := range resources {
		if res.ParentID != group.ID {
			continue
		}
		switch res.Type {
		case "request":
			folder.Requests = append(folder.Requests, i.convertRequest(res))
		case "request_group":
			folder.Folders = append(folder.Folders, i.buildFolder(res, resources))
		}
	}

	return folder
}

func (i *InsomniaImporter) convertRequest(res insomniaResource) core.Request {
	method := res.Method
	if method == "" {
		method = "GET"
	}

	req := core.NewRequest(res.Name, method, res.URL)
	if res.ID != "" {
		req.ID = res.ID
	}
	req.Description = res.Description
	req.PreRequestScript = res.PreRequestScript
	req.TestScript = res.AfterResponseScript

	for _, h := range res.Headers {
		req.Headers = append(req.Headers, core.Header{
			Key:     h.Name,
			Value:   h.Value,
			Enabled: !h.Disabled,
		})
	}

	if res.Body != nil {
		req.Body = res.Body.Text
	}

	normalizeContentType(&req)

	return req
}

// Insomnia format structures

type insomniaExport struct {
	Type         string             `json:"_type"`
	ExportFormat int                `json:"__export_format"`
	Resources    []insomniaResource `json:"resources"`
}

type insomniaResource struct {
	ID          string `json:"_id"`
	Type        string `json:"_type"`
	ParentID    string `json:"parentId,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	// request fields
	Method              string           `json:"method,omitempty"`
	URL                 string           `json:"url,omitempty"`
	Headers             []insomniaHeader `json:"headers,omitempty"`
	Body                *insomniaBody    `json:"body,omitempty"`
	PreRequestScript    string           `json:"preRequestScript,omitempty"`
	AfterResponseScript string           `json:"afterResponseScript,omitempty"`

	// environment fields
	Data map[string]json.RawMessage `json:"data,omitempty"`
}

type insomniaHeader struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

type insomniaBody struct {
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Verify InsomniaImporter implements Importer interface
var _ Importer = (*InsomniaImporter)(nil)
