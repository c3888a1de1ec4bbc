package exporter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/reqshift/reqshift/internal/core"
)

// InsomniaExporter exports collections to the Insomnia v4 export format:
// a flat resource array linked by parentId, the inverse of the importer's
// tree rebuild.
type InsomniaExporter struct{}

// NewInsomniaExporter creates a new Insomnia exporter.
func NewInsomniaExporter() *InsomniaExporter {
	return &InsomniaExporter{}
}

func (i *InsomniaExporter) Name() string {
	return "Insomnia Export"
}

func (i *InsomniaExporter) Format() Format {
	return FormatInsomnia
}

func (i *InsomniaExporter) FileExtension() string {
	return ".insomnia.json"
}

func (i *InsomniaExporter) Export(ctx context.Context, coll *core.Collection) ([]byte, error) {
	if coll == nil {
		return nil, ErrInvalidCollection
	}

	workspaceID := coll.ID
	if workspaceID == "" {
		workspaceID = uuid.New().String()
	}

	export := insomniaExport{
		Type:         "export",
		ExportFormat: 4,
		ExportDate:   time.Now().UTC().Format(time.RFC3339),
		ExportSource: "reqshift",
		Resources: []insomniaResource{
			{
				ID:          workspaceID,
				Type:        "workspace",
				Name:        coll.Name,
				Description: coll.Description,
				Scope:       "collection",
			},
		},
	}

	if len(coll.Variables) > 0 {
		data := make(map[string]string, len(coll.Variables))
		for _, v := range coll.Variables {
			data[v.Key] = v.Value
		}
		export.Resources = append(export.Resources, insomniaResource{
			ID:       "env_" + uuid.New().String(),
			Type:     "environment",
			ParentID: workspaceID,
			Name:     "Base Environment",
			Data:     data,
		})
	}

	for _, req := range coll.Requests {
		export.Resources = append(export.Resources, i.convertRequest(req, workspaceID))
	}
	for _, folder := range coll.Folders {
		export.Resources = i.appendFolder(export.Resources, folder, workspaceID, 0)
	}

	return json.MarshalIndent(export, "", "  ")
}

// appendFolder flattens a folder subtree into request_group and request
// resources parented to the given id.
func (i *InsomniaExporter) appendFolder(resources []insomniaResource, folder core.Folder, parentID string, depth int) []insomniaResource {
	folderID := folder.ID
	if folderID == "" {
		folderID = uuid.New().String()
	}

	resources = append(resources, insomniaResource{
		ID:                  folderID,
		Type:                "request_group",
		ParentID:            parentID,
		Name:                folder.Name,
		Description:         folder.Description,
		PreRequestScript:    folder.PreRequestScript,
		AfterResponseScript: folder.TestScript,
	})

	for _, req := range folder.Requests {
		resources = append(resources, i.convertRequest(req, folderID))
	}

	if depth < maxDepth {
		for _, sf := range folder.Folders {
			resources = i.appendFolder(resources, sf, folderID, depth+1)
		}
	}

	return resources
}

func (i *InsomniaExporter) convertRequest(req core.Request, parentID string) insomniaResource {
	res := insomniaResource{
		ID:                  req.ID,
		Type:                "request",
		ParentID:            parentID,
		Name:                req.Name,
		Description:         req.Description,
		Method:              req.Method,
		URL:                 req.URL,
		PreRequestScript:    req.PreRequestScript,
		AfterResponseScript: req.TestScript,
	}
	if res.ID == "" {
		res.ID = uuid.New().String()
	}

	for _, h := range req.Headers {
		res.Headers = append(res.Headers, insomniaHeader{
			Name:     h.Key,
			Value:    h.Value,
			Disabled: !h.Enabled,
		})
	}

	if req.Body != "" {
		mimeType := ""
		if h, ok := req.Header("Content-Type"); ok {
			mimeType = h.Value
		}
		res.Body = &insomniaBody{
			MimeType: mimeType,
			Text:     req.Body,
		}
	}

	return res
}

// Insomnia format structures for export

type insomniaExport struct {
	Type         string             `json:"_type"`
	ExportFormat int                `json:"__export_format"`
	ExportDate   string             `json:"__export_date,omitempty"`
	ExportSource string             `json:"__export_source,omitempty"`
	Resources    []insomniaResource `json:"resources"`
}

type insomniaResource struct {
	ID          string `json:"_id"`
	Type        string `json:"_type"`
	ParentID    string `json:"parentId,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Scope       string `json:"scope,omitempty"`

	Method              string           `json:"method,omitempty"`
	URL                 string           `json:"url,omitempty"`
	Headers             []insomniaHeader `json:"headers,omitempty"`
	Body                *insomniaBody    `json:"body,omitempty"`
	PreRequestScript    string           `json:"preRequestScript,omitempty"`
	AfterResponseScript string           `json:"afterResponseScript,omitempty"`

	Data map[string]string `json:"data,omitempty"`
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

// Verify InsomniaExporter implements Exporter interface
var _ Exporter = (*InsomniaExporter)(nil)
