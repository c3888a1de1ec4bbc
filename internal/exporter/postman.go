package exporter

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/reqshift/reqshift/internal/core"
)

const postmanSchema = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// PostmanExporter exports collections to Postman format (v2.1).
// Variable-only collections become Postman environment files, the exact
// inverse of the importer's shape split.
type PostmanExporter struct{}

// NewPostmanExporter creates a new Postman exporter.
func NewPostmanExporter() *PostmanExporter {
	return &PostmanExporter{}
}

func (p *PostmanExporter) Name() string {
	return "Postman Collection"
}

func (p *PostmanExporter) Format() Format {
	return FormatPostman
}

func (p *PostmanExporter) FileExtension() string {
	return ".postman_collection.json"
}

func (p *PostmanExporter) Export(ctx context.Context, coll *core.Collection) ([]byte, error) {
	if coll == nil {
		return nil, ErrInvalidCollection
	}

	if coll.Type == core.TypeEnvironment {
		return p.exportEnvironment(coll)
	}

	pm := postmanCollection{
		Info: postmanInfo{
			PostmanID:   coll.ID,
			Name:        coll.Name,
			Description: coll.Description,
			Schema:      postmanSchema,
		},
		Item: make([]postmanItem, 0),
	}

	for _, v := range coll.Variables {
		pm.Variable = append(pm.Variable, postmanVar{
			Key:   v.Key,
			Value: v.Value,
			Type:  postmanVarType(v.Type),
		})
	}

	pm.Event = buildEvents(coll.PreRequestScript, coll.TestScript)

	for _, req := range coll.Requests {
		pm.Item = append(pm.Item, p.convertRequest(req))
	}

	for _, folder := range coll.Folders {
		pm.Item = append(pm.Item, p.convertFolder(folder, 0))
	}

	return json.MarshalIndent(pm, "", "  ")
}

func (p *PostmanExporter) exportEnvironment(coll *core.Collection) ([]byte, error) {
	env := postmanEnvironment{
		PostmanID: coll.ID,
		Name:      coll.Name,
		Scope:     "environment",
		Values:    make([]postmanEnvValue, 0, len(coll.Variables)),
	}

	for _, v := range coll.Variables {
		env.Values = append(env.Values, postmanEnvValue{
			Key:     v.Key,
			Value:   v.Value,
			Type:    postmanVarType(v.Type),
			Enabled: v.Enabled,
		})
	}

	return json.MarshalIndent(env, "", "  ")
}

func (p *PostmanExporter) convertFolder(folder core.Folder, depth int) postmanItem {
	item := postmanItem{
		Name:        folder.Name,
		Description: folder.Description,
		Item:        make([]postmanItem, 0),
		Event:       buildEvents(folder.PreRequestScript, folder.TestScript),
	}

	for _, req := range folder.Requests {
		item.Item = append(item.Item, p.convertRequest(req))
	}

	if depth < maxDepth {
		for _, sf := range folder.Folders {
			item.Item = append(item.Item, p.convertFolder(sf, depth+1))
		}
	}

	return item
}

func (p *PostmanExporter) convertRequest(req core.Request) postmanItem {
	item := postmanItem{
		Name: req.Name,
		Request: &postmanRequest{
			Method:      req.Method,
			URL:         req.URL,
			Description: req.Description,
			Header:      make([]postmanHeader, 0, len(req.Headers)),
		},
		Event: buildEvents(req.PreRequestScript, req.TestScript),
	}

	for _, h := range req.Headers {
		item.Request.Header = append(item.Request.Header, postmanHeader{
			Key:      h.Key,
			Value:    h.Value,
			Disabled: !h.Enabled,
		})
	}

	if req.Body != "" {
		item.Request.Body = &postmanBody{
			Mode: "raw",
			Raw:  req.Body,
		}

		trimmed := strings.TrimSpace(req.Body)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			item.Request.Body.Options = &postmanBodyOptions{}
			item.Request.Body.Options.Raw.Language = "json"
		}
	}

	return item
}

// buildEvents wraps script bodies into a Postman event array, splitting
// on newlines into exec lines.
func buildEvents(preRequest, test string) []postmanEvent {
	var events []postmanEvent
	if preRequest != "" {
		events = append(events, postmanEvent{
			Listen: "prerequest",
			Script: &postmanScript{
				Type: "text/javascript",
				Exec: strings.Split(preRequest, "\n"),
			},
		})
	}
	if test != "" {
		events = append(events, postmanEvent{
			Listen: "test",
			Script: &postmanScript{
				Type: "text/javascript",
				Exec: strings.Split(test, "\n"),
			},
		})
	}
	return events
}

func postmanVarType(t core.VariableType) string {
	if t == core.VarSecret {
		return "secret"
	}
	return "default"
}

// Postman format structures for export

type postmanCollection struct {
	Info     postmanInfo    `json:"info"`
	Item     []postmanItem  `json:"item"`
	Event    []postmanEvent `json:"event,omitempty"`
	Variable []postmanVar   `json:"variable,omitempty"`
}

type postmanInfo struct {
	PostmanID   string `json:"_postman_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Schema      string `json:"schema"`
}

type postmanItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Item        []postmanItem   `json:"item,omitempty"`
	Request     *postmanRequest `json:"request,omitempty"`
	Event       []postmanEvent  `json:"event,omitempty"`
}

type postmanRequest struct {
	Method      string          `json:"method"`
	Header      []postmanHeader `json:"header"`
	Body        *postmanBody    `json:"body,omitempty"`
	URL         string          `json:"url"`
	Description string          `json:"description,omitempty"`
}

type postmanHeader struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

type postmanBody struct {
	Mode    string              `json:"mode"`
	Raw     string              `json:"raw,omitempty"`
	Options *postmanBodyOptions `json:"options,omitempty"`
}

type postmanBodyOptions struct {
	Raw struct {
		Language string `json:"language,omitempty"`
	} `json:"raw,omitempty"`
}

type postmanEvent struct {
	Listen string         `json:"listen"`
	Script *postmanScript `json:"script,omitempty"`
}

type postmanScript struct {
	Type string   `json:"type,omitempty"`
	Exec []string `json:"exec,omitempty"`
}

type postmanVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

type postmanEnvironment struct {
	PostmanID string            `json:"_postman_id"`
	Name      string            `json:"name"`
	Scope     string            `json:"_postman_variable_scope"`
	Values    []postmanEnvValue `json:"values"`
}

type postmanEnvValue struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Enabled bool   `json:"enabled"`
}

// Verify PostmanExporter implements Exporter interface
var _ Exporter = (*PostmanExporter)(nil)
