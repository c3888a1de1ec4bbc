package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reqshift/reqshift/internal/core"
)

// PostmanImporter imports Postman collections (v2.0 and v2.1) and
// Postman environment files.
type PostmanImporter struct{}

// NewPostmanImporter creates a new Postman importer.
func NewPostmanImporter() *PostmanImporter {
	return &PostmanImporter{}
}

func (p *PostmanImporter) Name() string {
	return "Postman Collection"
}

func (p *PostmanImporter) Format() Format {
	return FormatPostman
}

func (p *PostmanImporter) FileExtensions() []string {
	return []string{".json", ".postman_collection.json", ".postman_environment.json"}
}

func (p *PostmanImporter) DetectFormat(content []byte) bool {
	return Detect(content) == FormatPostman
}

func (p *PostmanImporter) Import(ctx context.Context, content []byte) (*core.Collection, error) {
	// The environment shape is checked before the collection shape: an
	// environment file has a variable scope marker or a bare values array
	// and no item tree.
	var probe struct {
		Scope  *string           `json:"_postman_variable_scope"`
		Values []postmanEnvValue `json:"values"`
		Item   json.RawMessage   `json:"item"`
	}
	if err := json.Unmarshal(content, &probe); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", ErrParseError, err)
	}

	if probe.Scope != nil || (probe.Values != nil && probe.Item == nil) {
		return p.importEnvironment(content)
	}

	return p.importCollection(content)
}

func (p *PostmanImporter) importEnvironment(content []byte) (*core.Collection, error) {
	var pm postmanEnvironment
	if err := json.Unmarshal(content, &pm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseError, err)
	}

	name := pm.Name
	if name == "" {
		name = "Postman Environment"
	}

	coll := core.NewEnvironment(name)
	if pm.PostmanID != "" {
		coll.ID = pm.PostmanID
	}

	for _, v := range pm.Values {
		variable := core.NewVariable(v.Key, v.Value)
		variable.Type = postmanVariableType(v.Type)
		if v.Enabled != nil {
			variable.Enabled = *v.Enabled
		}
		coll.Variables = append(coll.Variables, variable)
	}

	return coll, nil
}

func (p *PostmanImporter) importCollection(content []byte) (*core.Collection, error) {
	var pm postmanCollection
	if err := json.Unmarshal(content, &pm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseError, err)
	}

	if pm.Info == nil {
		return nil, fmt.Errorf("%w: postman collection has no info block", ErrMissingRequired)
	}

	name := pm.Info.Name
	if name == "" {
		name = "Postman Collection"
	}

	coll := core.NewCollection(name)
	coll.Description = pm.Info.Description
	if pm.Info.PostmanID != "" {
		coll.ID = pm.Info.PostmanID
	}

	for _, v := range pm.Variable {
		variable := core.NewVariable(v.Key, v.Value)
		variable.Type = postmanVariableType(v.Type)
		coll.Variables = append(coll.Variables, variable)
	}

	coll.PreRequestScript, coll.TestScript = extractScripts(pm.Event)

	for _, item := range pm.Item {
		if err := p.importItem(coll, nil, item); err != nil {
			return nil, err
		}
	}

	return coll, nil
}

// importItem appends one item to the collection root or to a folder:
// items with nested items become folders (recursing), items with a
// request object become requests.
func (p *PostmanImporter) importItem(coll *core.Collection, folder *core.Folder, item postmanItem) error {
	if item.Item != nil && item.Request == nil || len(item.Item) > 0 {
		sub := core.NewFolder(item.Name)
		sub.Description = item.Description
		sub.PreRequestScript, sub.TestScript = extractScripts(item.Event)

		for _, child := range item.Item {
			if err := p.importItem(coll, &sub, child); err != nil {
				return err
			}
		}

		if folder == nil {
			coll.Folders = append(coll.Folders, sub)
		} else {
			folder.Folders = append(folder.Folders, sub)
		}
		return nil
	}

	if item.Request != nil {
		req := p.convertRequest(item)
		if folder == nil {
			coll.Requests = append(coll.Requests, req)
		} else {
			folder.Requests = append(folder.Requests, req)
		}
	}

	return nil
}

func (p *PostmanImporter) convertRequest(item postmanItem) core.Request {
	pm := item.Request

	method := pm.Method
	if method == "" {
		method = "GET"
	}

	req := core.NewRequest(item.Name, method, extractURL(pm.URL))
	req.Description = pm.Description

	for _, h := range pm.Header {
		req.Headers = append(req.Headers, core.Header{
			Key:     h.Key,
			Value:   h.Value,
			Enabled: !h.Disabled,
		})
	}

	if pm.Body != nil {
		switch pm.Body.Mode {
		case "raw":
			req.Body = pm.Body.Raw
		case "urlencoded":
			var pairs []string
			for _, p := range pm.Body.URLEncoded {
				if !p.Disabled {
					pairs = append(pairs, fmt.Sprintf("%s=%s", p.Key, p.Value))
				}
			}
			req.Body = strings.Join(pairs, "&")
		case "graphql":
			if pm.Body.GraphQL != nil {
				body := map[string]interface{}{
					"query": pm.Body.GraphQL.Query,
				}
				if pm.Body.GraphQL.Variables != "" {
					var vars interface{}
					if err := json.Unmarshal([]byte(pm.Body.GraphQL.Variables), &vars); err == nil {
						body["variables"] = vars
					}
				}
				data, _ := json.Marshal(body)
				req.Body = string(data)
			}
		}
	}

	req.PreRequestScript, req.TestScript = extractScripts(item.Event)

	normalizeContentType(&req)

	return req
}

// extractScripts pulls pre-request and test script bodies out of a
// Postman event array. Applies uniformly at collection, folder, and
// request granularity.
func extractScripts(events []postmanEvent) (preRequest, test string) {
	for _, event := range events {
		if event.Script == nil {
			continue
		}
		switch event.Listen {
		case "prerequest":
			preRequest = strings.Join(event.Script.Exec, "\n")
		case "test":
			test = strings.Join(event.Script.Exec, "\n")
		}
	}
	return preRequest, test
}

// extractURL handles Postman URLs that may be a plain string or an object
// with raw and component parts.
func extractURL(url interface{}) string {
	switch v := url.(type) {
	case string:
		return v
	case map[string]interface{}:
		if raw, ok := v["raw"].(string); ok {
			return raw
		}
		var result strings.Builder
		if protocol, ok := v["protocol"].(string); ok {
			result.WriteString(protocol)
			result.WriteString("://")
		}
		if host, ok := v["host"].([]interface{}); ok {
			var hostParts []string
			for _, h := range host {
				if s, ok := h.(string); ok {
					hostParts = append(hostParts, s)
				}
			}
			result.WriteString(strings.Join(hostParts, "."))
		}
		if port, ok := v["port"].(string); ok {
			result.WriteString(":")
			result.WriteString(port)
		}
		if path, ok := v["path"].([]interface{}); ok {
			for _, p := range path {
				if s, ok := p.(string); ok {
					result.WriteString("/")
					result.WriteString(s)
				}
			}
		}
		return result.String()
	}
	return ""
}

func postmanVariableType(t string) core.VariableType {
	if strings.EqualFold(t, "secret") {
		return core.VarSecret
	}
	return core.VarDefault
}

// Postman format structures

type postmanCollection struct {
	Info     *postmanInfo   `json:"info"`
	Item     []postmanItem  `json:"item"`
	Event    []postmanEvent `json:"event,omitempty"`
	Variable []postmanVar   `json:"variable,omitempty"`
}

type postmanInfo struct {
	PostmanID   string `json:"_postman_id,omitempty"`
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
	Header      []postmanHeader `json:"header,omitempty"`
	Body        *postmanBody    `json:"body,omitempty"`
	URL         interface{}     `json:"url"` // Can be string or object
	Description string          `json:"description,omitempty"`
}

type postmanHeader struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

type postmanBody struct {
	Mode       string              `json:"mode"`
	Raw        string              `json:"raw,omitempty"`
	URLEncoded []postmanURLEncoded `json:"urlencoded,omitempty"`
	GraphQL    *postmanGraphQL     `json:"graphql,omitempty"`
	Options    *postmanBodyOptions `json:"options,omitempty"`
}

type postmanURLEncoded struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

type postmanGraphQL struct {
	Query     string `json:"query"`
	Variables string `json:"variables,omitempty"`
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
	PostmanID string            `json:"_postman_id,omitempty"`
	Name      string            `json:"name"`
	Scope     string            `json:"_postman_variable_scope,omitempty"`
	Values    []postmanEnvValue `json:"values"`
}

type postmanEnvValue struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// Verify PostmanImporter implements Importer interface
var _ Importer = (*PostmanImporter)(nil)
