package core

import (
	"strings"

	"github.com/google/uuid"
)

// SchemaVersion tags the unified model itself, independent of any source
// format's version. Every parser stamps this on the collections it builds.
const SchemaVersion = "1.0"

// CollectionType distinguishes request collections from variable-only
// environments.
type CollectionType string

const (
	TypeCollection  CollectionType = "collection"
	TypeEnvironment CollectionType = "environment"
)

// VariableType classifies a variable's value.
type VariableType string

const (
	VarDefault VariableType = "default"
	VarString  VariableType = "string"
	VarSecret  VariableType = "secret"
	VarNumber  VariableType = "number"
	VarBoolean VariableType = "boolean"
)

// Collection is the canonical tree every source format parses into and
// every target format serializes from. Values are treated as immutable
// after parsing: mutations go through Clone and return a new tree.
type Collection struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Version      string         `json:"version" yaml:"version"`
	Type         CollectionType `json:"type" yaml:"type"`
	SourceFormat string         `json:"sourceFormat,omitempty" yaml:"source_format,omitempty"`

	Variables []Variable `json:"variables,omitempty" yaml:"variables,omitempty"`
	Folders   []Folder   `json:"folders,omitempty" yaml:"folders,omitempty"`
	Requests  []Request  `json:"requests,omitempty" yaml:"requests,omitempty"`

	PreRequestScript string `json:"preRequestScript,omitempty" yaml:"pre_request_script,omitempty"`
	TestScript       string `json:"testScript,omitempty" yaml:"test_script,omitempty"`
}

// Folder is a recursive container of requests and child folders.
type Folder struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Requests []Request `json:"requests,omitempty" yaml:"requests,omitempty"`
	Folders  []Folder  `json:"folders,omitempty" yaml:"folders,omitempty"`

	PreRequestScript string `json:"preRequestScript,omitempty" yaml:"pre_request_script,omitempty"`
	TestScript       string `json:"testScript,omitempty" yaml:"test_script,omitempty"`
}

// Request is a single saved HTTP request. URL, header values and body may
// contain {{variable}} placeholders; the core never resolves them.
type Request struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Method      string   `json:"method" yaml:"method"`
	URL         string   `json:"url" yaml:"url"`
	Headers     []Header `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body        string   `json:"body,omitempty" yaml:"body,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	PreRequestScript string `json:"preRequestScript,omitempty" yaml:"pre_request_script,omitempty"`
	TestScript       string `json:"testScript,omitempty" yaml:"test_script,omitempty"`
}

// Header is a single request header. Disabled headers are preserved, not
// dropped, across parse/convert round-trips.
type Header struct {
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Variable is one key-value entry. Within a collection duplicate keys are
// last-write-wins; order matters only for display.
type Variable struct {
	ID          string       `json:"id" yaml:"id"`
	Key         string       `json:"key" yaml:"key"`
	Value       string       `json:"value" yaml:"value"`
	Type        VariableType `json:"type" yaml:"type"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     bool         `json:"enabled" yaml:"enabled"`
}

// NewCollection creates an empty request collection.
func NewCollection(name string) *Collection {
	return &Collection{
		ID:      uuid.New().String(),
		Name:    name,
		Version: SchemaVersion,
		Type:    TypeCollection,
	}
}

// NewEnvironment creates a variable-only collection.
func NewEnvironment(name string) *Collection {
	c := NewCollection(name)
	c.Type = TypeEnvironment
	return c
}

// NewFolder creates an empty folder.
func NewFolder(name string) Folder {
	return Folder{ID: uuid.New().String(), Name: name}
}

// NewRequest creates a request with a fresh id.
func NewRequest(name, method, url string) Request {
	return Request{ID: uuid.New().String(), Name: name, Method: method, URL: url}
}

// NewVariable creates an enabled variable of the default type.
func NewVariable(key, value string) Variable {
	return Variable{ID: uuid.New().String(), Key: key, Value: value, Type: VarDefault, Enabled: true}
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	clone := *c
	clone.Variables = append([]Variable(nil), c.Variables...)
	clone.Folders = cloneFolders(c.Folders)
	clone.Requests = cloneRequests(c.Requests)
	return &clone
}

// Clone returns a deep copy of the folder and its subtree.
func (f Folder) Clone() Folder {
	clone := f
	clone.Requests = cloneRequests(f.Requests)
	clone.Folders = cloneFolders(f.Folders)
	return clone
}

// Clone returns a deep copy of the request.
func (r Request) Clone() Request {
	clone := r
	clone.Headers = append([]Header(nil), r.Headers...)
	return clone
}

func cloneFolders(folders []Folder) []Folder {
	if folders == nil {
		return nil
	}
	out := make([]Folder, len(folders))
	for i, f := range folders {
		out[i] = f.Clone()
	}
	return out
}

func cloneRequests(requests []Request) []Request {
	if requests == nil {
		return nil
	}
	out := make([]Request, len(requests))
	for i, r := range requests {
		out[i] = r.Clone()
	}
	return out
}

// Header returns the first header whose key matches case-insensitively.
func (r *Request) Header(key string) (Header, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Key, key) {
			return h, true
		}
	}
	return Header{}, false
}

// SetHeader replaces the value of an existing header (case-insensitive key
// match) or appends a new enabled one.
func (r *Request) SetHeader(key, value string) {
	for i, h := range r.Headers {
		if strings.EqualFold(h.Key, key) {
			r.Headers[i].Value = value
			return
		}
	}
	r.Headers = append(r.Headers, Header{Key: key, Value: value, Enabled: true})
}

// VariableMap flattens enabled variables into a lookup map. Duplicate keys
// are last-write-wins, matching display order.
func (c *Collection) VariableMap() map[string]string {
	m := make(map[string]string, len(c.Variables))
	for _, v := range c.Variables {
		if v.Enabled {
			m[v.Key] = v.Value
		}
	}
	return m
}

// RequestCount returns the total number of requests in the tree.
func (c *Collection) RequestCount() int {
	count := len(c.Requests)
	for _, f := range c.Folders {
		count += f.requestCount()
	}
	return count
}

func (f Folder) requestCount() int {
	count := len(f.Requests)
	for _, sf := range f.Folders {
		count += sf.requestCount()
	}
	return count
}

// FolderCount returns the total number of folders in the tree.
func (c *Collection) FolderCount() int {
	count := 0
	for _, f := range c.Folders {
		count += 1 + f.folderCount()
	}
	return count
}

func (f Folder) folderCount() int {
	count := 0
	for _, sf := range f.Folders {
		count += 1 + sf.folderCount()
	}
	return count
}
