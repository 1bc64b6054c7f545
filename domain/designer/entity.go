// Package designer models the navigation hierarchy a flow canvas edits:
// workflows contain contexts, contexts contain presets. The designer projects
// that hierarchy onto a canvas graph and lays it out automatically.
package designer

import "github.com/google/uuid"

// Workflow is a high-level feature area or user journey
type Workflow struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Icon           string         `json:"icon,omitempty"`
	Contexts       []*Context     `json:"contexts,omitempty"`
	DefaultContext string         `json:"defaultContext,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// NewWorkflow creates a workflow with a generated ID
func NewWorkflow(name string) *Workflow {
	return &Workflow{ID: uuid.New().String(), Name: name}
}

// WithID overrides the generated ID
func (w *Workflow) WithID(id string) *Workflow {
	w.ID = id
	return w
}

// AddContext appends a context. The first context added becomes the default.
func (w *Workflow) AddContext(context *Context) {
	if w.DefaultContext == "" {
		w.DefaultContext = context.ID
	}
	w.Contexts = append(w.Contexts, context)
}

// Context is a sub-phase or mode within a workflow
type Context struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Icon          string         `json:"icon,omitempty"`
	Presets       []*Preset      `json:"presets,omitempty"`
	DefaultPreset string         `json:"defaultPreset,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// NewContext creates a context with a generated ID
func NewContext(name string) *Context {
	return &Context{ID: uuid.New().String(), Name: name}
}

// WithID overrides the generated ID
func (c *Context) WithID(id string) *Context {
	c.ID = id
	return c
}

// AddPreset appends a preset. The first preset added becomes the default.
func (c *Context) AddPreset(preset *Preset) {
	if c.DefaultPreset == "" {
		c.DefaultPreset = preset.ID
	}
	c.Presets = append(c.Presets, preset)
}

// Preset is a concrete UI configuration within a context
type Preset struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Extends     string         `json:"extends,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// NewPreset creates a preset with a generated ID
func NewPreset(name string) *Preset {
	return &Preset{ID: uuid.New().String(), Name: name}
}

// WithID overrides the generated ID
func (p *Preset) WithID(id string) *Preset {
	p.ID = id
	return p
}
