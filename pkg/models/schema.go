package models

// Schema is the JSON-Schema-like structure carried in a node's config under
// "inputSchema"/"outputSchema". Object schemas hold Properties directly;
// array schemas hold them under Items.
type Schema struct {
	Type       string                     `json:"type"`
	Properties map[string]*SchemaProperty `json:"properties,omitempty"`
	Items      *SchemaItems               `json:"items,omitempty"`
}

// SchemaProperty is one property of an object schema.
type SchemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// SchemaItems describes the element shape of an array schema.
type SchemaItems struct {
	Type       string                     `json:"type,omitempty"`
	Properties map[string]*SchemaProperty `json:"properties,omitempty"`
}

// PropertyMap returns the live property map regardless of whether the schema
// is an object schema or an array schema. Mutations through the returned map
// are visible on the schema. Returns nil when the schema has no property map.
func (s *Schema) PropertyMap() map[string]*SchemaProperty {
	if s == nil {
		return nil
	}

	if s.Type == "array" && s.Items != nil {
		return s.Items.Properties
	}

	return s.Properties
}

// EnsurePropertyMap returns the live property map, allocating it first when
// absent.
func (s *Schema) EnsurePropertyMap() map[string]*SchemaProperty {
	if s.Type == "array" {
		if s.Items == nil {
			s.Items = &SchemaItems{Type: "object"}
		}

		if s.Items.Properties == nil {
			s.Items.Properties = make(map[string]*SchemaProperty)
		}

		return s.Items.Properties
	}

	if s.Properties == nil {
		s.Properties = make(map[string]*SchemaProperty)
	}

	return s.Properties
}

// SchemaFromValue coerces a config entry into a *Schema. Configs loaded from
// JSON carry schemas as generic maps; configs built in memory carry *Schema
// values directly. Returns nil for anything else.
func SchemaFromValue(v any) *Schema {
	switch s := v.(type) {
	case *Schema:
		return s
	case map[string]any:
		schema := &Schema{}
		if t, ok := s["type"].(string); ok {
			schema.Type = t
		}

		if props, ok := s["properties"].(map[string]any); ok {
			schema.Properties = propertiesFromMap(props)
		}

		if items, ok := s["items"].(map[string]any); ok {
			schema.Items = &SchemaItems{}
			if t, ok := items["type"].(string); ok {
				schema.Items.Type = t
			}

			if props, ok := items["properties"].(map[string]any); ok {
				schema.Items.Properties = propertiesFromMap(props)
			}
		}

		return schema
	default:
		return nil
	}
}

func propertiesFromMap(raw map[string]any) map[string]*SchemaProperty {
	props := make(map[string]*SchemaProperty, len(raw))

	for name, v := range raw {
		prop := &SchemaProperty{Type: "string"}

		if m, ok := v.(map[string]any); ok {
			if t, ok := m["type"].(string); ok {
				prop.Type = t
			}

			if d, ok := m["description"].(string); ok {
				prop.Description = d
			}
		}

		props[name] = prop
	}

	return props
}

// OutputSchema returns the node's output schema, normalized to *Schema, or
// nil when the node has none.
func (n *WorkflowNode) OutputSchema() *Schema {
	if n.Config == nil {
		return nil
	}

	return SchemaFromValue(n.Config["outputSchema"])
}

// InputSchema returns the node's input schema, normalized to *Schema, or nil.
func (n *WorkflowNode) InputSchema() *Schema {
	if n.Config == nil {
		return nil
	}

	return SchemaFromValue(n.Config["inputSchema"])
}

// SetOutputSchema stores the schema back on the node config.
func (n *WorkflowNode) SetOutputSchema(s *Schema) {
	if n.Config == nil {
		n.Config = make(map[string]any)
	}

	n.Config["outputSchema"] = s
}

// SetInputSchema stores the schema back on the node config.
func (n *WorkflowNode) SetInputSchema(s *Schema) {
	if n.Config == nil {
		n.Config = make(map[string]any)
	}

	n.Config["inputSchema"] = s
}
