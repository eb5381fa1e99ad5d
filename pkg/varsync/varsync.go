// Package varsync keeps a node's output schema and the workflow's custom
// variable list consistent: every output schema property p is mirrored by
// exactly one variable named "json.p", with no duplicates and no orphans.
//
// All functions take the current variable slice and return a replacement;
// the caller swaps the workflow's list for the returned one. Variable
// structs are copied before modification, never mutated in place.
package varsync

import (
	"fmt"
	"slices"
	"time"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/google/uuid"
)

// VariableName is the template-token name mirroring a schema property.
func VariableName(property string) string {
	return "json." + property
}

func findVariable(vars []*models.CustomVariable, name string) *models.CustomVariable {
	for _, v := range vars {
		if v.Name == name {
			return v
		}
	}

	return nil
}

func newVariable(property, nodeName string) *models.CustomVariable {
	return &models.CustomVariable{
		ID:          uuid.New().String(),
		Name:        VariableName(property),
		Value:       "",
		Description: fmt.Sprintf("Generated from the output schema of %s", nodeName),
	}
}

// SyncOnMount creates missing "json.<p>" variables for every property of the
// node's existing output schema. It never deletes variables; deletion only
// happens through explicit property edits. Safe to run on every mount.
func SyncOnMount(node *models.WorkflowNode, vars []*models.CustomVariable) []*models.CustomVariable {
	schema := node.OutputSchema()
	if schema == nil {
		return vars
	}

	out := slices.Clone(vars)

	for property := range schema.PropertyMap() {
		if findVariable(out, VariableName(property)) == nil {
			out = append(out, newVariable(property, node.Name))
		}
	}

	return out
}

// AddProperty inserts a new string-typed property with a name made unique by
// a time-based suffix. For output schemas the matching variable is created
// when no variable of that name exists yet. Returns the generated property
// name and the replacement variable list.
func AddProperty(schema *models.Schema, vars []*models.CustomVariable, nodeName string, output bool) (string, []*models.CustomVariable) {
	properties := schema.EnsurePropertyMap()

	suffix := time.Now().UnixMilli()
	name := fmt.Sprintf("field_%d", suffix)

	for _, taken := properties[name]; taken; _, taken = properties[name] {
		suffix++
		name = fmt.Sprintf("field_%d", suffix)
	}

	properties[name] = &models.SchemaProperty{Type: "string"}

	if !output {
		return name, vars
	}

	out := slices.Clone(vars)
	if findVariable(out, VariableName(name)) == nil {
		out = append(out, newVariable(name, nodeName))
	}

	return name, out
}

// RemoveProperty deletes a property from the schema; for output schemas the
// matching variable is removed as well, when present.
func RemoveProperty(schema *models.Schema, vars []*models.CustomVariable, property string, output bool) []*models.CustomVariable {
	delete(schema.PropertyMap(), property)

	if !output {
		return vars
	}

	name := VariableName(property)

	return slices.DeleteFunc(slices.Clone(vars), func(v *models.CustomVariable) bool {
		return v.Name == name
	})
}

// RenameProperty replaces oldName with newName in the schema, carrying the
// given property type. For output schemas the matching variable is renamed,
// unless a variable with the new name already exists under a different id,
// in which case the old variable is dropped instead of creating a duplicate
// "json.x" token that would make template substitution ambiguous.
func RenameProperty(schema *models.Schema, vars []*models.CustomVariable, oldName, newName, propType string, output bool) []*models.CustomVariable {
	properties := schema.EnsurePropertyMap()

	prop := properties[oldName]
	if prop == nil {
		prop = &models.SchemaProperty{}
	}

	if propType != "" {
		prop.Type = propType
	}

	delete(properties, oldName)
	properties[newName] = prop

	if !output {
		return vars
	}

	out := slices.Clone(vars)
	oldVar := findVariable(out, VariableName(oldName))
	existing := findVariable(out, VariableName(newName))

	switch {
	case oldVar == nil:
		// Nothing to rename; make sure the new property is represented.
		if existing == nil {
			out = append(out, &models.CustomVariable{
				ID:    uuid.New().String(),
				Name:  VariableName(newName),
				Value: "",
			})
		}
	case existing != nil && existing.ID != oldVar.ID:
		// Collision: keep the pre-existing variable of the new name.
		out = slices.DeleteFunc(out, func(v *models.CustomVariable) bool {
			return v.ID == oldVar.ID
		})
	default:
		renamed := *oldVar
		renamed.Name = VariableName(newName)

		for i, v := range out {
			if v.ID == oldVar.ID {
				out[i] = &renamed

				break
			}
		}
	}

	return out
}
