package models

// CustomVariable is a named template token ({{name}}) resolvable at execution
// time. Names must be unique within a workflow; schema-derived variables use
// the "json.<property>" naming convention.
type CustomVariable struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required,min=1"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}
