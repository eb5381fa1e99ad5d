package params

import "github.com/canvasflow/canvasflow/pkg/models"

// FieldKind is the editing affordance of one config field.
type FieldKind int

const (
	KindScalar FieldKind = iota
	KindNumber
	KindEnum
	KindList
	KindNested
	KindByteSize
	KindCommaList
	KindHidden
)

// fieldKinds is the (nodeType, fieldName) dispatch table. Fields not listed
// here are plain scalars.
var fieldKinds = map[models.NodeType]map[string]FieldKind{
	models.NodeTypeSchedule: {
		"mode":     KindNested,
		"timezone": KindEnum,
	},
	models.NodeTypeWebhook: {
		"method": KindEnum,
	},
	models.NodeTypeForm: {
		"formFields": KindList,
	},
	models.NodeTypeFileUpload: {
		"maxSize":      KindByteSize,
		"allowedTypes": KindCommaList,
	},
	models.NodeTypeHyperclova: {
		"temperature": KindNumber,
		"maxTokens":   KindNumber,
	},
	models.NodeTypeClassifier: {
		"language": KindEnum,
	},
	models.NodeTypeCode: {
		"language": KindEnum,
	},
	models.NodeTypeFilter: {
		"operator": KindEnum,
	},
	models.NodeTypeIfElse: {
		"operator": KindEnum,
	},
	models.NodeTypeDatabase: {
		"fields": KindList,
	},
	models.NodeTypeHTTPResponse: {
		"statusCode": KindEnum,
		"format":     KindEnum,
	},
}

// KindFor resolves the editing affordance for a node-type/field pair.
func KindFor(nodeType models.NodeType, field string) FieldKind {
	if kinds, ok := fieldKinds[nodeType]; ok {
		if kind, ok := kinds[field]; ok {
			return kind
		}
	}

	return KindScalar
}

// Injected-data globals are not user-editable: teams_data nested under an
// injected-data object is suppressed from rendering entirely.
const (
	injectedDataField = "injected-data"
	teamsDataField    = "teams_data"
)

// FieldVisible reports whether a field should be rendered at all. parent is
// the enclosing object field name, "" at the top level.
func FieldVisible(parent, field string) bool {
	return !(parent == injectedDataField && field == teamsDataField)
}

// ObjectVisible reports whether a nested object field should be rendered: an
// injected-data object whose every field is suppressed is itself hidden.
func ObjectVisible(field string, value map[string]any) bool {
	if field != injectedDataField {
		return true
	}

	for name := range value {
		if FieldVisible(field, name) {
			return true
		}
	}

	return false
}

// ReadField resolves a field's current display value, applying the kind's
// read-side coercion. List and nested fields are returned normalized.
func ReadField(node *models.WorkflowNode, field string) any {
	parameters := nodeParameters(node)
	value := parameters[field]

	switch KindFor(node.Type, field) {
	case KindNumber:
		return CoerceNumber(value)
	case KindEnum:
		return ResolveOption(field, value)
	case KindByteSize:
		return MBFromBytes(CoerceNumber(value))
	case KindCommaList:
		return JoinCommaList(stringSlice(value))
	case KindList:
		return NormalizeList(field, value)
	case KindNested:
		if m, ok := value.(map[string]any); ok {
			return m
		}

		return map[string]any{}
	case KindHidden:
		return nil
	case KindScalar:
		return value
	default:
		return value
	}
}

// WriteField applies a field edit with the kind's write-side coercion. All
// writes are total; malformed input lands as the documented default.
func WriteField(node *models.WorkflowNode, field string, value any) {
	parameters := nodeParameters(node)

	switch KindFor(node.Type, field) {
	case KindNumber:
		parameters[field] = CoerceNumber(value)
	case KindEnum:
		parameters[field] = ResolveOption(field, value)
	case KindByteSize:
		parameters[field] = BytesFromMB(CoerceNumber(value))
	case KindCommaList:
		parameters[field] = SplitCommaList(CoerceString(value))
	case KindList:
		parameters[field] = NormalizeList(field, value)
	case KindNested, KindScalar:
		parameters[field] = value
	case KindHidden:
		// not user-editable
	}
}

func nodeParameters(node *models.WorkflowNode) map[string]any {
	if node.Config == nil {
		node.Config = map[string]any{}
	}

	return EnsureParameters(node.Config)
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))

		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return nil
	}
}
