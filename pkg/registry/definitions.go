package registry

import "github.com/canvasflow/canvasflow/pkg/models"

// RegisterDefaultDefinitions loads the built-in node catalog. Categories are
// fixed: trigger, ai, transform, control, output. Every type has exactly one
// category and one icon class.
func (r *Registry) RegisterDefaultDefinitions() {
	// Triggers
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeSchedule,
		Label:    "Schedule",
		Category: models.CategoryTrigger,
		Icon:     "ri-time-line",
		DefaultConfig: map[string]any{
			"type":    "trigger",
			"subtype": "schedule",
			"parameters": map[string]any{
				"mode": map[string]any{
					"mode":      "daily",
					"dailyTime": "09:00:00",
				},
				"timezone": "Asia/Seoul",
			},
		},
	})
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeWebhook,
		Label:    "Webhook",
		Category: models.CategoryTrigger,
		Icon:     "ri-webhook-line",
		DefaultConfig: map[string]any{
			"type":    "trigger",
			"subtype": "webhook",
			"parameters": map[string]any{
				"method": "POST",
				"path":   "",
			},
		},
	})
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeForm,
		Label:    "Form Submit",
		Category: models.CategoryTrigger,
		Icon:     "ri-survey-line",
		DefaultConfig: map[string]any{
			"type":    "trigger",
			"subtype": "form-submit",
			"parameters": map[string]any{
				"formTitle":  "",
				"formFields": []any{},
			},
		},
	})
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeFileUpload,
		Label:    "File Upload",
		Category: models.CategoryTrigger,
		Icon:     "ri-upload-cloud-line",
		DefaultConfig: map[string]any{
			"type":    "trigger",
			"subtype": "file-upload",
			"parameters": map[string]any{
				"maxSize":      float64(10 * 1048576),
				"allowedTypes": []any{},
			},
		},
	})

	// AI processing
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeHyperclova,
		Label:    "HyperCLOVA",
		Category: models.CategoryAI,
		Icon:     "ri-robot-2-line",
		DefaultConfig: map[string]any{
			"type":    "ai-processing",
			"subtype": "hyperclova",
			"parameters": map[string]any{
				"prompt":      "",
				"temperature": float64(0.5),
				"maxTokens":   float64(256),
			},
		},
	})
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeClassifier,
		Label:    "Text Classifier",
		Category: models.CategoryAI,
		Icon:     "ri-node-tree",
		DefaultConfig: map[string]any{
			"type":    "ai-processing",
			"subtype": "classifier",
			"parameters": map[string]any{
				"language": "ko",
				"labels":   []any{},
			},
		},
	})

	// Transforms
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeExcel,
		Label:    "Excel Reader",
		Category: models.CategoryTransform,
		Icon:     "ri-file-excel-2-line",
		DefaultConfig: map[string]any{
			"type":    "transform",
			"subtype": "excel-reader",
			"parameters": map[string]any{
				"sheet": "",
			},
		},
	})
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeCode,
		Label:    "Code",
		Category: models.CategoryTransform,
		Icon:     "ri-code-s-slash-line",
		DefaultConfig: map[string]any{
			"type":    "transform",
			"subtype": "code",
			"parameters": map[string]any{
				"language": "javascript",
				"source":   "",
			},
		},
	})
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeFilter,
		Label:    "Filter",
		Category: models.CategoryTransform,
		Icon:     "ri-filter-3-line",
		DefaultConfig: map[string]any{
			"type":    "transform",
			"subtype": "filter",
			"parameters": map[string]any{
				"field":    "",
				"operator": "==",
				"value":    "",
			},
		},
	})

	// Control flow
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeIfElse,
		Label:    "If / Else",
		Category: models.CategoryControl,
		Icon:     "ri-git-branch-line",
		DefaultConfig: map[string]any{
			"type":    "control",
			"subtype": "if",
			"parameters": map[string]any{
				"field":    "",
				"operator": "==",
				"value":    "",
			},
		},
	})
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeSwitch,
		Label:    "Switch",
		Category: models.CategoryControl,
		Icon:     "ri-shuffle-line",
		DefaultConfig: map[string]any{
			"type":    "control",
			"subtype": "switch",
			"parameters": map[string]any{
				"field": "",
				"cases": []any{},
			},
		},
	})

	// Outputs
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeDatabase,
		Label:    "Database Writer",
		Category: models.CategoryOutput,
		Icon:     "ri-database-2-line",
		DefaultConfig: map[string]any{
			"type":    "output",
			"subtype": "database-writer",
			"parameters": map[string]any{
				"table":  "",
				"fields": []any{},
			},
		},
	})
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeHTTPResponse,
		Label:    "HTTP Response",
		Category: models.CategoryOutput,
		Icon:     "ri-arrow-go-back-line",
		DefaultConfig: map[string]any{
			"type":    "output",
			"subtype": "http-response",
			"parameters": map[string]any{
				"statusCode": "200",
				"format":     "json",
			},
		},
	})
	r.Register(models.NodeDefinition{
		Type:     models.NodeTypeNotification,
		Label:    "Notification",
		Category: models.CategoryOutput,
		Icon:     "ri-notification-3-line",
		DefaultConfig: map[string]any{
			"type":    "output",
			"subtype": "notification",
			"parameters": map[string]any{
				"channel": "",
				"message": "",
			},
		},
	})
}

// wireTypes maps node types to the type/subtype pair expected by the
// execution backend when a node's config does not carry them explicitly.
var wireTypes = map[models.NodeType][2]string{
	models.NodeTypeSchedule:     {"trigger", "schedule"},
	models.NodeTypeWebhook:      {"trigger", "webhook"},
	models.NodeTypeForm:         {"trigger", "form-submit"},
	models.NodeTypeFileUpload:   {"trigger", "file-upload"},
	models.NodeTypeHyperclova:   {"ai-processing", "hyperclova"},
	models.NodeTypeClassifier:   {"ai-processing", "classifier"},
	models.NodeTypeExcel:        {"transform", "excel-reader"},
	models.NodeTypeCode:         {"transform", "code"},
	models.NodeTypeFilter:       {"transform", "filter"},
	models.NodeTypeIfElse:       {"control", "if"},
	models.NodeTypeSwitch:       {"control", "switch"},
	models.NodeTypeDatabase:     {"output", "database-writer"},
	models.NodeTypeHTTPResponse: {"output", "http-response"},
	models.NodeTypeNotification: {"output", "notification"},
}

// WireType resolves the execution-backend type/subtype pair for a node type.
// Unmapped types fall back to the node type itself for both halves.
func WireType(nodeType models.NodeType) (string, string) {
	if pair, ok := wireTypes[nodeType]; ok {
		return pair[0], pair[1]
	}

	return string(nodeType), string(nodeType)
}
