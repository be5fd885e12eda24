package module

import (
	"strings"

	"paydash/internal/modkit/swaggerkit"
)

var (
	filterParams = []swaggerkit.Param{
		{Name: "search", Description: "substring over name and identifiers"},
		{Name: "branch", Array: true},
		{Name: "jobTitle", Array: true},
		{Name: "status", Array: true, Description: "Activo, Baja or Finiquito"},
		{Name: "period", Description: "YYYY-MM or an exact date"},
		{Name: "category", Array: true},
	}
	pageParams = []swaggerkit.Param{
		{Name: "page", Type: "integer"},
		{Name: "pageSize", Type: "integer"},
	}
	optionList = map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"value": map[string]any{"type": "string"},
				"label": map[string]any{"type": "string"},
				"count": map[string]any{"type": "integer", "format": "int64"},
			},
		},
	}
	recordList = map[string]any{"type": "array", "items": map[string]any{"type": "object"}}
)

// operations documents the dataset routes under prefix
func operations(prefix string) []swaggerkit.Operation {
	ds := strings.TrimPrefix(prefix, "/")
	tag := "Reports"
	if ds != "" {
		tag = strings.ToUpper(ds[:1]) + ds[1:]
	}
	options := map[string]any{}
	for _, d := range []string{"branch", "jobTitle", "status", "period", "category"} {
		options[d] = optionList
	}
	return []swaggerkit.Operation{
		{
			Path:    prefix + "/filters",
			Tag:     tag,
			Summary: "Filter options with counts under the other active filters",
			ID:      ds + "Filters",
			Params:  filterParams,
			Data: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"options":  map[string]any{"type": "object", "properties": options},
					"warnings": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Warning"}},
				},
			},
		},
		{
			Path:    prefix + "/records",
			Tag:     tag,
			Summary: "Filtered, sorted page of records with category",
			ID:      ds + "Records",
			Params: append(append(append([]swaggerkit.Param{}, filterParams...), pageParams...),
				swaggerkit.Param{Name: "sortBy"}, swaggerkit.Param{Name: "sortOrder", Description: "asc or desc"}),
			Data:  recordList,
			Paged: true,
		},
		{
			Path:    prefix + "/raw",
			Tag:     tag,
			Summary: "Unfiltered table by id, pageSize at most 1000",
			ID:      ds + "Raw",
			Params:  pageParams,
			Data:    recordList,
			Paged:   true,
		},
	}
}
