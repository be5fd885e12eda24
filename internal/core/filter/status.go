package filter

import "strings"

// Persisted status codes
const (
	StatusActive     = "A"
	StatusTerminated = "B"
	StatusSettled    = "F"
)

var statusCodes = map[string]string{
	"active":     StatusActive,
	"activo":     StatusActive,
	"terminated": StatusTerminated,
	"baja":       StatusTerminated,
	"settled":    StatusSettled,
	"finiquito":  StatusSettled,
}

var statusLabels = map[string]string{
	StatusActive:     "Activo",
	StatusTerminated: "Baja",
	StatusSettled:    "Finiquito",
}

// StatusCode translates a domain label into its persisted code
// unknown labels pass through so raw codes stay usable
func StatusCode(label string) string {
	if code, ok := statusCodes[strings.ToLower(strings.TrimSpace(label))]; ok {
		return code
	}
	return label
}

// StatusCodes translates every label of a selection
func StatusCodes(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = StatusCode(l)
	}
	return out
}

// StatusLabel returns the display label for a persisted code, or the code itself
func StatusLabel(code string) string {
	if l, ok := statusLabels[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return l
	}
	return code
}
