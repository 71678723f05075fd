package formatting

import (
	"fmt"
	"strings"

	"github.com/aonescu/kubewatch/internal/types"
)

// FormatRecord renders a single watch event as one log line, e.g.
//
//	ADDED     Pod default/web-0 (version 4721)
func FormatRecord(rec types.WatchRecord) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%-9s", rec.EventType))

	name := rec.Name
	if name == "" {
		name = "<unknown>"
	}
	if rec.Namespace != "" {
		name = rec.Namespace + "/" + name
	}

	kind := rec.Kind
	if kind == "" {
		kind = rec.Resource
	}
	output.WriteString(fmt.Sprintf(" %s %s", kind, name))

	if rec.Version != "" {
		output.WriteString(fmt.Sprintf(" (version %s)", rec.Version))
	}

	return output.String()
}

// GenerateSummary aggregates a batch of records into counts by event type
// and by kind, the shape the stats endpoint serves.
func GenerateSummary(records []types.WatchRecord) map[string]interface{} {
	summary := map[string]interface{}{
		"total":   len(records),
		"by_type": make(map[string]int),
		"by_kind": make(map[string]int),
	}

	for _, rec := range records {
		summary["by_type"].(map[string]int)[rec.EventType]++
		kind := rec.Kind
		if kind == "" {
			kind = rec.Resource
		}
		summary["by_kind"].(map[string]int)[kind]++
	}

	return summary
}
