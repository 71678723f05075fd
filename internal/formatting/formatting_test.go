package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/aonescu/kubewatch/internal/types"
)

func TestFormatRecord(t *testing.T) {
	rec := types.WatchRecord{
		Resource:   "api/v1/pods",
		EventType:  "ADDED",
		UID:        "uid-1",
		Kind:       "Pod",
		Namespace:  "default",
		Name:       "web-0",
		Version:    "4721",
		ReceivedAt: time.Now(),
	}

	line := FormatRecord(rec)
	for _, want := range []string{"ADDED", "Pod", "default/web-0", "version 4721"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected %q in %q", want, line)
		}
	}
}

func TestFormatRecord_BareObject(t *testing.T) {
	rec := types.WatchRecord{
		Resource:  "api/v1/pods",
		EventType: "DELETED",
	}

	line := FormatRecord(rec)
	if !strings.Contains(line, "DELETED") {
		t.Errorf("Expected event type in %q", line)
	}
	if !strings.Contains(line, "api/v1/pods") {
		t.Errorf("Expected resource fallback in %q", line)
	}
	if !strings.Contains(line, "<unknown>") {
		t.Errorf("Expected name placeholder in %q", line)
	}
}

func TestGenerateSummary(t *testing.T) {
	records := []types.WatchRecord{
		{EventType: "ADDED", Kind: "Pod"},
		{EventType: "MODIFIED", Kind: "Pod"},
		{EventType: "ADDED", Kind: "Node"},
	}

	summary := GenerateSummary(records)

	if summary["total"].(int) != 3 {
		t.Errorf("Expected total 3, got %v", summary["total"])
	}

	byType := summary["by_type"].(map[string]int)
	if byType["ADDED"] != 2 || byType["MODIFIED"] != 1 {
		t.Errorf("Unexpected by_type counts: %v", byType)
	}

	byKind := summary["by_kind"].(map[string]int)
	if byKind["Pod"] != 2 || byKind["Node"] != 1 {
		t.Errorf("Unexpected by_kind counts: %v", byKind)
	}
}
