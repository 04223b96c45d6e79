package events_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jonesrussell/gotools/internal/events"
	"github.com/jonesrussell/gotools/internal/models"
)

func TestNewPublisher_RequiresClient(t *testing.T) {
	pub := events.NewPublisher(nil, nil)
	if pub != nil {
		t.Error("expected nil publisher when client is nil")
	}
}

func TestPublishImportCompleted_NilReceiverIsNoOp(t *testing.T) {
	var pub *events.Publisher

	err := pub.PublishImportCompleted(context.Background(), &models.ImportSummary{
		Source:      "hexofy",
		TotalParsed: 3,
	})
	if err != nil {
		t.Errorf("expected nil error for nil receiver, got: %v", err)
	}
}

func TestImportEvent_JSONShape(t *testing.T) {
	event := events.ImportEvent{
		EventType: events.EventImportCompleted,
		Summary: &models.ImportSummary{
			Source:      "producthunt.com",
			TotalParsed: 10,
			Imported:    8,
			Skipped:     2,
		},
	}

	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}

	if decoded["event_type"] != events.EventImportCompleted {
		t.Errorf("event_type = %v", decoded["event_type"])
	}
	summary, ok := decoded["summary"].(map[string]any)
	if !ok {
		t.Fatal("summary missing from event payload")
	}
	if summary["source"] != "producthunt.com" {
		t.Errorf("summary.source = %v", summary["source"])
	}
}
