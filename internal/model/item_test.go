package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestItemValidateSuccess(t *testing.T) {
	item := Item{ID: "item-1", Task: "Buy milk", Status: StatusTodo}
	if err := item.Validate(); err != nil {
		t.Fatalf("expected valid item, got error: %v", err)
	}
}

func TestItemValidateRejectsBlankFields(t *testing.T) {
	item := Item{ID: "item-1", Task: "   ", Status: StatusTodo}
	if err := item.Validate(); !errors.Is(err, ErrEmptyTask) {
		t.Fatalf("expected ErrEmptyTask, got: %v", err)
	}

	item = Item{ID: " ", Task: "Buy milk", Status: StatusTodo}
	if err := item.Validate(); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got: %v", err)
	}

	item = Item{ID: "item-1", Task: "Buy milk", Status: Status("later")}
	if err := item.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestStatusToggled(t *testing.T) {
	cases := []struct {
		in   Status
		want Status
	}{
		{StatusTodo, StatusDone},
		{StatusDone, StatusTodo},
		{StatusInProgress, StatusDone},
	}
	for _, tc := range cases {
		if got := tc.in.Toggled(); got != tc.want {
			t.Fatalf("%s.Toggled() = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestItemUnmarshalAcceptsNumericIDs(t *testing.T) {
	raw := []byte(`[{"id":482913,"task":"Water plants","status":"done"},{"id":"abc","task":"Call mom","status":"todo"}]`)
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "482913" || items[0].Status != StatusDone {
		t.Fatalf("unexpected first item: %#v", items[0])
	}
	if items[1].ID != "abc" || items[1].Task != "Call mom" {
		t.Fatalf("unexpected second item: %#v", items[1])
	}
}

func TestItemMarshalFlatRecord(t *testing.T) {
	out, err := json.Marshal(Item{ID: "7", Task: "Read", Status: StatusTodo})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"id":"7","task":"Read","status":"todo"}` {
		t.Fatalf("unexpected encoding: %s", out)
	}
}
