package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	answer := ActionAnswer

	tests := []struct {
		name     string
		old      *DialogState
		new      *DialogState
		wantDiff *StateDiff // nil means we expect no diff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &DialogState{
				SessionID:      "sess-1",
				AvailableNodes: []string{"buy-node1"},
				Slots:          map[string]string{},
			},
			wantDiff: &StateDiff{
				SessionID:      "sess-1",
				AvailableNodes: &[]string{"buy-node1"},
			},
		},
		{
			name: "No Changes",
			old: &DialogState{
				SessionID:      "sess-1",
				AvailableNodes: []string{"buy-node1"},
				HitIntent:      "buy-node1",
				Slots:          map[string]string{"size": "中"},
				History:        []string{"buy-node1"},
			},
			new: &DialogState{
				SessionID:      "sess-1",
				AvailableNodes: []string{"buy-node1"},
				HitIntent:      "buy-node1",
				Slots:          map[string]string{"size": "中"},
				History:        []string{"buy-node1"},
			},
			wantDiff: nil,
		},
		{
			name: "Slot Filled and Answered",
			old: &DialogState{
				SessionID:      "sess-1",
				AvailableNodes: []string{"buy-node1"},
				HitIntent:      "buy-node1",
				NeedSlot:       "size",
				Action:         ActionAsk,
				History:        []string{"buy-node1"},
			},
			new: &DialogState{
				SessionID:      "sess-1",
				AvailableNodes: []string{},
				HitIntent:      "buy-node1",
				Action:         ActionAnswer,
				Slots:          map[string]string{"size": "中"},
				History:        []string{"buy-node1", "buy-node1"},
			},
			wantDiff: &StateDiff{
				SessionID:      "sess-1",
				AvailableNodes: &[]string{},
				NeedSlot:       &[]string{""}[0],
				Action:         &answer,
				Slots:          map[string]string{"size": "中"},
				HistoryParams:  &HistoryDelta{Appended: []string{"buy-node1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Errorf("Diff() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Diff() = nil, want %+v", tt.wantDiff)
			}
			if !reflect.DeepEqual(got, tt.wantDiff) {
				t.Errorf("Diff() = %+v, want %+v", got, tt.wantDiff)
			}
		})
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	t.Run("Emptied Available Nodes Are Kept", func(t *testing.T) {
		s1 := &DialogState{AvailableNodes: []string{"a"}}
		s2 := &DialogState{AvailableNodes: []string{}}

		diff := Diff(s1, s2)
		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}
		bytes, _ := json.Marshal(diff)
		if !strings.Contains(string(bytes), `"available_nodes":[]`) {
			t.Errorf("JSON should contain an empty available_nodes list, got: %s", string(bytes))
		}
	})

	t.Run("Unchanged Slots Omitted", func(t *testing.T) {
		s1 := &DialogState{Slots: map[string]string{"a": "1"}, HitIntent: "x"}
		s2 := &DialogState{Slots: map[string]string{"a": "1"}, HitIntent: "y"}

		diff := Diff(s1, s2)
		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}
		bytes, _ := json.Marshal(diff)
		if strings.Contains(string(bytes), `"slots"`) {
			t.Errorf("JSON should not contain 'slots' when unchanged, got: %s", string(bytes))
		}
	})
}
