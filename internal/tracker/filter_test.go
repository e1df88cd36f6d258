// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracker

import (
	"testing"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

func filterTestSession() *Session {
	tbl := &types.Table{Entries: []types.Entry{
		{Key: "Jackson2023", Title: "Computer Vision Methods"},
		{Key: "White2023", Title: "Natural Language Processing"},
		{Key: "Vision2024", Title: "Edge Computing"},
		{Key: "Garcia2023", Title: "A Survey of Vision Transformers"},
	}}
	s := NewSession(tbl)
	s.MarkDone("Jackson2023")
	s.MarkFailed("White2023")
	return s
}

func TestFilter(t *testing.T) {
	s := filterTestSession()

	tests := []struct {
		name     string
		term     string
		filter   StatusFilter
		wantKeys []string
	}{
		{"empty term matches all", "", FilterAll,
			[]string{"Jackson2023", "White2023", "Vision2024", "Garcia2023"}},
		{"term matches title case-insensitively", "vision", FilterAll,
			[]string{"Jackson2023", "Vision2024", "Garcia2023"}},
		{"term matches key", "white", FilterAll, []string{"White2023"}},
		{"status only", "", FilterPending, []string{"Vision2024", "Garcia2023"}},
		{"term and status compose", "vision", FilterPending,
			[]string{"Vision2024", "Garcia2023"}},
		{"completed filter", "", FilterCompleted, []string{"Jackson2023"}},
		{"failed filter", "", FilterFailed, []string{"White2023"}},
		{"no matches", "quantum", FilterFailed, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Filter(tt.term, tt.filter)
			var gotKeys []string
			for _, e := range got {
				gotKeys = append(gotKeys, e.Key)
			}
			if len(gotKeys) != len(tt.wantKeys) {
				t.Fatalf("Filter(%q, %s) keys = %v, want %v", tt.term, tt.filter, gotKeys, tt.wantKeys)
			}
			for i := range gotKeys {
				if gotKeys[i] != tt.wantKeys[i] {
					t.Errorf("Filter(%q, %s) keys = %v, want %v", tt.term, tt.filter, gotKeys, tt.wantKeys)
					break
				}
			}
		})
	}
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		in     string
		want   StatusFilter
		wantOK bool
	}{
		{"", FilterAll, true},
		{"all", FilterAll, true},
		{"Pending", FilterPending, true},
		{"COMPLETED", FilterCompleted, true},
		{" failed ", FilterFailed, true},
		{"bogus", FilterAll, false},
	}
	for _, tt := range tests {
		got, ok := ParseStatusFilter(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseStatusFilter(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
