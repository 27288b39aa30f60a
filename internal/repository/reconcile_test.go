package repository

import (
	"reflect"
	"testing"

	"giftly-be/internal/entities"
)

func TestStaleGiftIDs(t *testing.T) {
	gift := func(id int64) entities.Gift { return entities.Gift{ID: id, Name: "g"} }

	tests := []struct {
		name      string
		existing  []int64
		submitted []entities.Gift
		want      []int64
	}{
		{
			name:      "all kept",
			existing:  []int64{1, 2},
			submitted: []entities.Gift{gift(1), gift(2)},
			want:      nil,
		},
		{
			name:      "one omitted",
			existing:  []int64{1, 2, 3},
			submitted: []entities.Gift{gift(1), gift(3)},
			want:      []int64{2},
		},
		{
			name:      "only new gifts marks everything stale",
			existing:  []int64{1, 2},
			submitted: []entities.Gift{gift(0), gift(0)},
			want:      []int64{1, 2},
		},
		{
			name:      "empty submission",
			existing:  []int64{5},
			submitted: nil,
			want:      []int64{5},
		},
		{
			name:      "no existing gifts",
			existing:  nil,
			submitted: []entities.Gift{gift(0)},
			want:      nil,
		},
		{
			name:      "submitted id never persisted is not stale",
			existing:  []int64{1},
			submitted: []entities.Gift{gift(1), gift(99)},
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := staleGiftIDs(tt.existing, tt.submitted)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("staleGiftIDs(%v, ...) = %v, want %v", tt.existing, got, tt.want)
			}
		})
	}
}
