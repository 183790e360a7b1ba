package mealdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollapseSlots(t *testing.T) {
	tests := []struct {
		name  string
		slots []slot
		want  []Ingredient
	}{
		{"all empty", make([]slot, slotCount), []Ingredient{}},
		{
			"keeps slot order not name order",
			[]slot{{"Zest", "1"}, {"Apple", "2"}, {"Milk", "3"}},
			[]Ingredient{{"Zest", "1"}, {"Apple", "2"}, {"Milk", "3"}},
		},
		{
			"drops blank names even with measures",
			[]slot{{"", "1 cup"}, {"\t", "2"}, {"Egg", ""}},
			[]Ingredient{{"Egg", ""}},
		},
		{
			"keeps duplicates",
			[]slot{{"Sugar", "1 tbsp"}, {"Sugar", "2 tbsp"}},
			[]Ingredient{{"Sugar", "1 tbsp"}, {"Sugar", "2 tbsp"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collapseSlots(tt.slots)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("collapseSlots mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollapseSlots_CountMatchesNonEmptySlots(t *testing.T) {
	slots := make([]slot, slotCount)
	want := 0
	for i := range slots {
		if i%3 == 0 {
			slots[i] = slot{Ingredient: fmt.Sprintf("item-%02d", i+1), Measure: "1"}
			want++
		}
	}
	got := collapseSlots(slots)
	if len(got) != want {
		t.Fatalf("len = %d, want %d", len(got), want)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Name >= got[i].Name {
			t.Fatalf("ingredients out of slot order: %v", got)
		}
	}
}

func TestSplitTags(t *testing.T) {
	if got := splitTags("   "); got != nil {
		t.Fatalf("splitTags blank = %#v, want nil", got)
	}
	if got := splitTags(" , ,"); got != nil {
		t.Fatalf("splitTags commas = %#v, want nil", got)
	}
	if diff := cmp.Diff([]string{"Sweet", "Baking"}, splitTags("Sweet, Baking,")); diff != "" {
		t.Fatalf("splitTags mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorHelpers(t *testing.T) {
	nerr := &NetworkError{Op: opList, URL: "http://x/filter.php", StatusCode: 500}
	wrapped := fmt.Errorf("load: %w", nerr)
	if !IsNetwork(wrapped) || IsDecode(wrapped) {
		t.Fatalf("classification wrong for %v", wrapped)
	}
	if StatusCode(wrapped) != 500 {
		t.Fatalf("StatusCode = %d, want 500", StatusCode(wrapped))
	}
	if nerr.Timeout() {
		t.Fatalf("Timeout = true for status error")
	}

	cause := errors.New("unexpected end of JSON input")
	derr := fmt.Errorf("load: %w", &DecodeError{Op: opLookup, URL: "http://x/lookup.php", Err: cause})
	if !IsDecode(derr) || IsNetwork(derr) {
		t.Fatalf("classification wrong for %v", derr)
	}
	if !errors.Is(derr, cause) {
		t.Fatalf("DecodeError should unwrap to its cause")
	}
	if StatusCode(derr) != 0 {
		t.Fatalf("StatusCode(decode) = %d, want 0", StatusCode(derr))
	}
}
