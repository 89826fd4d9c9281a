package request

import (
	"errors"
	"testing"

	"github.com/aadb-project/aadb/internal/domain"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/order"
	"github.com/aadb-project/aadb/internal/domain/search/query"
)

func TestNewList_Defaults(t *testing.T) {
	r := NewList(field.Records(), query.Params{}, "", "", 0, 0, Limits{})
	if r.SortField() != field.Disease {
		t.Errorf("SortField() = %q, want disease", r.SortField())
	}
	if r.Direction() != order.Asc {
		t.Errorf("Direction() = %q, want asc", r.Direction())
	}
	if r.Page() != 1 {
		t.Errorf("Page() = %d, want 1", r.Page())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), DefaultLimit)
	}
	if r.Skip() != 0 {
		t.Errorf("Skip() = %d", r.Skip())
	}
}

func TestNewList_Clamping(t *testing.T) {
	lim := Limits{Default: 20, Max: 100}
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"negative page", -3, 10, 1, 10},
		{"negative limit", 1, -5, 1, 1},
		{"over max", 1, 5000, 1, 100},
		{"unset limit", 2, 0, 2, 20},
		{"in range", 3, 50, 3, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewList(field.Records(), query.Params{}, "disease", "asc", tt.page, tt.limit, lim)
			if r.Page() != tt.wantPage || r.Limit() != tt.wantLimit {
				t.Errorf("page=%d limit=%d, want page=%d limit=%d", r.Page(), r.Limit(), tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestNewList_DefaultMaxIsTenThousand(t *testing.T) {
	r := NewList(field.Records(), query.Params{}, "", "", 1, 50000, Limits{})
	if r.Limit() != MaxLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), MaxLimit)
	}
}

func TestNewList_SkipSecondPage(t *testing.T) {
	r := NewList(field.Records(), query.Params{}, "organ", "desc", 2, 10, Limits{})
	if r.Skip() != 10 {
		t.Errorf("Skip() = %d, want 10", r.Skip())
	}
	if r.SortField() != "organ" || r.Direction() != order.Desc {
		t.Errorf("sort = %s %s", r.SortField(), r.Direction())
	}
}

func TestNewList_UnknownSortFallsBack(t *testing.T) {
	r := NewList(field.Biomarkers(), query.Params{}, "priority", "", 1, 10, Limits{})
	if r.SortField() != "name" {
		t.Errorf("SortField() = %q, want name", r.SortField())
	}
}

func TestNewAdvanced(t *testing.T) {
	r, err := NewAdvanced("  tpo ", 0, true, Limits{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Term() != "tpo" || r.Limit() != DefaultAdvancedLimit || !r.IncludeStats() {
		t.Errorf("got term=%q limit=%d stats=%v", r.Term(), r.Limit(), r.IncludeStats())
	}

	r, _ = NewAdvanced("tpo", 9999, false, Limits{})
	if r.Limit() != MaxAdvancedLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), MaxAdvancedLimit)
	}
}

func TestNewAdvanced_TermTooShort(t *testing.T) {
	for _, term := range []string{"", " a ", "ö"} {
		_, err := NewAdvanced(term, 10, false, Limits{})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("term %q: err = %v, want ErrValidation", term, err)
		}
	}
	if _, err := NewAdvanced("öü", 10, false, Limits{}); err != nil {
		t.Errorf("two runes should pass: %v", err)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 20},
		{3, -5, 3, 1},
		{2, 999, 2, 50},
	}
	for _, tt := range tests {
		p, l := Window(tt.page, tt.limit, Limits{Max: 50})
		if p != tt.wantPage || l != tt.wantLimit {
			t.Errorf("Window(%d, %d) = %d, %d, want %d, %d", tt.page, tt.limit, p, l, tt.wantPage, tt.wantLimit)
		}
	}
}
