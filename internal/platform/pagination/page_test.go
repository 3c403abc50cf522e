package pagination

import (
	"math"
	"testing"
)

func TestNewRequestClamps(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, DefaultLimit},
		{-3, 5, 1, 5},
		{2, 500, 2, MaxLimit},
		{4, 100, 4, 100},
		{1, 1, 1, 1},
		{math.MaxInt/10 + 2, 10, MaxPage, 10},
	}
	for _, tc := range tests {
		got := NewRequest(tc.page, tc.limit, DefaultPageSize)
		if got.Page != tc.wantPage || got.Limit != tc.wantLimit {
			t.Fatalf("NewRequest(%d, %d) = %+v, want page %d limit %d", tc.page, tc.limit, got, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := (Request{Page: 3, Limit: 10}).Offset(); got != 20 {
		t.Fatalf("Offset = %d, want 20", got)
	}
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{250, 100, 3},
	}
	for _, tc := range tests {
		page := NewPage(Request{Page: 1, Limit: tc.limit}, tc.total)
		if page.Pages != tc.want {
			t.Fatalf("pages for total %d limit %d = %d, want %d", tc.total, tc.limit, page.Pages, tc.want)
		}
		if page.Total != tc.total {
			t.Fatalf("total = %d, want %d", page.Total, tc.total)
		}
	}
}

func TestOffsetAtMaxPageIsPositive(t *testing.T) {
	req := NewRequest(math.MaxInt, math.MaxInt, PageSizeConfig{Default: DefaultLimit})
	if got := req.Offset(); got < 0 {
		t.Fatalf("Offset = %d, want non-negative", got)
	}
}
