package syntax

import (
	"fmt"
	"testing"
)

func TestQueryRange(t *testing.T) {
	tokens := NewTextTokens(nil)
	tokens.Set(
		Token{Start: 0, End: 5, Style: 1},
		Token{Start: 5, End: 8, Style: 1},
		Token{Start: 10, End: 20, Style: 1},
	)

	testcases := []struct {
		start, end int
		want       int
	}{
		// empty range
		{start: 3, end: 3, want: 0},
		// fully inside one token
		{start: 1, end: 4, want: 1},
		// across adjacent tokens
		{start: 4, end: 6, want: 2},
		// the gap between tokens
		{start: 8, end: 10, want: 0},
		// end is exclusive
		{start: 20, end: 25, want: 0},
		// covers everything
		{start: 0, end: 25, want: 3},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			got := tokens.QueryRange(tc.start, tc.end)
			if len(got) != tc.want {
				t.Fail()
			}
		})
	}
}

func TestQueryRangeEmpty(t *testing.T) {
	tokens := NewTextTokens(nil)
	if got := tokens.QueryRange(0, 10); got != nil {
		t.Fail()
	}
}
