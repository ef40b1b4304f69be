package ast

import "testing"

func TestSourceSpanBefore(t *testing.T) {
	tests := []struct {
		a, b SourceSpan
		want bool
	}{
		{SourceSpan{Line: 1, Column: 9}, SourceSpan{Line: 2, Column: 1}, true},
		{SourceSpan{Line: 3, Column: 2}, SourceSpan{Line: 3, Column: 5}, true},
		{SourceSpan{Line: 3, Column: 5}, SourceSpan{Line: 3, Column: 5}, false},
		{SourceSpan{Line: 4, Column: 1}, SourceSpan{Line: 3, Column: 7}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Before(tt.b); got != tt.want {
			t.Errorf("%v.Before(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
