package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		page, limit int
		total       int64
		wantPages   int
		wantHasMore bool
	}{
		{"first of three pages", 1, 10, 25, 3, true},
		{"middle page", 2, 10, 25, 3, true},
		{"last page", 3, 10, 25, 3, false},
		{"exact division", 2, 10, 20, 2, false},
		{"empty result", 1, 10, 0, 0, false},
		{"page beyond range", 5, 10, 25, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantHasMore, p.HasMore)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}
