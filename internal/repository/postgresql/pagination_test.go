package postgresql

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		want        int64
	}{
		{"first page", 1, 10, 0},
		{"third page", 3, 10, 20},
		{"zero page", 0, 10, 0},
		{"zero limit", 5, 0, 0},
		{"saturates", math.MaxInt, 10, math.MaxInt64},
		{"largest exact", 922337203685477581, 10, 9223372036854775800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageOffset(tt.page, tt.limit))
		})
	}
}
