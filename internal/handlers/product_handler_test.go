package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossedLowStock(t *testing.T) {
	tests := []struct {
		name      string
		oldStock  int
		newStock  int
		threshold int
		want      bool
	}{
		{"crosses threshold from above", 10, 5, 5, true},
		{"crosses to below threshold", 10, 2, 5, true},
		{"already at threshold", 5, 4, 5, false},
		{"already below threshold", 3, 2, 5, false},
		{"stays above threshold", 10, 8, 5, false},
		{"restock stays low", 2, 4, 5, false},
		{"threshold disabled", 10, 0, 0, false},
		{"negative threshold disabled", 10, 0, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, crossedLowStock(tt.oldStock, tt.newStock, tt.threshold))
		})
	}
}
