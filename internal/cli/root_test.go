package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWantImages(t *testing.T) {
	tests := []struct {
		name     string
		images   bool
		colorful bool
		want     bool
	}{
		{"neither flag", false, false, false},
		{"images only", true, false, true},
		{"colorful implies images", false, true, true},
		{"both flags", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wantImages(tt.images, tt.colorful))
		})
	}
}
