package rpeek_test

import (
	"testing"

	"github.com/fwojciec/rpeek"
	"github.com/stretchr/testify/assert"
)

func TestShouldPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  bool
	}{
		{"12 comments", true},
		{"1,204 comments", true},
		{"1 comment", true},
		{"0 comments", false},
		{"comments", false},
		{"Comments", false},
		{"comment", false},
		{"view comments", true},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rpeek.ShouldPreview(tt.label))
		})
	}
}
