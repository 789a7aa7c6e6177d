package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	tests := []struct {
		name   string
		tag    string
		date   string
		commit string
		want   string
	}{
		{"dev", "", "", "", "1.0.0"},
		{"tag", "v1.0.0", "", "", "1.0.0@v1.0.0"},
		{"build", "v1.0.0", "20261019", "a1b2c3d", "1.0.0@v1.0.0-20261019-a1b2c3d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			GitTag, BuildDate, GitCommit = tt.tag, tt.date, tt.commit
			defer func() {
				GitTag, BuildDate, GitCommit = "", "", ""
			}()
			assert.Equal(t, tt.want, Version())
		})
	}
}
