package common

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "absolute path", path: "/data/chunks/reviews_0001.json"},
		{name: "relative path", path: "chunks/reviews_0001.json"},
		{name: "traversal", path: "/data/../../../etc/passwd", wantErr: false}, // Clean collapses it
		{name: "embedded traversal survives clean", path: "../../secret", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}

func TestValidatePath(t *testing.T) {
	base := t.TempDir()

	inside := filepath.Join(base, "chunks", "reviews_0001.json")
	got, err := ValidatePath(inside, base)
	require.NoError(t, err)
	assert.Equal(t, inside, got)

	_, err = ValidatePath("/etc/passwd", base)
	assert.Error(t, err)
}
