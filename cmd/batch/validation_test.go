package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBatchArgs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pom.xml")
	require.NoError(t, os.WriteFile(file, []byte("<project/>"), 0644))

	tests := []struct {
		name    string
		options RunOptionsBatch
		args    []string
		wantErr string
	}{
		{
			name: "valid directory",
			args: []string{dir},
		},
		{
			name:    "no arguments",
			args:    nil,
			wantErr: "exactly one directory",
		},
		{
			name:    "too many arguments",
			args:    []string{dir, dir},
			wantErr: "exactly one directory",
		},
		{
			name:    "missing directory",
			args:    []string{filepath.Join(dir, "absent")},
			wantErr: "cannot access",
		},
		{
			name:    "file instead of directory",
			args:    []string{file},
			wantErr: "is not a directory",
		},
		{
			name:    "negative workers",
			options: RunOptionsBatch{Workers: -1},
			args:    []string{dir},
			wantErr: "workers must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := validateBatchArgs(&tt.options, tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.args[0], root)
		})
	}
}
