package perms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileCreationPermissions verifies that files created with perms constants
// have the correct permissions on the filesystem.
func TestFileCreationPermissions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		perm     os.FileMode
		expected os.FileMode
	}{
		{
			name:     "RegularFile creates file with 0644",
			perm:     RegularFile,
			expected: 0o644,
		},
		{
			name:     "SecureFile creates file with 0600",
			perm:     SecureFile,
			expected: 0o600,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			filePath := filepath.Join(t.TempDir(), "test-file")

			err := os.WriteFile(filePath, []byte("test content"), tc.perm)
			require.NoError(t, err)

			info, err := os.Stat(filePath)
			require.NoError(t, err)
			require.Equal(t, tc.expected, info.Mode().Perm())
		})
	}
}

// TestDirectoryCreationPermissions verifies that directories created with
// perms constants have the correct permissions on the filesystem.
func TestDirectoryCreationPermissions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		perm     os.FileMode
		expected os.FileMode
	}{
		{
			name:     "RegularDir creates directory with 0755",
			perm:     RegularDir,
			expected: 0o755,
		},
		{
			name:     "SecureDir creates directory with 0700",
			perm:     SecureDir,
			expected: 0o700,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dirPath := filepath.Join(t.TempDir(), "test-dir")

			err := os.MkdirAll(dirPath, tc.perm)
			require.NoError(t, err)

			info, err := os.Stat(dirPath)
			require.NoError(t, err)
			require.True(t, info.IsDir())
			require.Equal(t, tc.expected, info.Mode().Perm())
		})
	}
}

// TestSecurityClassifications ensures the secure variants are strict subsets
// of their regular counterparts.
func TestSecurityClassifications(t *testing.T) {
	t.Parallel()

	require.True(t, SecureFile&RegularFile == SecureFile)
	require.True(t, SecureDir&RegularDir == SecureDir)
}
