package logging_test

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"swiftstock/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "swiftstock.log")
	closer, err := logging.Setup(logging.RotationConfig{File: path})
	require.NoError(t, err)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		closer.Close()
	})

	log.Printf("inventory ready")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "inventory ready")
}

func TestSetup_StderrOnly(t *testing.T) {
	closer, err := logging.Setup(logging.RotationConfig{})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}

func TestNewRotatingWriter_Defaults(t *testing.T) {
	_, err := logging.NewRotatingWriter(logging.RotationConfig{})
	assert.Error(t, err)

	w, err := logging.NewRotatingWriter(logging.RotationConfig{File: filepath.Join(t.TempDir(), "a.log")})
	require.NoError(t, err)
	assert.Equal(t, 10, w.MaxSize)
	assert.Equal(t, 5, w.MaxBackups)
}
