package qr

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EscribeUnPNGDecodificable(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGenerator(dir, "http://localhost:8080/")
	require.NoError(t, err)

	path, err := g.Generate("RX-20260828-001")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "RX-20260828-001.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, imageSize, img.Bounds().Dx())
	assert.Equal(t, imageSize, img.Bounds().Dy())
}

func TestPath_NoRequiereQueElArchivoExista(t *testing.T) {
	g, err := NewGenerator(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	assert.Equal(t, "RX-1.png", filepath.Base(g.Path("RX-1")))
}

func TestGenerate_CreaElDirectorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "anidado", "qr")

	_, err := NewGenerator(dir, "http://localhost:8080")

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
