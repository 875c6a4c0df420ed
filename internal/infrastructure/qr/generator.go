// Package qr genera los códigos QR de prescripción como archivos PNG.
package qr

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/tu-usuario/farmacia-api/internal/application/prescription"
)

var _ prescription.QRGenerator = (*Generator)(nil)

const imageSize = 256

// Generator escribe un PNG por prescripción en el directorio configurado.
// El contenido del código es la URL pública de consulta de la prescripción,
// de modo que cualquier lector de QR lleve al endpoint de escaneo.
type Generator struct {
	dir     string
	baseURL string
}

// NewGenerator crea el generador. Crea el directorio de salida si no existe.
func NewGenerator(dir, baseURL string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create qr dir: %w", err)
	}
	return &Generator{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Generate codifica la URL de la prescripción y guarda el PNG.
// Devuelve la ruta del archivo escrito.
func (g *Generator) Generate(prescriptionID string) (string, error) {
	content := g.baseURL + "/api/prescription/" + prescriptionID
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	scaled, err := barcode.Scale(code, imageSize, imageSize)
	if err != nil {
		return "", fmt.Errorf("scale qr: %w", err)
	}

	path := g.Path(prescriptionID)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create qr file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, scaled); err != nil {
		return "", fmt.Errorf("write qr png: %w", err)
	}
	return path, nil
}

// Path devuelve la ruta del PNG de una prescripción, exista o no.
func (g *Generator) Path(prescriptionID string) string {
	return filepath.Join(g.dir, prescriptionID+".png")
}
