// Package pdf implementa la representación imprimible de una prescripción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la farmacia  │  ID + Fecha + Estado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PACIENTE: Nombre, edad, género, contacto                   │
//	│  MÉDICO: Nombre del prescriptor                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Medicamento | Lote | Cantidad | Dosis               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de verificación + leyenda                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/farmacia-api/internal/application/prescription"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 74}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ prescription.PDFGenerator = (*PrescriptionPDFGenerator)(nil)

// PrescriptionPDFGenerator implementa prescription.PDFGenerator usando Maroto v2.
type PrescriptionPDFGenerator struct {
	pharmacyName string
	baseURL      string
}

// NewPrescriptionPDFGenerator construye el generador. baseURL se codifica
// en el QR del pie de página para verificar la prescripción en línea.
func NewPrescriptionPDFGenerator(pharmacyName, baseURL string) *PrescriptionPDFGenerator {
	return &PrescriptionPDFGenerator{
		pharmacyName: pharmacyName,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

// GeneratePrescriptionPDF genera el PDF y devuelve sus bytes.
func (g *PrescriptionPDFGenerator) GeneratePrescriptionPDF(
	_ context.Context,
	p *entity.Prescription,
	patient *entity.Patient,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Prescripción "+p.ID, true).
		WithAuthor(g.pharmacyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p, g.pharmacyName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(patientRow(patient))
	m.AddRows(doctorRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range medicationRows(p.Medications) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(p, g.baseURL)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la farmacia (izq) y el ID + fecha + estado (der).
func headerRow(p *entity.Prescription, pharmacyName string) core.Row {
	estado := "CREADA"
	if p.Dispensed() {
		estado = "DISPENSADA"
	}
	fecha := p.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(pharmacyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("PRESCRIPCIÓN MÉDICA", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(p.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+estado, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 13,
				Color: colorPrimary,
			}),
		),
	)
}

// patientRow: datos del paciente.
func patientRow(patient *entity.Patient) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PACIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(patient.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Edad: %d   |   Género: %s   |   Contacto: %s",
				patient.Age, patient.Gender, patient.Contact,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// doctorRow: médico prescriptor.
func doctorRow(p *entity.Prescription) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("MÉDICO PRESCRIPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(p.DoctorName, props.Text{Size: 9, Top: 6}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de medicamentos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Medicamento", 5, align.Left),
		h("Lote", 3, align.Left),
		h("Cantidad", 2, align.Center),
		h("Dosis", 2, align.Left),
	)
}

// medicationRows: una fila por línea de medicamento.
func medicationRows(meds []entity.Medication) []core.Row {
	result := make([]core.Row, 0, len(meds))
	for _, med := range meds {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				med.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				med.Batch,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", med.Qty),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(med.Dosage, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// footerRows: QR de verificación + leyenda.
func footerRows(p *entity.Prescription, baseURL string) []core.Row {
	qrData := baseURL + "/api/prescription/" + p.ID
	return []core.Row{
		row.New(50).Add(
			col.New(4).Add(code.NewQr(qrData, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR en el mostrador\npara verificar y dispensar esta prescripción.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Válida por una única dispensación.", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 26,
					Left: 3, Color: colorPrimary,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
