// Package pdf genera el acta de entrega de un equipo asignado a un colaborador.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: ACTA DE ENTREGA          │  Placa + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COLABORADOR: Nombre + Email                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Equipo | Marca | Modelo | Serie | Garantía           │
//	│  COSTO DE COMPRA                                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  QR (id + serie) │ Condiciones de uso                        │
//	│  FIRMAS: Entrega / Recibe                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/jhoicas/activos-ti-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.CertificateGenerator = (*MarotoCertificateGenerator)(nil)

// MarotoCertificateGenerator implementa ports.CertificateGenerator usando Maroto v2.
type MarotoCertificateGenerator struct {
	company string
	now     func() time.Time
}

// NewMarotoCertificateGenerator construye el generador con el nombre de la empresa del encabezado.
func NewMarotoCertificateGenerator(company string) *MarotoCertificateGenerator {
	return &MarotoCertificateGenerator{company: company, now: time.Now}
}

// GenerateAssignmentCertificate genera el PDF y devuelve sus bytes.
func (g *MarotoCertificateGenerator) GenerateAssignmentCertificate(c ports.AssignmentCertificate) ([]byte, error) {
	if c.Asset == nil || c.Product == nil || c.Assignee == nil {
		return nil, fmt.Errorf("pdf: acta incompleta")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de entrega de equipo", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, c, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(assigneeRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(equipmentRow(c))
	if c.Asset.PurchaseCost != nil {
		m.AddRows(costRow("$" + formatMoney(c.Asset.PurchaseCost.StringFixed(0))))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(termsRow(c))
	m.AddRows(row.New(20))
	m.AddRows(signatureRows(c)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa y título (izq), placa y fecha (der).
func headerRow(company string, c ports.AssignmentCertificate, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "Departamento de TI"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ACTA DE ENTREGA DE EQUIPO", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PLACA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(c.Asset.AssetTag, "-"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+now.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// assigneeRow: colaborador que recibe el equipo.
func assigneeRow(c ports.AssignmentCertificate) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("COLABORADOR QUE RECIBE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Assignee.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Email: "+nonEmpty(c.Assignee.Email, "-"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del equipo.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Equipo", 3, align.Left),
		h("Marca", 2, align.Left),
		h("Modelo", 2, align.Left),
		h("N° de serie", 3, align.Left),
		h("Garantía", 2, align.Center),
	)
}

func equipmentRow(c ports.AssignmentCertificate) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	warranty := "-"
	if c.Asset.WarrantyExpiration != nil {
		warranty = c.Asset.WarrantyExpiration.Format("02/01/2006")
	}
	return row.New(8).Add(
		cell(c.Product.Name, 3, align.Left),
		cell(nonEmpty(c.Product.Brand, "-"), 2, align.Left),
		cell(nonEmpty(c.Product.Model, "-"), 2, align.Left),
		cell(c.Asset.SerialNumber, 3, align.Left),
		cell(warranty, 2, align.Center),
	)
}

func costRow(amount string) core.Row {
	return row.New(8).Add(
		col.New(8),
		col.New(2).Add(text.New("Costo de compra:", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(amount, props.Text{Size: 8, Align: align.Right, Top: 2, Right: 1})),
	)
}

// termsRow: QR con id y serie de la unidad + condiciones de uso.
func termsRow(c ports.AssignmentCertificate) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(c.Asset.ID+"|"+c.Asset.SerialNumber, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("CONDICIONES DE USO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 3,
			}),
			text.New(
				"El colaborador recibe el equipo descrito en buen estado y se compromete a darle uso "+
					"exclusivamente laboral, a no instalar software no autorizado y a reportar al área de TI "+
					"cualquier daño, pérdida o robo. El equipo debe devolverse al finalizar la relación laboral "+
					"o cuando TI lo solicite.",
				props.Text{Size: 7.5, Top: 8, Left: 3, Color: colorGray},
			),
		),
	)
}

// signatureRows: líneas de firma de quien entrega y quien recibe.
func signatureRows(c ports.AssignmentCertificate) []core.Row {
	sig := func(label, name string) core.Col {
		return col.New(5).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center}),
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 5}),
			text.New(name, props.Text{Size: 8, Align: align.Center, Top: 9, Color: colorGray}),
		)
	}
	return []core.Row{
		row.New(16).Add(
			sig("ENTREGA (TI)", nonEmpty(c.IssuedBy, "")),
			col.New(2),
			sig("RECIBE", c.Assignee.Name),
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

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
