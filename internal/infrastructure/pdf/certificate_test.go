package pdf_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti-api/internal/application/ports"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/infrastructure/pdf"
)

func TestGenerateAssignmentCertificate(t *testing.T) {
	cost := decimal.NewFromInt(4500000)
	warranty := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	g := pdf.NewMarotoCertificateGenerator("Empresa S.A.S.")

	out, err := g.GenerateAssignmentCertificate(ports.AssignmentCertificate{
		Asset: &entity.AssetUnit{
			ID: "a1", SerialNumber: "PF-12345", AssetTag: "TI-0042",
			PurchaseCost: &cost, WarrantyExpiration: &warranty,
		},
		Product:  &entity.Product{Name: "ThinkPad", Model: "T14", Brand: "Lenovo"},
		Assignee: &entity.User{Name: "Ana Pérez", Email: "ana@empresa.com"},
		IssuedBy: "Soporte TI",
	})
	require.NoError(t, err)
	require.Greater(t, len(out), 100)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateAssignmentCertificate_Incompleta(t *testing.T) {
	g := pdf.NewMarotoCertificateGenerator("")
	_, err := g.GenerateAssignmentCertificate(ports.AssignmentCertificate{Asset: &entity.AssetUnit{}})
	assert.Error(t, err)
}
