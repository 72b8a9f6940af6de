package ports

import "github.com/jhoicas/activos-ti-api/internal/domain/entity"

// AssignmentCertificate datos del acta de entrega de un equipo.
type AssignmentCertificate struct {
	Asset    *entity.AssetUnit
	Product  *entity.Product
	Assignee *entity.User
	IssuedBy string
}

// CertificateGenerator genera el PDF del acta de entrega.
type CertificateGenerator interface {
	GenerateAssignmentCertificate(c AssignmentCertificate) ([]byte, error)
}
