package entity

import "time"

// Estados de una reparación.
const (
	RepairStatusPending   = "pending"
	RepairStatusCompleted = "completed"
	RepairStatusDisposed  = "disposed"
)

// RepairRecord registra el envío de una unidad a reparación y su retorno.
// Se crea en pending y se modifica una sola vez al registrar el retorno.
type RepairRecord struct {
	ID                string
	AssetUnitID       string
	RepairProvider    string
	IssueDescription  string
	SentDate          time.Time
	SentBy            string
	ReturnDate        *time.Time
	WasRepaired       *bool
	RepairDescription string
	DisposalReason    string
	RegisteredBy      string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
