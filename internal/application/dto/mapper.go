package dto

import "github.com/jhoicas/activos-ti-api/internal/domain/entity"

// FromProduct convierte la entidad a su salida HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Model:        p.Model,
		Brand:        p.Brand,
		CategoryID:   p.CategoryID,
		Type:         p.Type,
		CurrentStock: p.CurrentStock,
		MinimumStock: p.MinimumStock,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromCategory(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromBranch(b *entity.Branch) BranchResponse {
	return BranchResponse{ID: b.ID, Name: b.Name, Address: b.Address, Active: b.Active, CreatedAt: b.CreatedAt}
}

func FromDepartment(d *entity.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name, BranchID: d.BranchID, Active: d.Active, CreatedAt: d.CreatedAt}
}

func FromMovement(m *entity.MovementRecord) MovementResponse {
	return MovementResponse{
		ID:                      m.ID,
		Type:                    m.Type,
		ProductID:               m.ProductID,
		AssetUnitID:             m.AssetUnitID,
		Quantity:                m.Quantity,
		SourceID:                m.SourceID,
		DestinationDepartmentID: m.DestinationDepartmentID,
		DestinationBranchID:     m.DestinationBranchID,
		AssignedUserID:          m.AssignedUserID,
		CreatedBy:               m.CreatedBy,
		Notes:                   m.Notes,
		CreatedAt:               m.CreatedAt,
	}
}

// FromAsset no incluye la clave de cifrado; el caso de uso la agrega abierta cuando corresponde.
func FromAsset(a *entity.AssetUnit) AssetResponse {
	return AssetResponse{
		ID:                 a.ID,
		ProductID:          a.ProductID,
		SerialNumber:       a.SerialNumber,
		AssetTag:           a.AssetTag,
		Status:             a.Status,
		AssignedUserID:     a.AssignedUserID,
		HasEncryptionPass:  a.EncryptionPass != "",
		PurchaseDate:       a.PurchaseDate,
		WarrantyExpiration: a.WarrantyExpiration,
		PurchaseCost:       a.PurchaseCost,
		Notes:              a.Notes,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func FromRepair(r *entity.RepairRecord) RepairResponse {
	return RepairResponse{
		ID:                r.ID,
		AssetUnitID:       r.AssetUnitID,
		RepairProvider:    r.RepairProvider,
		IssueDescription:  r.IssueDescription,
		SentDate:          r.SentDate,
		SentBy:            r.SentBy,
		ReturnDate:        r.ReturnDate,
		WasRepaired:       r.WasRepaired,
		RepairDescription: r.RepairDescription,
		DisposalReason:    r.DisposalReason,
		RegisteredBy:      r.RegisteredBy,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func FromNotification(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		ForAdmins: n.ForAdmins,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
