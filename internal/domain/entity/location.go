package entity

import "time"

// Branch es una sede de la empresa; destino posible de una salida de inventario.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Department es un área interna (opcionalmente ligada a una sede); destino posible de una salida.
type Department struct {
	ID        string
	Name      string
	BranchID  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
