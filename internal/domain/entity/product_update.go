package entity

import "time"

// ProductUpdate registro de auditoría de una modificación de producto hecha por un gerente.
type ProductUpdate struct {
	UpdateNumber int64
	StoreID      int64
	ManagerID    int64
	ManagerName  string // solo se llena en listados
	ProductName  string
	UpdatedOn    time.Time
}
