package entity

import "time"

// Order pedido de un cliente. Solo se agrega; nunca se modifica ni elimina.
type Order struct {
	OrderNumber  int64
	CustomerID   int64
	StoreID      int64
	ProductName  string
	UnitsOrdered int
	OrderTime    time.Time
}

// OrderWithCustomer pedido junto con el nombre del cliente (vista del gerente).
type OrderWithCustomer struct {
	Order
	CustomerName string
}
