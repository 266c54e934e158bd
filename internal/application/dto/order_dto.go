package dto

import "time"

// PlaceOrderRequest entrada para registrar un pedido.
type PlaceOrderRequest struct {
	StoreID     string `json:"store_id"`
	ProductName string `json:"product_name"`
	Units       string `json:"units"`
}

// OrderResponse salida de un pedido. CustomerName solo se llena en la vista del gerente.
type OrderResponse struct {
	OrderNumber  int64     `json:"order_number"`
	CustomerName string    `json:"customer_name,omitempty"`
	StoreID      int64     `json:"store_id"`
	ProductName  string    `json:"product_name"`
	UnitsOrdered int       `json:"units_ordered"`
	OrderTime    time.Time `json:"order_time"`
}
