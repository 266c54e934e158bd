package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateProductRequest entrada para actualizar un producto. NewUnits y NewPrice vacíos = sin cambio.
type UpdateProductRequest struct {
	StoreID     string `json:"store_id"`
	ProductName string `json:"product_name"`
	NewUnits    string `json:"new_units,omitempty"`
	NewPrice    string `json:"new_price,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	StoreID      int64           `json:"store_id"`
	Name         string          `json:"name"`
	UnitsInStock int             `json:"units_in_stock"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

// ProductUpdateResponse registro de la bitácora de modificaciones.
type ProductUpdateResponse struct {
	UpdateNumber int64     `json:"update_number"`
	StoreID      int64     `json:"store_id"`
	ManagerName  string    `json:"manager_name"`
	ProductName  string    `json:"product_name"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// StoreResponse tienda cercana junto con su distancia al usuario.
type StoreResponse struct {
	ID        int64   `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  float64 `json:"distance"`
}

// SupplyRequestInput entrada para una solicitud de reabastecimiento.
type SupplyRequestInput struct {
	StoreID     string `json:"store_id"`
	WarehouseID string `json:"warehouse_id"`
	ProductName string `json:"product_name"`
	Units       string `json:"units"`
}

// SupplyRequestResponse resultado de una solicitud aplicada.
type SupplyRequestResponse struct {
	RequestNumber int64  `json:"request_number"`
	StoreID       int64  `json:"store_id"`
	WarehouseID   int64  `json:"warehouse_id"`
	ProductName   string `json:"product_name"`
	Units         int    `json:"units"`
	NewStock      int    `json:"new_stock"`
}

// SupplyRequestRecord solicitud ya registrada, para el historial del gerente.
type SupplyRequestRecord struct {
	RequestNumber int64  `json:"request_number"`
	StoreID       int64  `json:"store_id"`
	WarehouseID   int64  `json:"warehouse_id"`
	ProductName   string `json:"product_name"`
	Units         int    `json:"units"`
}
