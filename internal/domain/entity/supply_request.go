package entity

// SupplyRequest solicitud de reabastecimiento desde una bodega hacia una tienda.
// Se persiste junto con el incremento de stock del producto, en la misma transacción.
type SupplyRequest struct {
	RequestNumber  int64
	ManagerID      int64
	WarehouseID    int64
	StoreID        int64
	ProductName    string
	UnitsRequested int
}
