package repository

import "context"

// ProductRanking resultado crudo: cantidad de pedidos por nombre de producto.
type ProductRanking struct {
	ProductName string
	OrderCount  int
}

// CustomerRanking resultado crudo: cantidad de pedidos por cliente.
type CustomerRanking struct {
	CustomerID   int64
	CustomerName string
	OrderCount   int
}

// AnalyticsRepository define las consultas de lectura para los reportes del gerente.
// Las implementaciones son read-only y cuentan solo pedidos de tiendas del gerente.
type AnalyticsRepository interface {
	// TopProducts ordena por cantidad de pedidos descendente; empate por nombre ascendente.
	TopProducts(ctx context.Context, managerID int64, limit int) ([]ProductRanking, error)
	// TopCustomers ordena por cantidad de pedidos descendente; empate por ID de cliente ascendente.
	TopCustomers(ctx context.Context, managerID int64, limit int) ([]CustomerRanking, error)
}
