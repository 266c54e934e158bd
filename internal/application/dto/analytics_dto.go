package dto

import "time"

// TopProductDTO producto con más pedidos en las tiendas del gerente.
type TopProductDTO struct {
	Rank        int    `json:"rank"`
	ProductName string `json:"product_name"`
	OrderCount  int    `json:"order_count"`
}

// TopCustomerDTO cliente con más pedidos en las tiendas del gerente.
type TopCustomerDTO struct {
	Rank         int    `json:"rank"`
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	OrderCount   int    `json:"order_count"`
}

// AnalyticsReportDTO reporte consolidado del gerente (base del PDF exportado).
type AnalyticsReportDTO struct {
	ManagerID    int64            `json:"manager_id"`
	ManagerName  string           `json:"manager_name"`
	StoreIDs     []int64          `json:"store_ids"`
	GeneratedAt  time.Time        `json:"generated_at"`
	TopProducts  []TopProductDTO  `json:"top_products"`
	TopCustomers []TopCustomerDTO `json:"top_customers"`
}
