package entity

import "github.com/shopspring/decimal"

// Product representa un producto de una tienda. La clave es (StoreID, Name).
// UnitsInStock nunca es negativo.
type Product struct {
	StoreID      int64
	Name         string
	UnitsInStock int
	PricePerUnit decimal.Decimal
}
