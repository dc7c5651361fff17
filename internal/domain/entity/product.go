package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo externo. Inmutable durante una simulación.
type Product struct {
	ID       int
	Title    string
	Price    decimal.Decimal // precio de lista (positivo en datos sanos)
	Category string
}
