package model

import "time"

// LowStockThreshold matches the pharmacy dashboard alert.
const LowStockThreshold = 50

type Medicine struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Category   *string   `json:"category" db:"category"`
	Stock      int       `json:"stock" db:"stock"`
	Price      float64   `json:"price" db:"price"`
	ExpiryDate Date      `json:"expiry_date" db:"expiry_date"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func (m *Medicine) LowStock() bool {
	return m.Stock < LowStockThreshold
}

type MedicineRequest struct {
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Stock      FlexInt    `json:"stock"`
	Price      *FlexFloat `json:"price"`
	ExpiryDate Date       `json:"expiryDate"`
}

// ToModel reports whether a price was supplied; price is required.
func (r *MedicineRequest) ToModel() (*Medicine, bool) {
	m := &Medicine{
		Name:       r.Name,
		Category:   StringPtr(r.Category),
		Stock:      int(r.Stock),
		ExpiryDate: r.ExpiryDate,
	}
	if r.Price == nil {
		return m, false
	}
	m.Price = float64(*r.Price)
	return m, true
}
