package models

type Product struct {

	ID       uint    `gorm:"primaryKey" json:"id"`
    Name     string  `gorm:"not null" json:"name"`
    Quantity int     `gorm:"not null" json:"quantity"`
    Category string  `gorm:"index;not null" json:"category"`
    Price    float64 `gorm:"not null" json:"price"`
}
