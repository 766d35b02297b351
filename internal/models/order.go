package models

import "time"

type Order struct {
    ID         uint      `gorm:"primaryKey" json:"id"`
    TimeStamp  time.Time `gorm:"not null" json:"time_stamp"`
    TotalPrice float64   `gorm:"not null" json:"total_price"`
}

type OrderItem struct {
    ID        uint `gorm:"primaryKey" json:"id"`
    OrderID   uint `gorm:"index;not null" json:"order_id"`
    ProductID uint `gorm:"index;not null" json:"product_id"`
    Quantity  int  `gorm:"not null" json:"quantity"`
}
