package basket

import (
	"github.com/vinicinnnn/Cafeteria/internal/models"
)

// Entry is one product selection inside a draft basket.
type Entry struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Basket accumulates the (product, quantity) selections of one in-progress
// order. Entries keep the order in which a product was first added, so the
// total and the persisted order items come out the same every time.
type Basket struct {
	Entries []Entry `json:"entries"`
}

func (b *Basket) IsEmpty() bool {
	return len(b.Entries) == 0
}

// AddOrUpdate sets the requested quantity for a product. A repeated add for
// the same product overwrites the previous quantity, it does not accumulate.
func (b *Basket) AddOrUpdate(productID uint, quantity int) {

	for i := range b.Entries {
		if b.Entries[i].ProductID == productID {
			b.Entries[i].Quantity = quantity
			return
		}
	}

	b.Entries = append(b.Entries, Entry{ProductID: productID, Quantity: quantity})
}

func (b *Basket) Clear() {
	b.Entries = nil
}

// TotalAgainst prices the basket against a freshly fetched product list.
// An entry whose product is missing from the list contributes nothing;
// finalize is where that inconsistency becomes a hard error.
func (b *Basket) TotalAgainst(products []models.Product) float64 {

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total float64
	for _, entry := range b.Entries {
		if p, ok := byID[entry.ProductID]; ok {
			total += p.Price * float64(entry.Quantity)
		}
	}

	return total
}
