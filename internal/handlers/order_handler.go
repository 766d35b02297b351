package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	config "github.com/vinicinnnn/Cafeteria/configs"
	"github.com/vinicinnnn/Cafeteria/internal/basket"
	"github.com/vinicinnnn/Cafeteria/internal/db"
	"github.com/vinicinnnn/Cafeteria/internal/models"
	"github.com/vinicinnnn/Cafeteria/internal/notifier"
)

const insufficientStockMessage = "There are not enough products in stock."

var basketStore basket.Store = basket.SessionStore{}

// SetBasketStore swaps the backing store for draft baskets. Called once at
// startup, and by tests.
func SetBasketStore(s basket.Store) {
	basketStore = s
}

type AddProductRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type FinalizeOrderRequest struct {
	TotalPrice float64 `json:"total_price" binding:"gte=0"`
}

type UpdateOrderRequest struct {
	TimeStamp  time.Time `json:"time_stamp" binding:"required"`
	TotalPrice float64   `json:"total_price" binding:"gte=0"`
}

// inStockProducts returns the catalog filtered to what can actually be
// ordered right now.
func inStockProducts() ([]models.Product, error) {
	var products []models.Product
	if err := db.DB.Where("quantity > 0").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// StartBasket opens a fresh order: any previous draft is discarded and the
// in-stock product list is returned with a zero total.
func StartBasket(c *gin.Context) {

	products, err := inStockProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := basketStore.Drop(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset basket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    products,
		"total_price": 0.0,
	})
}

// AddProduct puts a product and quantity into the draft basket, re-checking
// stock against a fresh catalog read so a sold-out product is never accepted.
func AddProduct(c *gin.Context) {

	var req AddProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	products, err := inStockProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var selected *models.Product
	for i := range products {
		if products[i].ID == req.ProductID {
			selected = &products[i]
			break
		}
	}

	if selected == nil {
		errorMessage := fmt.Sprintf("Product not found with ID: %d", req.ProductID)
		c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
		return
	}

	b, err := basketStore.Load(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load basket"})
		return
	}

	var message string

	if selected.Quantity >= req.Quantity {
		b.AddOrUpdate(req.ProductID, req.Quantity)

		if err := basketStore.Save(c, b); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save basket"})
			return
		}
	} else {
		// The add is rejected but earlier selections stay in place for a retry.
		message = insufficientStockMessage
	}

	resp := gin.H{
		"products":    products,
		"total_price": b.TotalAgainst(products),
	}
	if message != "" {
		resp["message"] = message
	}

	c.JSON(http.StatusOK, resp)
}

// FinalizeOrder turns the draft basket into a persisted order with its items,
// decrementing stock for every entry. The whole thing commits or none of it
// does.
func FinalizeOrder(c *gin.Context) {

	b, err := basketStore.Load(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load basket"})
		return
	}

	// Finalizing without having added anything just goes back to the listing.
	if b.IsEmpty() {
		c.Redirect(http.StatusSeeOther, "/api/orders")
		return
	}

	var req FinalizeOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	tx := db.DB.Begin()

	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start transaction"})
		return
	}

	order := models.Order{
		TimeStamp:  time.Now(),
		TotalPrice: req.TotalPrice,
	}

	if err := tx.Create(&order).Error; err != nil {

		tx.Rollback()

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	threshold := config.LowStockThreshold()

	var ticketItems []notifier.TicketItem
	var lowStock []notifier.LowStockProduct

	for _, entry := range b.Entries {

		orderItem := models.OrderItem{
			OrderID:   order.ID,
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
		}

		if err := tx.Create(&orderItem).Error; err != nil {

			tx.Rollback()

			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order items"})
			return
		}

		var product models.Product

		if err := tx.First(&product, entry.ProductID).Error; err != nil {

			tx.Rollback()

			errorMessage := fmt.Sprintf("Product not found with ID: %d", entry.ProductID)
			c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
			return
		}

		// Conditional decrement: only succeeds while enough stock remains, so
		// concurrent orders can never drive the quantity negative.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", entry.ProductID, entry.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", entry.Quantity))

		if res.Error != nil {

			tx.Rollback()

			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update stock"})
			return
		}

		if res.RowsAffected == 0 {

			tx.Rollback()

			errorMessage := fmt.Sprintf("Insufficient stock for product with ID: %d", entry.ProductID)
			c.JSON(http.StatusConflict, gin.H{"error": errorMessage})
			return
		}

		ticketItems = append(ticketItems, notifier.TicketItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    entry.Quantity,
		})

		if remaining := product.Quantity - entry.Quantity; remaining <= threshold {
			lowStock = append(lowStock, notifier.LowStockProduct{
				Name:      product.Name,
				Remaining: remaining,
			})
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit order"})
		return
	}

	if err := basketStore.Drop(c); err != nil {
		log.Printf("Failed to drop basket after order %d: %v\n", order.ID, err)
	}

	go func(ticket notifier.KitchenTicket) {

		if err := notifier.SendKitchenTicket(ticket); err != nil {
			log.Printf("Failed to notify kitchen for order %d: %v\n", ticket.OrderID, err)
		}
	}(notifier.KitchenTicket{
		OrderID:    order.ID,
		PlacedAt:   order.TimeStamp,
		TotalPrice: order.TotalPrice,
		Items:      ticketItems,
	})

	go func(items []notifier.LowStockProduct) {

		if err := notifier.SendLowStockAlert(items); err != nil {
			log.Printf("Failed to send low-stock alert after order %d: %v\n", order.ID, err)
		}
	}(lowStock)

	c.Redirect(http.StatusSeeOther, "/api/orders")
}

func ListOrders(c *gin.Context) {

	var orders []models.Order

	if err := db.DB.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func GetOrder(c *gin.Context) {

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var order models.Order

	if err := db.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorMessage := fmt.Sprintf("Order not found with ID: %d", id)
			c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder edits the two mutable order fields. Losing the write means the
// row either vanished (404) or someone else got there first (409).
func UpdateOrder(c *gin.Context) {

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req UpdateOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res := db.DB.Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"time_stamp":  req.TimeStamp,
			"total_price": req.TotalPrice,
		})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}

	if res.RowsAffected == 0 {

		var count int64
		if err := db.DB.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if count == 0 {
			errorMessage := fmt.Sprintf("Order not found with ID: %d", id)
			c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
			return
		}

		c.JSON(http.StatusConflict, gin.H{"error": "order was modified concurrently"})
		return
	}

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve updated order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order by id. Deleting an id that is already gone is
// not an error.
func DeleteOrder(c *gin.Context) {

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	if err := db.DB.Delete(&models.Order{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
