package basket

import (
	"github.com/gin-gonic/gin"
)

// Store keeps one draft basket per user session. Implementations must never
// let a basket leak into another session or survive past Drop.
type Store interface {
	Load(c *gin.Context) (Basket, error)
	Save(c *gin.Context, b Basket) error
	Drop(c *gin.Context) error
}
