package main

import (
    "log"
    "os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	config "github.com/vinicinnnn/Cafeteria/configs"
	"github.com/vinicinnnn/Cafeteria/internal/basket"
	"github.com/vinicinnnn/Cafeteria/internal/db"
	"github.com/vinicinnnn/Cafeteria/internal/handlers"
)

func main() {

    if err := godotenv.Load(); err != nil {
        log.Println("No .env file found, reading configuration from environment")
    }

    db.Init()

    r := gin.Default()

    // ── session store ──
	store := cookie.NewStore([]byte(getEnv("SESSION_SECRET", "change-me")))
	r.Use(sessions.Sessions("cafesess", store))

    // ── draft basket backend ──
    basketCfg := config.LoadBasketConfig()
    if basketCfg.Backend == "redis" {
        client := redis.NewClient(&redis.Options{Addr: basketCfg.RedisAddr})
        handlers.SetBasketStore(&basket.RedisStore{Client: client, TTL: basketCfg.TTL})
        log.Printf("Draft baskets stored in Redis at %s", basketCfg.RedisAddr)
    }

    // ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

    // ── API ──
    api := r.Group("/api")
    {
        api.GET("/products", handlers.ListProducts)
        api.POST("/products", handlers.CreateProduct)
        api.GET("/products/:id", handlers.GetProduct)
        api.PUT("/products/:id", handlers.UpdateProduct)
        api.DELETE("/products/:id", handlers.DeleteProduct)
        api.GET("/categories", handlers.ListCategories)

        api.GET("/basket", handlers.StartBasket)
        api.POST("/basket/items", handlers.AddProduct)

        api.GET("/orders", handlers.ListOrders)
        api.POST("/orders", handlers.FinalizeOrder)
        api.GET("/orders/:id", handlers.GetOrder)
        api.PUT("/orders/:id", handlers.UpdateOrder)
        api.DELETE("/orders/:id", handlers.DeleteOrder)
    }

    r.Run(":" + getEnv("PORT", "8080"))
}


func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}
