package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vinicinnnn/Cafeteria/internal/db"
	"github.com/vinicinnnn/Cafeteria/internal/handlers"
	"github.com/vinicinnnn/Cafeteria/internal/models"
)

func setupProductTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	err = testDB.AutoMigrate(&models.Product{})
	if err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	originalDB := db.DB
	db.SetTestDB(testDB)

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/products", handlers.ListProducts)
		api.POST("/products", handlers.CreateProduct)
		api.GET("/products/:id", handlers.GetProduct)
		api.PUT("/products/:id", handlers.UpdateProduct)
		api.DELETE("/products/:id", handlers.DeleteProduct)
		api.GET("/categories", handlers.ListCategories)
	}

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return r, testDB
}

func performProductRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateProductHandler(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	t.Run("Successfully creates a product", func(t *testing.T) {
		reqBody := handlers.CreateProductRequest{
			Name:     "Cappuccino",
			Quantity: 15,
			Category: "Drinks",
			Price:    3.50,
		}
		recorder := performProductRequest(router, http.MethodPost, "/api/products", reqBody)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var created models.Product
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
		assert.Greater(t, created.ID, uint(0))
		assert.Equal(t, "Cappuccino", created.Name)

		var stored models.Product
		assert.NoError(t, testDB.First(&stored, created.ID).Error)
		assert.Equal(t, 15, stored.Quantity)
	})

	t.Run("Returns 400 for a missing name", func(t *testing.T) {
		reqBody := map[string]interface{}{"quantity": 5, "category": "Drinks", "price": 2.00}
		recorder := performProductRequest(router, http.MethodPost, "/api/products", reqBody)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Returns 400 for a non-positive price", func(t *testing.T) {
		reqBody := map[string]interface{}{"name": "Water", "quantity": 5, "category": "Drinks", "price": 0}
		recorder := performProductRequest(router, http.MethodPost, "/api/products", reqBody)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Returns 400 for a negative quantity", func(t *testing.T) {
		reqBody := map[string]interface{}{"name": "Water", "quantity": -1, "category": "Drinks", "price": 1.00}
		recorder := performProductRequest(router, http.MethodPost, "/api/products", reqBody)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestBrowseProducts(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	testDB.Create(&models.Product{Name: "Espresso", Quantity: 10, Category: "Drinks", Price: 3.00})
	testDB.Create(&models.Product{Name: "Iced Espresso", Quantity: 8, Category: "Drinks", Price: 3.50})
	testDB.Create(&models.Product{Name: "Cheesecake", Quantity: 4, Category: "Desserts", Price: 6.00})

	t.Run("Lists everything without filters", func(t *testing.T) {
		recorder := performProductRequest(router, http.MethodGet, "/api/products", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var products []models.Product
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
		assert.Len(t, products, 3)
	})

	t.Run("Filters by category", func(t *testing.T) {
		recorder := performProductRequest(router, http.MethodGet, "/api/products?category=Desserts", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var products []models.Product
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
		assert.Len(t, products, 1)
		assert.Equal(t, "Cheesecake", products[0].Name)
	})

	t.Run("Searches by name substring", func(t *testing.T) {
		recorder := performProductRequest(router, http.MethodGet, "/api/products?search=Espresso", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var products []models.Product
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
		assert.Len(t, products, 2)
	})

	t.Run("Combines both filters", func(t *testing.T) {
		recorder := performProductRequest(router, http.MethodGet, "/api/products?category=Drinks&search=Iced", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var products []models.Product
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
		assert.Len(t, products, 1)
		assert.Equal(t, "Iced Espresso", products[0].Name)
	})

	t.Run("Lists distinct categories sorted", func(t *testing.T) {
		recorder := performProductRequest(router, http.MethodGet, "/api/categories", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var response struct {
			Categories []string `json:"categories"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, []string{"Desserts", "Drinks"}, response.Categories)
	})
}

func TestProductCRUD(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	product := models.Product{Name: "Latte", Quantity: 12, Category: "Drinks", Price: 4.00}
	testDB.Create(&product)

	t.Run("Fetches one product by id", func(t *testing.T) {
		recorder := performProductRequest(router, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var fetched models.Product
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fetched))
		assert.Equal(t, "Latte", fetched.Name)
	})

	t.Run("Returns 404 for a missing product", func(t *testing.T) {
		recorder := performProductRequest(router, http.MethodGet, "/api/products/99999", nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Contains(t, response["error"], "Product not found with ID: 99999")
	})

	t.Run("Updates a product", func(t *testing.T) {
		reqBody := handlers.CreateProductRequest{
			Name:     "Latte",
			Quantity: 20,
			Category: "Drinks",
			Price:    4.50,
		}
		recorder := performProductRequest(router, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID), reqBody)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var stored models.Product
		testDB.First(&stored, product.ID)
		assert.Equal(t, 20, stored.Quantity)
		assert.Equal(t, 4.50, stored.Price)
	})

	t.Run("Returns 404 when updating a missing product", func(t *testing.T) {
		reqBody := handlers.CreateProductRequest{
			Name:     "Ghost",
			Quantity: 1,
			Category: "None",
			Price:    1.00,
		}
		recorder := performProductRequest(router, http.MethodPut, "/api/products/99999", reqBody)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Deletes a product", func(t *testing.T) {
		recorder := performProductRequest(router, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil)

		assert.Equal(t, http.StatusNoContent, recorder.Code)

		var count int64
		testDB.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Deleting a non-existent product is a no-op", func(t *testing.T) {
		recorder := performProductRequest(router, http.MethodDelete, "/api/products/99999", nil)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}
