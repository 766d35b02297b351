package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	config "github.com/vinicinnnn/Cafeteria/configs"
)

type TicketItem struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type KitchenTicket struct {
	OrderID    uint         `json:"order_id"`
	PlacedAt   time.Time    `json:"placed_at"`
	TotalPrice float64      `json:"total_price"`
	Items      []TicketItem `json:"items"`
}

// SendKitchenTicket posts the finalized order to the kitchen display webhook.
// A missing webhook URL disables the notification silently.
func SendKitchenTicket(ticket KitchenTicket) error {

	cfg := config.LoadKitchenConfig()

	if cfg.WebhookURL == "" {
		return nil
	}

	body, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("failed to encode kitchen ticket: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequest("POST", cfg.WebhookURL, bytes.NewReader(body))

	if err != nil {
		return fmt.Errorf("failed to create kitchen ticket request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.AuthToken)
	}

	resp, err := client.Do(req)

	if err != nil {
		log.Printf("Kitchen ticket send failed for order %d: %v\n", ticket.OrderID, err)
		return fmt.Errorf("kitchen ticket send failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		log.Printf("Kitchen webhook returned non-success status %d for order %d\n", resp.StatusCode, ticket.OrderID)
		return fmt.Errorf("kitchen webhook returned non-success status: %d", resp.StatusCode)
	}

	log.Printf("Kitchen ticket sent for order %d (%d items)\n", ticket.OrderID, len(ticket.Items))
	return nil
}
