package domain

import "time"

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventReviewRecorded     = "review_recorded"
)

type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"order_id"`
	RestaurantID int         `json:"restaurant_id"`
	CustomerID   int         `json:"customer_id"`
	Status       OrderStatus `json:"status"`
	Total        Cents       `json:"total"`
	Timestamp    time.Time   `json:"timestamp"`
}

type ReviewEvent struct {
	Type         string    `json:"type"`
	ReviewID     string    `json:"review_id"`
	OrderID      string    `json:"order_id"`
	RestaurantID int       `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	NewAverage   float64   `json:"new_average"`
	Timestamp    time.Time `json:"timestamp"`
}
