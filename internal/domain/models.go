package domain

import "time"

type User struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	AccountID int     `json:"account_id"`
	Address   Address `json:"address"`
}

type Account struct {
	ID      int   `json:"id"`
	UserID  int   `json:"user_id"`
	Balance Cents `json:"balance"`
}

type Address struct {
	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	PostalCode  string `json:"postal_code"`
}

func (a Address) Empty() bool {
	return a.City == "" && a.Street == "" && a.HouseNumber == "" && a.PostalCode == ""
}

type Restaurant struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	AccountID   int         `json:"account_id"`
	Address     Address     `json:"address"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	CourierType CourierType `json:"courier_type"`
	Rating      float64     `json:"rating"`
	CreatedAt   time.Time   `json:"created_at"`
}

type MenuItem struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Price        Cents  `json:"price"`
}

type Order struct {
	ID                  string      `json:"id"`
	CustomerID          int         `json:"customer_id"`
	RestaurantID        int         `json:"restaurant_id"`
	Items               []OrderItem `json:"items"`
	Subtotal            Cents       `json:"subtotal"`
	Fee                 Cents       `json:"fee"`
	Total               Cents       `json:"total"`
	Status              OrderStatus `json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
	EstimatedDeliveryAt time.Time   `json:"estimated_delivery_at"`
}

// OrderItem is a snapshot taken at order time. Menu price edits never
// touch it; financial figures are always derived from these rows.
type OrderItem struct {
	MenuItemID int    `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  Cents  `json:"unit_price"`
}

type Review struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	RestaurantID int       `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// RestaurantListing is a discovery result: a restaurant annotated with the
// distance from the customer, nil when neither side could be resolved.
type RestaurantListing struct {
	Restaurant Restaurant `json:"restaurant"`
	DistanceKm *float64   `json:"distance_km,omitempty"`
}
