package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mealhub/internal/domain"
	"mealhub/internal/service"
)

type Handler struct {
	Orders    service.OrderServiceInterface
	Reviews   service.ReviewServiceInterface
	Discovery service.DiscoveryServiceInterface
}

func NewHandler(orders service.OrderServiceInterface, reviews service.ReviewServiceInterface, discovery service.DiscoveryServiceInterface) *Handler {
	return &Handler{Orders: orders, Reviews: reviews, Discovery: discovery}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{orderId}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{orderId}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/orders/{orderId}/status", h.advanceStatus).Methods("PUT")
	r.HandleFunc("/api/orders/{orderId}/review", h.createReview).Methods("POST")
	r.HandleFunc("/api/restaurants", h.listRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/top", h.topRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/reviews", h.listReviews).Methods("GET")
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CustomerID   int                   `json:"customer_id"`
		RestaurantID int                   `json:"restaurant_id"`
		Items        []service.ItemRequest `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.CreateOrder(r.Context(), payload.CustomerID, payload.RestaurantID, payload.Items)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.GetOrder(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.Orders.GetQRCode(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(qr)
}

func (h *Handler) advanceStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status       string `json:"status"`
		RestaurantID int    `json:"restaurant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.AdvanceStatus(r.Context(), mux.Vars(r)["orderId"],
		domain.OrderStatus(payload.Status), payload.RestaurantID)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	review, err := h.Reviews.RecordReview(r.Context(), mux.Vars(r)["orderId"], payload.Rating, payload.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrOrderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, service.ErrOrderNotDelivered),
			errors.Is(err, service.ErrDuplicateReview):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(review)
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	var address *domain.Address
	query := r.URL.Query()
	if query.Get("city") != "" || query.Get("street") != "" {
		address = &domain.Address{
			City:        query.Get("city"),
			Street:      query.Get("street"),
			HouseNumber: query.Get("house_number"),
			PostalCode:  query.Get("postal_code"),
		}
	}

	listings, err := h.Discovery.ListWithDistance(r.Context(), address)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}

func (h *Handler) topRestaurants(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	restaurants, err := h.Discovery.TopRated(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(restaurants)
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := strconv.Atoi(mux.Vars(r)["restaurantId"])
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return
	}

	reviews, err := h.Reviews.ListReviews(r.Context(), restaurantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}

func writeOrderError(w http.ResponseWriter, err error) {
	var insufficient *domain.InsufficientFundsError
	switch {
	case errors.As(err, &insufficient):
		http.Error(w, fmt.Sprintf("insufficient funds: short %s", insufficient.Shortfall), http.StatusConflict)
	case errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrMenuItemNotFound):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrRestaurantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
