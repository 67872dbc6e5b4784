package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mealhub/internal/domain"
	"mealhub/internal/geo"
	"mealhub/internal/storage"
)

var (
	ErrEmptyOrder         = errors.New("order has no items")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNotOwner           = errors.New("restaurant does not own this order")
	ErrInvalidTransition  = errors.New("illegal status transition")

	// ErrOrderFailed is the generic customer-facing translation of
	// internal settlement failures; the real cause goes to the log only.
	ErrOrderFailed = errors.New("order could not be completed")
)

const (
	preparationTime       = 20 * time.Minute
	placeholderDistanceKm = 5.0
)

type ItemRequest struct {
	MenuItemID int `json:"menu_item_id"`
	Quantity   int `json:"quantity"`
}

type OrderService struct {
	orders            OrderRepository
	menu              MenuRepository
	restaurants       RestaurantRepository
	users             UserRepository
	resolver          Resolver
	publisher         EventPublisher
	qrEncoder         QRGenerator
	feeRatePercent    int64
	platformAccountID int
	log               *zap.Logger
}

func NewOrderService(
	orders OrderRepository,
	menu MenuRepository,
	restaurants RestaurantRepository,
	users UserRepository,
	resolver Resolver,
	publisher EventPublisher,
	qrEncoder QRGenerator,
	feeRatePercent int64,
	platformAccountID int,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:            orders,
		menu:              menu,
		restaurants:       restaurants,
		users:             users,
		resolver:          resolver,
		publisher:         publisher,
		qrEncoder:         qrEncoder,
		feeRatePercent:    feeRatePercent,
		platformAccountID: platformAccountID,
		log:               log,
	}
}

// CreateOrder prices the line items, settles the three-way split and
// persists the PENDING order atomically with the settlement. Prices are
// read once here and become part of the immutable snapshot.
func (s *OrderService) CreateOrder(ctx context.Context, customerID, restaurantID int, items []ItemRequest) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	customer, err := s.users.GetUser(ctx, customerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	restaurant, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	var snapshot []domain.OrderItem
	var subtotal domain.Cents
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrEmptyOrder
		}
		menuItem, err := s.menu.GetMenuItem(ctx, restaurantID, item.MenuItemID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("item %d: %w", item.MenuItemID, ErrMenuItemNotFound)
			}
			return nil, err
		}
		snapshot = append(snapshot, domain.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   item.Quantity,
			UnitPrice:  menuItem.Price,
		})
		subtotal += menuItem.Price * domain.Cents(item.Quantity)
	}
	split := domain.SplitSubtotal(subtotal, s.feeRatePercent)

	// Geocoding runs before the settlement transaction; a slow external
	// geocoder must never hold account row locks.
	estimatedAt, err := s.estimateDelivery(ctx, customer, restaurant)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:                  uuid.NewString(),
		CustomerID:          customerID,
		RestaurantID:        restaurantID,
		Items:               snapshot,
		Subtotal:            split.Subtotal,
		Fee:                 split.Fee,
		Total:               split.Total,
		Status:              domain.OrderStatusPending,
		CreatedAt:           time.Now(),
		EstimatedDeliveryAt: estimatedAt,
	}

	transfer := SettlementTransfer(order.ID, customer.AccountID, restaurant.AccountID, s.platformAccountID, split)
	if err := transfer.Validate(); err != nil {
		s.log.Error("settlement invariant violation",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return nil, ErrOrderFailed
	}

	if err := s.orders.CreateOrderSettled(ctx, order, transfer); err != nil {
		var insufficient *domain.InsufficientFundsError
		if errors.As(err, &insufficient) {
			return nil, insufficient
		}
		s.log.Error("order settlement failed",
			zap.String("order_id", order.ID),
			zap.Int("customer_id", customerID),
			zap.Error(err))
		return nil, ErrOrderFailed
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			_ = s.orders.SaveQRCode(ctx, order.ID, qr)
		}
	}

	s.publishOrderEvent(ctx, domain.EventOrderCreated, order)

	return order, nil
}

func (s *OrderService) estimateDelivery(ctx context.Context, customer *domain.User, restaurant *domain.Restaurant) (time.Time, error) {
	speed, err := restaurant.CourierType.SpeedKmh()
	if err != nil {
		return time.Time{}, err
	}

	distanceKm := placeholderDistanceKm
	if point, err := s.resolver.ResolveRestaurant(ctx, restaurant); err == nil {
		customerPoint := s.resolver.ResolveCustomer(ctx, &customer.Address)
		if d, err := geo.Distance(customerPoint, point); err == nil {
			distanceKm = d
		}
	}

	travel := time.Duration(distanceKm / speed * float64(time.Hour))
	return time.Now().Add(preparationTime + travel), nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// AdvanceStatus applies one state machine step. Authorization (does the
// acting restaurant own the order) and legality (is the transition in the
// table) are checked as two separate gates; the write itself is a
// compare-and-swap so concurrent dashboard double-clicks serialize.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID string, target domain.OrderStatus, actingRestaurantID int) (*domain.Order, error) {
	if !target.Valid() {
		return nil, ErrInvalidTransition
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.RestaurantID != actingRestaurantID {
		return nil, ErrNotOwner
	}
	if !order.Status.CanTransition(target) {
		return nil, ErrInvalidTransition
	}

	applied, err := s.orders.UpdateOrderStatus(ctx, orderID, order.Status, target)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent caller moved the order first.
		return nil, ErrInvalidTransition
	}

	order.Status = target
	s.publishOrderEvent(ctx, domain.EventOrderStatusChanged, order)

	return order, nil
}

func (s *OrderService) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	qr, err := s.orders.GetQRCode(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			_ = s.orders.SaveQRCode(ctx, orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) publishOrderEvent(ctx context.Context, eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		CustomerID:   order.CustomerID,
		Status:       order.Status,
		Total:        order.Total,
		Timestamp:    time.Now(),
	})
	if err != nil {
		s.log.Warn("order event publish failed",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}
