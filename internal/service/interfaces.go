package service

import (
	"context"

	"mealhub/internal/domain"
	"mealhub/internal/geo"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, customerID, restaurantID int, items []ItemRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	AdvanceStatus(ctx context.Context, orderID string, target domain.OrderStatus, actingRestaurantID int) (*domain.Order, error)
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
}

type ReviewServiceInterface interface {
	RecordReview(ctx context.Context, orderID string, rating int, comment string) (*domain.Review, error)
	ListReviews(ctx context.Context, restaurantID int) ([]domain.Review, error)
}

type DiscoveryServiceInterface interface {
	ListWithDistance(ctx context.Context, customerAddress *domain.Address) ([]domain.RestaurantListing, error)
	TopRated(ctx context.Context, limit int) ([]domain.Restaurant, error)
}

type OrderRepository interface {
	CreateOrderSettled(ctx context.Context, order *domain.Order, transfer domain.Transfer) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error)
	SaveQRCode(ctx context.Context, orderID string, qr []byte) error
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
}

type LedgerRepository interface {
	Transfer(ctx context.Context, transfer domain.Transfer) error
}

type MenuRepository interface {
	GetMenuItem(ctx context.Context, restaurantID, itemID int) (*domain.MenuItem, error)
}

type RestaurantRepository interface {
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	UpdateRestaurantCoordinates(ctx context.Context, id int, point geo.Point) error
}

type UserRepository interface {
	GetUser(ctx context.Context, id int) (*domain.User, error)
	MostCommonCityPostal(ctx context.Context) (string, string, error)
}

type ReviewRepository interface {
	InsertReviewAndRecompute(ctx context.Context, review *domain.Review) (float64, error)
	ListReviews(ctx context.Context, restaurantID int) ([]domain.Review, error)
}

type CoordinateCache interface {
	CoordinateKey(normalized string) string
	GetCoordinate(ctx context.Context, key string) (geo.Point, bool, bool, error)
	SetCoordinate(ctx context.Context, key string, point geo.Point) error
	SetResolutionFailed(ctx context.Context, key string) error
}

type ReviewCache interface {
	ReviewMarkerKey(orderID string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
	PublishReviewEvent(ctx context.Context, event domain.ReviewEvent) error
}

// Resolver turns addresses into coordinates. ResolveCustomer never fails:
// it walks the fallback ladder down to a fixed city coordinate.
type Resolver interface {
	Resolve(ctx context.Context, address domain.Address) (geo.Point, error)
	ResolveCustomer(ctx context.Context, address *domain.Address) geo.Point
	ResolveRestaurant(ctx context.Context, restaurant *domain.Restaurant) (geo.Point, error)
}

type AnalyticsStore interface {
	UpdateTopRated(ctx context.Context, restaurantID int, rating float64) error
	IncrementDailyOrders(ctx context.Context, restaurantID int, day string) error
	TopRated(ctx context.Context, limit int) ([]int, error)
}

var (
	_ OrderServiceInterface     = (*OrderService)(nil)
	_ ReviewServiceInterface    = (*ReviewService)(nil)
	_ DiscoveryServiceInterface = (*DiscoveryService)(nil)
	_ Resolver                  = (*AddressResolver)(nil)
)
