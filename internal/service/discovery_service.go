package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"mealhub/internal/domain"
	"mealhub/internal/geo"
)

// DiscoveryService annotates restaurant listings with the distance from
// the customer. Geocoding failures degrade single entries, never the list.
type DiscoveryService struct {
	restaurants RestaurantRepository
	resolver    Resolver
	analytics   AnalyticsStore
	log         *zap.Logger
}

func NewDiscoveryService(restaurants RestaurantRepository, resolver Resolver, analytics AnalyticsStore, log *zap.Logger) *DiscoveryService {
	return &DiscoveryService{
		restaurants: restaurants,
		resolver:    resolver,
		analytics:   analytics,
		log:         log,
	}
}

// ListWithDistance resolves the customer once, then each restaurant:
// stored coordinates win, fresh resolutions are promoted onto the
// restaurant row, and unresolvable restaurants keep a nil distance and
// sort last. The sort is stable either way.
func (s *DiscoveryService) ListWithDistance(ctx context.Context, customerAddress *domain.Address) ([]domain.RestaurantListing, error) {
	restaurants, err := s.restaurants.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	customer := s.resolver.ResolveCustomer(ctx, customerAddress)

	listings := make([]domain.RestaurantListing, 0, len(restaurants))
	for i := range restaurants {
		var listing domain.RestaurantListing

		point, err := s.resolver.ResolveRestaurant(ctx, &restaurants[i])
		if err == nil {
			if distance, err := geo.Distance(customer, point); err == nil {
				listing.DistanceKm = &distance
			} else {
				s.log.Warn("distance computation failed",
					zap.Int("restaurant_id", restaurants[i].ID),
					zap.Error(err))
			}
		}
		// ResolveRestaurant may have promoted a fresh coordinate onto the
		// row, so the listing snapshot is taken after resolution.
		listing.Restaurant = restaurants[i]

		listings = append(listings, listing)
	}

	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i].DistanceKm, listings[j].DistanceKm
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	return listings, nil
}

// TopRated reads the aggregator-maintained leaderboard and hydrates the
// restaurant rows, best rating first.
func (s *DiscoveryService) TopRated(ctx context.Context, limit int) ([]domain.Restaurant, error) {
	ids, err := s.analytics.TopRated(ctx, limit)
	if err != nil {
		return nil, err
	}

	restaurants := make([]domain.Restaurant, 0, len(ids))
	for _, id := range ids {
		restaurant, err := s.restaurants.GetRestaurant(ctx, id)
		if err != nil {
			s.log.Warn("top-rated restaurant missing", zap.Int("restaurant_id", id), zap.Error(err))
			continue
		}
		restaurants = append(restaurants, *restaurant)
	}
	return restaurants, nil
}
