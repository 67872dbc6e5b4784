package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mealhub/internal/domain"
	"mealhub/internal/geo"
	"mealhub/internal/geocode"
)

// ErrResolutionFailed means both geocoding attempts came up empty; the
// outcome is cached so the bad address does not re-hit the network.
var ErrResolutionFailed = errors.New("address could not be resolved")

// placeholderStreet anchors the population-weighted city+postal guess to
// a query shape the geocoder accepts.
const placeholderStreet = "Hauptstrasse 1"

type AddressResolver struct {
	geocoder    geocode.Client
	cache       CoordinateCache
	restaurants RestaurantRepository
	users       UserRepository
	fallback    geo.Point
	log         *zap.Logger
}

func NewAddressResolver(
	geocoder geocode.Client,
	cache CoordinateCache,
	restaurants RestaurantRepository,
	users UserRepository,
	fallback geo.Point,
	log *zap.Logger,
) *AddressResolver {
	return &AddressResolver{
		geocoder:    geocoder,
		cache:       cache,
		restaurants: restaurants,
		users:       users,
		fallback:    fallback,
		log:         log,
	}
}

// NormalizeAddress builds the cache key: city, street, house number and
// postal code, lower-cased and joined.
func NormalizeAddress(a domain.Address) string {
	return strings.ToLower(strings.Join([]string{
		strings.TrimSpace(a.City),
		strings.TrimSpace(a.Street),
		strings.TrimSpace(a.HouseNumber),
		strings.TrimSpace(a.PostalCode),
	}, "|"))
}

// Resolve checks the cache, then asks the geocoder with the full address,
// then retries once with the postal code dropped. Both the coordinates and
// a definitive failure get cached, so the second lookup of any address
// never touches the network.
func (r *AddressResolver) Resolve(ctx context.Context, address domain.Address) (geo.Point, error) {
	key := r.cache.CoordinateKey(NormalizeAddress(address))

	point, found, failed, err := r.cache.GetCoordinate(ctx, key)
	if err != nil {
		r.log.Warn("coordinate cache read failed", zap.Error(err))
	} else if found {
		if failed {
			return geo.Point{}, ErrResolutionFailed
		}
		return point, nil
	}

	fullQuery := fmt.Sprintf("%s %s, %s %s",
		address.Street, address.HouseNumber, address.PostalCode, address.City)
	if point, ok := r.search(ctx, fullQuery); ok {
		if err := r.cache.SetCoordinate(ctx, key, point); err != nil {
			r.log.Warn("coordinate cache write failed", zap.Error(err))
		}
		return point, nil
	}

	looseQuery := fmt.Sprintf("%s %s, %s", address.Street, address.HouseNumber, address.City)
	if point, ok := r.search(ctx, looseQuery); ok {
		if err := r.cache.SetCoordinate(ctx, key, point); err != nil {
			r.log.Warn("coordinate cache write failed", zap.Error(err))
		}
		return point, nil
	}

	if err := r.cache.SetResolutionFailed(ctx, key); err != nil {
		r.log.Warn("negative cache write failed", zap.Error(err))
	}
	return geo.Point{}, ErrResolutionFailed
}

func (r *AddressResolver) search(ctx context.Context, query string) (geo.Point, bool) {
	candidates, err := r.geocoder.Search(ctx, query)
	if err != nil {
		r.log.Warn("geocoder search failed", zap.String("query", query), zap.Error(err))
		return geo.Point{}, false
	}
	if len(candidates) == 0 {
		return geo.Point{}, false
	}
	// Candidates arrive ordered by confidence; take the first.
	return geo.Point{
		Latitude:  candidates[0].Latitude,
		Longitude: candidates[0].Longitude,
	}, true
}

// ResolveCustomer walks the fallback ladder: the explicit address, then
// the most common city+postal pair across registered users, then a fixed
// city coordinate. It always yields a usable point, so geocoder outages
// degrade discovery instead of breaking it.
func (r *AddressResolver) ResolveCustomer(ctx context.Context, address *domain.Address) geo.Point {
	if address != nil && !address.Empty() {
		if point, err := r.Resolve(ctx, *address); err == nil {
			return point
		}
	}

	city, postal, err := r.users.MostCommonCityPostal(ctx)
	if err == nil {
		guess := domain.Address{City: city, Street: placeholderStreet, PostalCode: postal}
		if point, err := r.Resolve(ctx, guess); err == nil {
			return point
		}
	}

	return r.fallback
}

// ResolveRestaurant prefers the coordinate stored on the restaurant row;
// once present it is authoritative and resolution is skipped even if the
// address changed. On a successful first resolution the coordinate is
// written back so future calls skip the resolver entirely.
func (r *AddressResolver) ResolveRestaurant(ctx context.Context, restaurant *domain.Restaurant) (geo.Point, error) {
	if restaurant.Latitude != nil && restaurant.Longitude != nil {
		return geo.Point{Latitude: *restaurant.Latitude, Longitude: *restaurant.Longitude}, nil
	}

	point, err := r.Resolve(ctx, restaurant.Address)
	if err != nil {
		return geo.Point{}, err
	}

	if err := r.restaurants.UpdateRestaurantCoordinates(ctx, restaurant.ID, point); err != nil {
		r.log.Warn("coordinate promotion failed",
			zap.Int("restaurant_id", restaurant.ID),
			zap.Error(err))
	} else {
		restaurant.Latitude = &point.Latitude
		restaurant.Longitude = &point.Longitude
	}
	return point, nil
}
