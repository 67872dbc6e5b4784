package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"mealhub/internal/domain"
	"mealhub/internal/geo"
	"mealhub/internal/geocode"
	"mealhub/internal/mocks"
	"mealhub/internal/service"
)

var berlin = geo.Point{Latitude: 52.52, Longitude: 13.405}

func newResolver(t *testing.T) (*service.AddressResolver, *mocks.GeocodeClient, *mocks.CoordinateCache, *mocks.RestaurantRepository, *mocks.UserRepository) {
	geocoder := mocks.NewGeocodeClient(t)
	cache := mocks.NewCoordinateCache(t)
	restaurants := mocks.NewRestaurantRepository(t)
	users := mocks.NewUserRepository(t)
	resolver := service.NewAddressResolver(geocoder, cache, restaurants, users, berlin, zap.NewNop())
	return resolver, geocoder, cache, restaurants, users
}

func TestNormalizeAddress(t *testing.T) {
	a := domain.Address{City: " Berlin ", Street: "Torstrasse", HouseNumber: "12", PostalCode: "10119"}
	b := domain.Address{City: "berlin", Street: "TORSTRASSE", HouseNumber: "12", PostalCode: "10119"}
	assert.Equal(t, service.NormalizeAddress(a), service.NormalizeAddress(b))
	assert.Equal(t, "berlin|torstrasse|12|10119", service.NormalizeAddress(a))
}

func TestAddressResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	address := domain.Address{City: "Berlin", Street: "Torstrasse", HouseNumber: "12", PostalCode: "10119"}
	key := "geo:addr:berlin|torstrasse|12|10119"

	t.Run("cache_hit_skips_geocoder", func(t *testing.T) {
		resolver, _, cache, _, _ := newResolver(t)
		cache.On("CoordinateKey", "berlin|torstrasse|12|10119").Return(key).Once()
		cache.On("GetCoordinate", ctx, key).Return(berlin, true, false, nil).Once()

		point, err := resolver.Resolve(ctx, address)
		assert.NoError(t, err)
		assert.Equal(t, berlin, point)
	})

	t.Run("negative_cache_hit", func(t *testing.T) {
		resolver, _, cache, _, _ := newResolver(t)
		cache.On("CoordinateKey", mock.Anything).Return(key).Once()
		cache.On("GetCoordinate", ctx, key).Return(geo.Point{}, true, true, nil).Once()

		_, err := resolver.Resolve(ctx, address)
		assert.ErrorIs(t, err, service.ErrResolutionFailed)
	})

	t.Run("full_query_succeeds_and_caches", func(t *testing.T) {
		resolver, geocoder, cache, _, _ := newResolver(t)
		cache.On("CoordinateKey", mock.Anything).Return(key).Once()
		cache.On("GetCoordinate", ctx, key).Return(geo.Point{}, false, false, nil).Once()
		geocoder.On("Search", ctx, "Torstrasse 12, 10119 Berlin").
			Return([]geocode.Candidate{{Latitude: 52.53, Longitude: 13.40}, {Latitude: 1, Longitude: 1}}, nil).Once()
		cache.On("SetCoordinate", ctx, key, geo.Point{Latitude: 52.53, Longitude: 13.40}).Return(nil).Once()

		point, err := resolver.Resolve(ctx, address)
		assert.NoError(t, err)
		assert.Equal(t, geo.Point{Latitude: 52.53, Longitude: 13.40}, point)
	})

	t.Run("retries_without_postal_code", func(t *testing.T) {
		resolver, geocoder, cache, _, _ := newResolver(t)
		cache.On("CoordinateKey", mock.Anything).Return(key).Once()
		cache.On("GetCoordinate", ctx, key).Return(geo.Point{}, false, false, nil).Once()
		geocoder.On("Search", ctx, "Torstrasse 12, 10119 Berlin").Return(nil, nil).Once()
		geocoder.On("Search", ctx, "Torstrasse 12, Berlin").
			Return([]geocode.Candidate{{Latitude: 52.53, Longitude: 13.40}}, nil).Once()
		cache.On("SetCoordinate", ctx, key, mock.Anything).Return(nil).Once()

		point, err := resolver.Resolve(ctx, address)
		assert.NoError(t, err)
		assert.Equal(t, 52.53, point.Latitude)
	})

	t.Run("both_queries_fail_writes_negative_entry", func(t *testing.T) {
		resolver, geocoder, cache, _, _ := newResolver(t)
		cache.On("CoordinateKey", mock.Anything).Return(key).Once()
		cache.On("GetCoordinate", ctx, key).Return(geo.Point{}, false, false, nil).Once()
		geocoder.On("Search", ctx, mock.Anything).Return(nil, errors.New("503")).Twice()
		cache.On("SetResolutionFailed", ctx, key).Return(nil).Once()

		_, err := resolver.Resolve(ctx, address)
		assert.ErrorIs(t, err, service.ErrResolutionFailed)
	})
}

func TestAddressResolver_ResolveCustomer_FallbackLadder(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit_address_wins", func(t *testing.T) {
		resolver, _, cache, _, _ := newResolver(t)
		address := domain.Address{City: "Berlin", Street: "Torstrasse", HouseNumber: "12", PostalCode: "10119"}
		cache.On("CoordinateKey", mock.Anything).Return("k").Once()
		cache.On("GetCoordinate", ctx, "k").Return(geo.Point{Latitude: 52.53, Longitude: 13.40}, true, false, nil).Once()

		point := resolver.ResolveCustomer(ctx, &address)
		assert.Equal(t, 52.53, point.Latitude)
	})

	t.Run("missing_address_uses_most_common_city", func(t *testing.T) {
		resolver, _, cache, _, users := newResolver(t)
		users.On("MostCommonCityPostal", ctx).Return("Hamburg", "20095", nil).Once()
		cache.On("CoordinateKey", "hamburg|hauptstrasse 1||20095").Return("k2").Once()
		cache.On("GetCoordinate", ctx, "k2").Return(geo.Point{Latitude: 53.55, Longitude: 10.0}, true, false, nil).Once()

		point := resolver.ResolveCustomer(ctx, nil)
		assert.Equal(t, 53.55, point.Latitude)
	})

	t.Run("everything_fails_yields_fixed_point", func(t *testing.T) {
		resolver, geocoder, cache, _, users := newResolver(t)
		users.On("MostCommonCityPostal", ctx).Return("", "", errors.New("no users")).Once()
		_ = geocoder
		_ = cache

		point := resolver.ResolveCustomer(ctx, nil)
		assert.Equal(t, berlin, point)
	})
}

func TestAddressResolver_ResolveRestaurant(t *testing.T) {
	ctx := context.Background()

	t.Run("stored_coordinates_are_authoritative", func(t *testing.T) {
		resolver, _, _, _, _ := newResolver(t)
		lat, lon := 52.53, 13.40
		restaurant := &domain.Restaurant{ID: 10, Latitude: &lat, Longitude: &lon,
			Address: domain.Address{City: "Berlin", Street: "Old Street", HouseNumber: "1"}}

		point, err := resolver.ResolveRestaurant(ctx, restaurant)
		assert.NoError(t, err)
		assert.Equal(t, geo.Point{Latitude: lat, Longitude: lon}, point)
	})

	t.Run("first_resolution_promotes_coordinate", func(t *testing.T) {
		resolver, _, cache, restaurants, _ := newResolver(t)
		restaurant := &domain.Restaurant{ID: 10,
			Address: domain.Address{City: "Berlin", Street: "Torstrasse", HouseNumber: "12", PostalCode: "10119"}}

		cache.On("CoordinateKey", mock.Anything).Return("k").Once()
		cache.On("GetCoordinate", ctx, "k").Return(geo.Point{Latitude: 52.53, Longitude: 13.40}, true, false, nil).Once()
		restaurants.On("UpdateRestaurantCoordinates", ctx, 10, geo.Point{Latitude: 52.53, Longitude: 13.40}).Return(nil).Once()

		point, err := resolver.ResolveRestaurant(ctx, restaurant)
		assert.NoError(t, err)
		assert.Equal(t, 52.53, point.Latitude)
		// The in-memory row now carries the coordinate too.
		assert.NotNil(t, restaurant.Latitude)
		assert.Equal(t, 52.53, *restaurant.Latitude)
	})
}
