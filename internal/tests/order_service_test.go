package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"mealhub/internal/domain"
	"mealhub/internal/geo"
	"mealhub/internal/mocks"
	"mealhub/internal/service"
	"mealhub/internal/storage"
)

func newOrderService(t *testing.T) (*service.OrderService, *mocks.OrderRepository, *mocks.MenuRepository, *mocks.RestaurantRepository, *mocks.UserRepository, *mocks.Resolver, *mocks.EventPublisher, *mocks.QRGenerator) {
	orders := mocks.NewOrderRepository(t)
	menu := mocks.NewMenuRepository(t)
	restaurants := mocks.NewRestaurantRepository(t)
	users := mocks.NewUserRepository(t)
	resolver := mocks.NewResolver(t)
	publisher := mocks.NewEventPublisher(t)
	qr := mocks.NewQRGenerator(t)

	svc := service.NewOrderService(orders, menu, restaurants, users, resolver, publisher, qr, 15, 1, zap.NewNop())
	return svc, orders, menu, restaurants, users, resolver, publisher, qr
}

func TestOrderService_CreateOrder_SettlementSplit(t *testing.T) {
	svc, orders, menu, restaurants, users, resolver, publisher, qr := newOrderService(t)
	ctx := context.Background()

	customer := &domain.User{ID: 5, AccountID: 7, Address: domain.Address{City: "Berlin", Street: "Torstrasse", HouseNumber: "12", PostalCode: "10119"}}
	restaurant := &domain.Restaurant{ID: 10, AccountID: 9, CourierType: domain.CourierBicycle}

	users.On("GetUser", ctx, 5).Return(customer, nil).Once()
	restaurants.On("GetRestaurant", ctx, 10).Return(restaurant, nil).Once()
	menu.On("GetMenuItem", ctx, 10, 3).Return(&domain.MenuItem{ID: 3, RestaurantID: 10, Name: "Ramen", Price: 925}, nil).Once()

	resolver.On("ResolveRestaurant", ctx, restaurant).
		Return(geo.Point{Latitude: 52.53, Longitude: 13.40}, nil).Once()
	resolver.On("ResolveCustomer", ctx, &customer.Address).
		Return(geo.Point{Latitude: 52.52, Longitude: 13.41}).Once()

	var settled domain.Transfer
	orders.On("CreateOrderSettled", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			settled = args.Get(2).(domain.Transfer)
		}).
		Return(nil).Once()
	qr.On("Generate", mock.Anything).Return([]byte{0x89, 0x50}, nil).Once()
	orders.On("SaveQRCode", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

	order, err := svc.CreateOrder(ctx, 5, 10, []service.ItemRequest{{MenuItemID: 3, Quantity: 2}})

	assert.NoError(t, err)
	assert.Equal(t, domain.Cents(1850), order.Subtotal)
	assert.Equal(t, domain.Cents(278), order.Fee)
	assert.Equal(t, domain.Cents(2128), order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.False(t, order.EstimatedDeliveryAt.IsZero())

	// Customer debit equals restaurant credit plus platform fee, to the cent.
	assert.Equal(t, []domain.TransferLeg{{AccountID: 7, Amount: 2128}}, settled.Debits)
	assert.Equal(t, []domain.TransferLeg{
		{AccountID: 9, Amount: 1850},
		{AccountID: 1, Amount: 278},
	}, settled.Credits)
	assert.NoError(t, settled.Validate())
}

func TestOrderService_CreateOrder_InsufficientFunds(t *testing.T) {
	svc, orders, menu, restaurants, users, resolver, _, _ := newOrderService(t)
	ctx := context.Background()

	customer := &domain.User{ID: 5, AccountID: 7}
	restaurant := &domain.Restaurant{ID: 10, AccountID: 9, CourierType: domain.CourierCar}

	users.On("GetUser", ctx, 5).Return(customer, nil).Once()
	restaurants.On("GetRestaurant", ctx, 10).Return(restaurant, nil).Once()
	menu.On("GetMenuItem", ctx, 10, 3).Return(&domain.MenuItem{ID: 3, Price: 925}, nil).Once()
	resolver.On("ResolveRestaurant", ctx, restaurant).
		Return(geo.Point{}, service.ErrResolutionFailed).Once()
	orders.On("CreateOrderSettled", ctx, mock.Anything, mock.Anything).
		Return(&domain.InsufficientFundsError{AccountID: 7, Shortfall: 500}).Once()

	_, err := svc.CreateOrder(ctx, 5, 10, []service.ItemRequest{{MenuItemID: 3, Quantity: 2}})

	var insufficient *domain.InsufficientFundsError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, domain.Cents(500), insufficient.Shortfall)
	assert.Equal(t, 7, insufficient.AccountID)
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("empty_items", func(t *testing.T) {
		svc, _, _, _, _, _, _, _ := newOrderService(t)
		_, err := svc.CreateOrder(ctx, 5, 10, nil)
		assert.ErrorIs(t, err, service.ErrEmptyOrder)
	})

	t.Run("zero_quantity", func(t *testing.T) {
		svc, _, _, restaurants, users, _, _, _ := newOrderService(t)
		users.On("GetUser", ctx, 5).Return(&domain.User{ID: 5, AccountID: 7}, nil).Once()
		restaurants.On("GetRestaurant", ctx, 10).Return(&domain.Restaurant{ID: 10, AccountID: 9}, nil).Once()
		_, err := svc.CreateOrder(ctx, 5, 10, []service.ItemRequest{{MenuItemID: 3, Quantity: 0}})
		assert.ErrorIs(t, err, service.ErrEmptyOrder)
	})

	t.Run("unknown_customer", func(t *testing.T) {
		svc, _, _, _, users, _, _, _ := newOrderService(t)
		users.On("GetUser", ctx, 99).Return(nil, storage.ErrNotFound).Once()
		_, err := svc.CreateOrder(ctx, 99, 10, []service.ItemRequest{{MenuItemID: 3, Quantity: 1}})
		assert.ErrorIs(t, err, service.ErrCustomerNotFound)
	})

	t.Run("item_from_another_restaurant", func(t *testing.T) {
		svc, _, menu, restaurants, users, _, _, _ := newOrderService(t)
		users.On("GetUser", ctx, 5).Return(&domain.User{ID: 5, AccountID: 7}, nil).Once()
		restaurants.On("GetRestaurant", ctx, 10).Return(&domain.Restaurant{ID: 10, AccountID: 9}, nil).Once()
		menu.On("GetMenuItem", ctx, 10, 77).Return(nil, storage.ErrNotFound).Once()
		_, err := svc.CreateOrder(ctx, 5, 10, []service.ItemRequest{{MenuItemID: 77, Quantity: 1}})
		assert.ErrorIs(t, err, service.ErrMenuItemNotFound)
	})
}

func TestOrderService_CreateOrder_UnknownCourierFailsClosed(t *testing.T) {
	svc, _, menu, restaurants, users, _, _, _ := newOrderService(t)
	ctx := context.Background()

	users.On("GetUser", ctx, 5).Return(&domain.User{ID: 5, AccountID: 7}, nil).Once()
	restaurants.On("GetRestaurant", ctx, 10).
		Return(&domain.Restaurant{ID: 10, AccountID: 9, CourierType: "DRONE"}, nil).Once()
	menu.On("GetMenuItem", ctx, 10, 3).Return(&domain.MenuItem{ID: 3, Price: 925}, nil).Once()

	_, err := svc.CreateOrder(ctx, 5, 10, []service.ItemRequest{{MenuItemID: 3, Quantity: 1}})
	assert.Error(t, err)
}

func TestOrderService_AdvanceStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("legal_transition", func(t *testing.T) {
		svc, orders, _, _, _, _, publisher, _ := newOrderService(t)
		orders.On("GetOrder", ctx, "o-1").
			Return(&domain.Order{ID: "o-1", RestaurantID: 10, Status: domain.OrderStatusReady}, nil).Once()
		orders.On("UpdateOrderStatus", ctx, "o-1", domain.OrderStatusReady, domain.OrderStatusOutForDelivery).
			Return(true, nil).Once()
		publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

		order, err := svc.AdvanceStatus(ctx, "o-1", domain.OrderStatusOutForDelivery, 10)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusOutForDelivery, order.Status)
	})

	t.Run("terminal_state_rejects_everything", func(t *testing.T) {
		svc, orders, _, _, _, _, _, _ := newOrderService(t)
		orders.On("GetOrder", ctx, "o-2").
			Return(&domain.Order{ID: "o-2", RestaurantID: 10, Status: domain.OrderStatusDelivered}, nil).Once()

		_, err := svc.AdvanceStatus(ctx, "o-2", domain.OrderStatusPending, 10)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("skipping_a_step_rejected", func(t *testing.T) {
		svc, orders, _, _, _, _, _, _ := newOrderService(t)
		orders.On("GetOrder", ctx, "o-3").
			Return(&domain.Order{ID: "o-3", RestaurantID: 10, Status: domain.OrderStatusPending}, nil).Once()

		_, err := svc.AdvanceStatus(ctx, "o-3", domain.OrderStatusPreparing, 10)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("wrong_restaurant", func(t *testing.T) {
		svc, orders, _, _, _, _, _, _ := newOrderService(t)
		orders.On("GetOrder", ctx, "o-4").
			Return(&domain.Order{ID: "o-4", RestaurantID: 10, Status: domain.OrderStatusPending}, nil).Once()

		_, err := svc.AdvanceStatus(ctx, "o-4", domain.OrderStatusConfirmed, 11)
		assert.ErrorIs(t, err, service.ErrNotOwner)
	})

	t.Run("lost_compare_and_swap", func(t *testing.T) {
		svc, orders, _, _, _, _, _, _ := newOrderService(t)
		orders.On("GetOrder", ctx, "o-5").
			Return(&domain.Order{ID: "o-5", RestaurantID: 10, Status: domain.OrderStatusPending}, nil).Once()
		orders.On("UpdateOrderStatus", ctx, "o-5", domain.OrderStatusPending, domain.OrderStatusConfirmed).
			Return(false, nil).Once()

		_, err := svc.AdvanceStatus(ctx, "o-5", domain.OrderStatusConfirmed, 10)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("unknown_status_string", func(t *testing.T) {
		svc, _, _, _, _, _, _, _ := newOrderService(t)
		_, err := svc.AdvanceStatus(ctx, "o-6", domain.OrderStatus("SHIPPED"), 10)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}

func TestOrderService_GetQRCode_Regenerates(t *testing.T) {
	svc, orders, _, _, _, _, _, qr := newOrderService(t)
	ctx := context.Background()

	orders.On("GetQRCode", ctx, "o-1").Return([]byte{}, nil).Once()
	qr.On("Generate", "o-1").Return([]byte{0x89}, nil).Once()
	orders.On("SaveQRCode", ctx, "o-1", []byte{0x89}).Return(nil).Once()

	code, err := svc.GetQRCode(ctx, "o-1")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x89}, code)
}
