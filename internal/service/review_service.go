package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mealhub/internal/domain"
	"mealhub/internal/storage"
)

var (
	ErrInvalidRating     = errors.New("rating must be an integer between 1 and 5")
	ErrOrderNotDelivered = errors.New("order has not been delivered yet")
	ErrDuplicateReview   = errors.New("review already exists for this order")
)

type ReviewService struct {
	repository ReviewRepository
	orders     OrderRepository
	cache      ReviewCache
	publisher  EventPublisher
	log        *zap.Logger
}

func NewReviewService(repository ReviewRepository, orders OrderRepository, cache ReviewCache, publisher EventPublisher, log *zap.Logger) *ReviewService {
	return &ReviewService{
		repository: repository,
		orders:     orders,
		cache:      cache,
		publisher:  publisher,
		log:        log,
	}
}

// RecordReview creates the one review an order may carry and recomputes
// the restaurant's displayed rating from the full review set. The Redis
// marker is a fast duplicate check; the reviews unique constraint is the
// source of truth.
func (s *ReviewService) RecordReview(ctx context.Context, orderID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status != domain.OrderStatusDelivered {
		return nil, ErrOrderNotDelivered
	}

	markerKey := s.cache.ReviewMarkerKey(orderID)
	if exists, _ := s.cache.Exists(ctx, markerKey); exists {
		return nil, ErrDuplicateReview
	}

	review := &domain.Review{
		ID:           uuid.NewString(),
		OrderID:      orderID,
		RestaurantID: order.RestaurantID,
		Rating:       rating,
		Comment:      comment,
	}

	average, err := s.repository.InsertReviewAndRecompute(ctx, review)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	_ = s.cache.SetMarker(ctx, markerKey)

	if s.publisher != nil {
		err := s.publisher.PublishReviewEvent(ctx, domain.ReviewEvent{
			Type:         domain.EventReviewRecorded,
			ReviewID:     review.ID,
			OrderID:      orderID,
			RestaurantID: review.RestaurantID,
			Rating:       rating,
			NewAverage:   average,
			Timestamp:    time.Now(),
		})
		if err != nil {
			s.log.Warn("review event publish failed",
				zap.String("review_id", review.ID),
				zap.Error(err))
		}
	}

	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, restaurantID int) ([]domain.Review, error) {
	return s.repository.ListReviews(ctx, restaurantID)
}
