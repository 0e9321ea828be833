package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nutritioner/nutritioner/internal/clock"
	"github.com/nutritioner/nutritioner/internal/meal/domain"
	nutritiondomain "github.com/nutritioner/nutritioner/internal/providers/nutrition/domain"
	"github.com/nutritioner/nutritioner/pkg/log"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	Estimator   nutritiondomain.Estimator
	Recommender nutritiondomain.Recommender
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	estimator   nutritiondomain.Estimator
	recommender nutritiondomain.Recommender
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("meal.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		estimator:   p.Estimator,
		recommender: p.Recommender,
	}
}

// LogMeal validates the request, asks the estimation provider for a calorie
// count, and persists one meal row. Each external call is a single attempt;
// an estimation failure stores nothing.
func (s *Service) LogMeal(ctx context.Context, req domain.LogMealRequest) (domain.LogMealResponse, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return domain.LogMealResponse{}, domain.ErrInvalidUserID
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.LogMealResponse{}, domain.ErrInvalidDescription
	}

	createdDate := s.clock.Now()
	if req.CreatedDate != nil {
		createdDate = req.CreatedDate.UTC()
	}

	info, err := s.estimator.EstimateCalories(ctx, description)
	if err != nil {
		log.L(ctx).Warn("estimation provider rejected meal description",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return domain.LogMealResponse{}, &domain.EstimationError{Detail: err.Error()}
	}

	now := s.clock.Now()
	meal := domain.Meal{
		ID:          s.genID.Generate(),
		UserID:      userID,
		Description: description,
		Calories:    info.Calories,
		CreatedDate: createdDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &meal); err != nil {
		var storageErr *domain.StorageError
		if errors.As(err, &storageErr) {
			log.L(ctx).Error("meal insert rolled back",
				zap.String("user_id", userID),
				zap.String("detail", storageErr.Detail),
			)
		}
		return domain.LogMealResponse{}, err
	}

	return domain.LogMealResponse{Calories: info.Calories}, nil
}

// WeeklyStats fetches the user's trailing week of meals, folds them into the
// seven-slot history, and asks the recommendation provider for suggestions.
func (s *Service) WeeklyStats(ctx context.Context, req domain.WeeklyStatsRequest) (domain.WeeklyStatsResponse, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return domain.WeeklyStatsResponse{}, domain.ErrInvalidUserID
	}

	today := s.clock.Now()
	meals, err := s.repo.FindForLastWeek(ctx, s.db, userID, today)
	if err != nil {
		var storageErr *domain.StorageError
		if errors.As(err, &storageErr) {
			log.L(ctx).Error("weekly meal query failed",
				zap.String("user_id", userID),
				zap.String("detail", storageErr.Detail),
			)
		}
		return domain.WeeklyStatsResponse{}, err
	}

	if len(meals) == 0 {
		return domain.WeeklyStatsResponse{}, domain.ErrNoData
	}

	history := domain.BuildWeek(today, meals)

	recommendations, err := s.recommender.Recommend(ctx, history)
	if err != nil {
		log.L(ctx).Error("recommendation provider failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return domain.WeeklyStatsResponse{}, &domain.RecommendationError{Detail: err.Error()}
	}

	return domain.WeeklyStatsResponse{
		History:         history,
		Recommendations: recommendations,
	}, nil
}

// ParseCreatedDate interprets a caller-supplied created_date. Day-granularity
// values and full timestamps are both accepted, matching what callers of the
// original API sent.
func ParseCreatedDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.ErrInvalidCreatedDate
}
