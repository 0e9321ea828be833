package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nutritioner/nutritioner/internal/clock"
	"github.com/nutritioner/nutritioner/internal/meal/domain"
	"github.com/nutritioner/nutritioner/internal/meal/repository"
	nutritiondomain "github.com/nutritioner/nutritioner/internal/providers/nutrition/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Mock objects
type mockEstimator struct {
	mock.Mock
}

func (m *mockEstimator) EstimateCalories(ctx context.Context, mealDescription string) (nutritiondomain.NutritionInfo, error) {
	args := m.Called(ctx, mealDescription)
	return args.Get(0).(nutritiondomain.NutritionInfo), args.Error(1)
}

type mockRecommender struct {
	mock.Mock
}

func (m *mockRecommender) Recommend(ctx context.Context, history domain.Week) ([]string, error) {
	args := m.Called(ctx, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Insert(ctx context.Context, db *gorm.DB, meal *domain.Meal) error {
	args := m.Called(ctx, db, meal)
	return args.Error(0)
}

func (m *mockRepository) FindForLastWeek(ctx context.Context, db *gorm.DB, userID string, today time.Time) ([]domain.Meal, error) {
	args := m.Called(ctx, db, userID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Meal), args.Error(1)
}

var today = time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc         domain.Service
	db          *gorm.DB
	estimator   *mockEstimator
	recommender *mockRecommender
}

func newFixture(t *testing.T, repo domain.Repository) fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Meal{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	estimator := &mockEstimator{}
	recommender := &mockRecommender{}

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clock.NewFakeClock(today),
		Repo:        repo,
		Estimator:   estimator,
		Recommender: recommender,
	})

	return fixture{svc: svc, db: db, estimator: estimator, recommender: recommender}
}

func (f fixture) mealCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&domain.Meal{}).Count(&count).Error)
	return count
}

func TestLogMeal_StoresExactFields(t *testing.T) {
	f := newFixture(t, repository.Provide())
	f.estimator.On("EstimateCalories", mock.Anything, "apple").Return(nutritiondomain.NutritionInfo{Calories: 95}, nil)

	resp, err := f.svc.LogMeal(context.Background(), domain.LogMealRequest{
		UserID:      "u1",
		Description: "apple",
	})
	require.NoError(t, err)
	assert.Equal(t, 95.0, resp.Calories)

	var stored []domain.Meal
	require.NoError(t, f.db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.NotZero(t, stored[0].ID)
	assert.Equal(t, "u1", stored[0].UserID)
	assert.Equal(t, "apple", stored[0].Description)
	assert.Equal(t, 95.0, stored[0].Calories)
	// no created_date supplied: attributed to the server's current date
	assert.True(t, stored[0].CreatedDate.Equal(today))
}

func TestLogMeal_HonorsCallerSuppliedDate(t *testing.T) {
	f := newFixture(t, repository.Provide())
	f.estimator.On("EstimateCalories", mock.Anything, "banana").Return(nutritiondomain.NutritionInfo{Calories: 105}, nil)

	suppliedDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.LogMeal(context.Background(), domain.LogMealRequest{
		UserID:      "u1",
		Description: "banana",
		CreatedDate: &suppliedDate,
	})
	require.NoError(t, err)

	var stored domain.Meal
	require.NoError(t, f.db.First(&stored).Error)
	assert.True(t, stored.CreatedDate.Equal(suppliedDate))
}

func TestLogMeal_MissingFields(t *testing.T) {
	repo := &mockRepository{}
	f := newFixture(t, repo)

	_, err := f.svc.LogMeal(context.Background(), domain.LogMealRequest{Description: "apple"})
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)

	_, err = f.svc.LogMeal(context.Background(), domain.LogMealRequest{UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrInvalidDescription)

	_, err = f.svc.LogMeal(context.Background(), domain.LogMealRequest{UserID: "u1", Description: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidDescription)

	// neither the provider nor the store is touched on a rejected request
	f.estimator.AssertNotCalled(t, "EstimateCalories", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogMeal_EstimationFailureStoresNothing(t *testing.T) {
	f := newFixture(t, repository.Provide())
	f.estimator.On("EstimateCalories", mock.Anything, "mystery stew").
		Return(nutritiondomain.NutritionInfo{}, errors.New("no nutrition data"))

	_, err := f.svc.LogMeal(context.Background(), domain.LogMealRequest{
		UserID:      "u1",
		Description: "mystery stew",
	})

	var estimationErr *domain.EstimationError
	require.ErrorAs(t, err, &estimationErr)
	assert.Contains(t, estimationErr.Detail, "no nutrition data")
	assert.Zero(t, f.mealCount(t))
	// single attempt, no retry
	f.estimator.AssertNumberOfCalls(t, "EstimateCalories", 1)
}

func TestLogMeal_StorageFailureSurfacesDatabaseError(t *testing.T) {
	f := newFixture(t, repository.Provide())
	f.estimator.On("EstimateCalories", mock.Anything, "apple").Return(nutritiondomain.NutritionInfo{Calories: 95}, nil)

	require.NoError(t, f.db.Migrator().DropTable(&domain.Meal{}))

	_, err := f.svc.LogMeal(context.Background(), domain.LogMealRequest{
		UserID:      "u1",
		Description: "apple",
	})

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)

	require.NoError(t, f.db.AutoMigrate(&domain.Meal{}))
	assert.Zero(t, f.mealCount(t))
}

func TestWeeklyStats_SingleMealToday(t *testing.T) {
	f := newFixture(t, repository.Provide())
	f.estimator.On("EstimateCalories", mock.Anything, "apple").Return(nutritiondomain.NutritionInfo{Calories: 95}, nil)
	f.recommender.On("Recommend", mock.Anything, mock.Anything).Return([]string{"eat more greens"}, nil)

	_, err := f.svc.LogMeal(context.Background(), domain.LogMealRequest{UserID: "u1", Description: "apple"})
	require.NoError(t, err)

	resp, err := f.svc.WeeklyStats(context.Background(), domain.WeeklyStatsRequest{UserID: "u1"})
	require.NoError(t, err)

	require.NotNil(t, resp.History[0])
	assert.Equal(t, 95.0, *resp.History[0])
	for offset := 1; offset < domain.HistoryDays; offset++ {
		assert.Nil(t, resp.History[offset], "slot %d should hold no data", offset)
	}
	assert.Equal(t, []string{"eat more greens"}, resp.Recommendations)
}

func TestWeeklyStats_SameDayMealsSum(t *testing.T) {
	f := newFixture(t, repository.Provide())
	f.estimator.On("EstimateCalories", mock.Anything, "apple").Return(nutritiondomain.NutritionInfo{Calories: 95}, nil)
	f.estimator.On("EstimateCalories", mock.Anything, "banana").Return(nutritiondomain.NutritionInfo{Calories: 105}, nil)
	f.recommender.On("Recommend", mock.Anything, mock.Anything).Return([]string{"ok"}, nil)

	ctx := context.Background()
	_, err := f.svc.LogMeal(ctx, domain.LogMealRequest{UserID: "u1", Description: "apple"})
	require.NoError(t, err)
	_, err = f.svc.LogMeal(ctx, domain.LogMealRequest{UserID: "u1", Description: "banana"})
	require.NoError(t, err)

	resp, err := f.svc.WeeklyStats(ctx, domain.WeeklyStatsRequest{UserID: "u1"})
	require.NoError(t, err)
	require.NotNil(t, resp.History[0])
	assert.Equal(t, 200.0, *resp.History[0])
}

func TestWeeklyStats_NoData(t *testing.T) {
	f := newFixture(t, repository.Provide())

	_, err := f.svc.WeeklyStats(context.Background(), domain.WeeklyStatsRequest{UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrNoData)

	// the recommendation provider is never consulted for an empty week
	f.recommender.AssertNotCalled(t, "Recommend", mock.Anything, mock.Anything)
}

func TestWeeklyStats_MissingUserID(t *testing.T) {
	repo := &mockRepository{}
	f := newFixture(t, repo)

	_, err := f.svc.WeeklyStats(context.Background(), domain.WeeklyStatsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
	repo.AssertNotCalled(t, "FindForLastWeek", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWeeklyStats_RecommendationFailure(t *testing.T) {
	f := newFixture(t, repository.Provide())
	f.estimator.On("EstimateCalories", mock.Anything, "apple").Return(nutritiondomain.NutritionInfo{Calories: 95}, nil)
	f.recommender.On("Recommend", mock.Anything, mock.Anything).Return(nil, errors.New("model offline"))

	ctx := context.Background()
	_, err := f.svc.LogMeal(ctx, domain.LogMealRequest{UserID: "u1", Description: "apple"})
	require.NoError(t, err)

	_, err = f.svc.WeeklyStats(ctx, domain.WeeklyStatsRequest{UserID: "u1"})
	var recommendationErr *domain.RecommendationError
	require.ErrorAs(t, err, &recommendationErr)
	assert.Contains(t, recommendationErr.Detail, "model offline")
	f.recommender.AssertNumberOfCalls(t, "Recommend", 1)
}

func TestWeeklyStats_StorageFailure(t *testing.T) {
	f := newFixture(t, repository.Provide())

	require.NoError(t, f.db.Migrator().DropTable(&domain.Meal{}))

	_, err := f.svc.WeeklyStats(context.Background(), domain.WeeklyStatsRequest{UserID: "u1"})
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	f.recommender.AssertNotCalled(t, "Recommend", mock.Anything, mock.Anything)
}

func TestParseCreatedDate(t *testing.T) {
	parsed, err := ParseCreatedDate("2024-03-15")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.True(t, parsed.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))

	parsed, err = ParseCreatedDate("2024-03-15T08:30:00Z")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.True(t, parsed.Equal(time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)))

	parsed, err = ParseCreatedDate("")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = ParseCreatedDate("yesterday")
	assert.ErrorIs(t, err, domain.ErrInvalidCreatedDate)
}
