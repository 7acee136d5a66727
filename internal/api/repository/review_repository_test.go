package repository

import (
	"context"
	"testing"

	"bizdir/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func businessStats(t *testing.T, db *gorm.DB, id int64) (float64, int64) {
	t.Helper()
	var b models.Business
	require.NoError(t, db.First(&b, id).Error)
	return b.Rating, b.TotalReviews
}

func TestCreateWithRecalc_UpdatesDerivedStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	reviewer := createTestUser(t, db, "reviewer@example.com")
	biz := createTestBusiness(t, db, models.Business{Name: "Cafe Roma", Category: "Cafe"})

	err := repo.CreateWithRecalc(context.Background(), &models.Review{
		BusinessID: biz.ID, UserID: reviewer.ID, Rating: 4, Text: "good espresso here",
	})
	require.NoError(t, err)

	rating, total := businessStats(t, db, biz.ID)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, int64(1), total)

	err = repo.CreateWithRecalc(context.Background(), &models.Review{
		BusinessID: biz.ID, UserID: reviewer.ID, Rating: 5, Text: "even better today",
	})
	require.NoError(t, err)

	rating, total = businessStats(t, db, biz.ID)
	assert.Equal(t, 4.5, rating)
	assert.Equal(t, int64(2), total)
}

func TestCreateWithRecalc_RoundsToOneDecimal(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	reviewer := createTestUser(t, db, "reviewer@example.com")
	biz := createTestBusiness(t, db, models.Business{Name: "Cafe Roma", Category: "Cafe"})

	for _, r := range []int{5, 4, 4} { // avg 4.333...
		err := repo.CreateWithRecalc(context.Background(), &models.Review{
			BusinessID: biz.ID, UserID: reviewer.ID, Rating: r, Text: "some review text",
		})
		require.NoError(t, err)
	}

	rating, _ := businessStats(t, db, biz.ID)
	assert.Equal(t, 4.3, rating)
}

func TestCreateWithRecalc_OwnerRejectedWithoutMutation(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	reviewer := createTestUser(t, db, "reviewer@example.com")
	biz := createTestBusiness(t, db, models.Business{Name: "Cafe Roma", Category: "Cafe", OwnerID: &owner.ID})

	err := repo.CreateWithRecalc(context.Background(), &models.Review{
		BusinessID: biz.ID, UserID: reviewer.ID, Rating: 4, Text: "honest outside review",
	})
	require.NoError(t, err)

	err = repo.CreateWithRecalc(context.Background(), &models.Review{
		BusinessID: biz.ID, UserID: owner.ID, Rating: 5, Text: "my place is the best",
	})
	assert.ErrorIs(t, err, ErrOwnerReview)

	// the rejected write must leave no trace
	var count int64
	require.NoError(t, db.Model(&models.Review{}).Where("business_id = ?", biz.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	rating, total := businessStats(t, db, biz.ID)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, int64(1), total)
}

func TestCreateWithRecalc_MissingBusiness(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	reviewer := createTestUser(t, db, "reviewer@example.com")

	err := repo.CreateWithRecalc(context.Background(), &models.Review{
		BusinessID: 12345, UserID: reviewer.ID, Rating: 4, Text: "review for nothing",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetByBusiness_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	reviewer := createTestUser(t, db, "reviewer@example.com")
	biz := createTestBusiness(t, db, models.Business{Name: "Cafe Roma", Category: "Cafe"})

	for i := 1; i <= 5; i++ {
		err := repo.CreateWithRecalc(context.Background(), &models.Review{
			BusinessID: biz.ID, UserID: reviewer.ID, Rating: i, Text: "review number text",
		})
		require.NoError(t, err)
	}

	page1, total, err := repo.GetByBusiness(context.Background(), biz.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	// same timestamps fall back to id DESC, so the latest insert leads
	assert.Equal(t, 5, page1[0].Rating)
	assert.Equal(t, 4, page1[1].Rating)

	page3, _, err := repo.GetByBusiness(context.Background(), biz.ID, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, 1, page3[0].Rating)
}

func TestAverageAndCount_ZeroWithoutReviews(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	biz := createTestBusiness(t, db, models.Business{Name: "Cafe Roma", Category: "Cafe"})

	avg, count, err := repo.AverageAndCount(context.Background(), biz.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, int64(0), count)
}

func TestDeleteOwnerReviews_ResetsRatingWhenLastReviewGoes(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	owner := createTestUser(t, db, "owner@example.com")
	reviewer := createTestUser(t, db, "reviewer@example.com")

	// tainted: only an owner review; mixed: owner + outside review
	tainted := createTestBusiness(t, db, models.Business{Name: "Tainted", Category: "Cafe", OwnerID: &owner.ID})
	mixed := createTestBusiness(t, db, models.Business{Name: "Mixed", Category: "Cafe", OwnerID: &owner.ID})
	clean := createTestBusiness(t, db, models.Business{Name: "Clean", Category: "Cafe"})

	// owner reviews inserted directly, bypassing the insert-time guard
	reviews := []models.Review{
		{BusinessID: tainted.ID, UserID: owner.ID, Rating: 5, Text: "self praise"},
		{BusinessID: mixed.ID, UserID: owner.ID, Rating: 5, Text: "self praise"},
		{BusinessID: mixed.ID, UserID: reviewer.ID, Rating: 3, Text: "honest review"},
		{BusinessID: clean.ID, UserID: reviewer.ID, Rating: 4, Text: "honest review"},
	}
	require.NoError(t, db.Create(&reviews).Error)
	for _, id := range []int64{tainted.ID, mixed.ID, clean.ID} {
		require.NoError(t, repo.RecalcBusinessRating(context.Background(), id))
	}

	count, err := repo.CountOwnerReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	deleted, err := repo.DeleteOwnerReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// tainted business loses its only review: explicit reset to zero
	rating, total := businessStats(t, db, tainted.ID)
	assert.Equal(t, 0.0, rating)
	assert.Equal(t, int64(0), total)

	// mixed business keeps the outside review only
	rating, total = businessStats(t, db, mixed.ID)
	assert.Equal(t, 3.0, rating)
	assert.Equal(t, int64(1), total)

	// untouched business retains its stats
	rating, total = businessStats(t, db, clean.ID)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, int64(1), total)

	count, err = repo.CountOwnerReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDeleteOwnerReviews_NoOffenders(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)

	deleted, err := repo.DeleteOwnerReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}
