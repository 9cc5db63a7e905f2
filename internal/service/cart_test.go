package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

func TestAddToCartMergesSameVariant(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, repository.NewCartRepository(db), repository.NewProductRepository(db))
	product := seedProduct(t, db, "49.90", 100)

	quantities := []int{2, 3, 1}
	expected := 0

	var last *dto.CartItemResponse
	for _, q := range quantities {
		item, err := svc.AddItem(context.Background(), "user-1", &dto.AddToCartRequest{
			ProductID: product.ID,
			Quantity:  q,
			Size:      "M",
			Color:     "black",
		})
		require.NoError(t, err)
		expected += q
		last = item
	}

	assert.Equal(t, expected, last.Quantity)
	assert.Equal(t, product.Name, last.Name)
	assert.Equal(t, "https://cdn.example.com/air-runner.jpg", last.Image)

	var count int64
	require.NoError(t, db.Model(&model.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "repeated adds must merge into a single row")
}

func TestAddToCartDistinctVariantsStaySeparate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, repository.NewCartRepository(db), repository.NewProductRepository(db))
	product := seedProduct(t, db, "49.90", 100)

	_, err := svc.AddItem(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID, Quantity: 1, Size: "M", Color: "black",
	})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID, Quantity: 1, Size: "L", Color: "black",
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 2, count, "different sizes are independent line items")
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, repository.NewCartRepository(db), repository.NewProductRepository(db))

	_, err := svc.AddItem(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: "missing", Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, repository.NewCartRepository(db), repository.NewProductRepository(db))
	product := seedProduct(t, db, "49.90", 100)

	item, err := svc.AddItem(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID, Quantity: 2,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(context.Background(), "user-1", item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	// Another user cannot touch the item.
	_, err = svc.UpdateQuantity(context.Background(), "user-2", item.ID, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveAndClearCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, repository.NewCartRepository(db), repository.NewProductRepository(db))
	product := seedProduct(t, db, "49.90", 100)

	first, err := svc.AddItem(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID, Quantity: 1, Size: "M",
	})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID, Quantity: 1, Size: "L",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(context.Background(), "user-1", first.ID))

	items, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.Clear(context.Background(), "user-1"))

	items, err = svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetCartWithoutCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, repository.NewCartRepository(db), repository.NewProductRepository(db))

	items, err := svc.GetCart(context.Background(), "fresh-user")
	require.NoError(t, err)
	assert.Empty(t, items)
}
