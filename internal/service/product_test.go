package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	products := []model.Product{
		{Name: "Air Runner", Brand: "Peak", Category: "shoes", Price: decimal.RequireFromString("120.00"), Sizes: model.StringList{"41", "42"}, Colors: model.StringList{"black"}},
		{Name: "Trail Max", Brand: "Peak", Category: "shoes", Price: decimal.RequireFromString("90.00"), Sizes: model.StringList{"42", "43"}, Colors: model.StringList{"red"}},
		{Name: "City Tee", Brand: "Loom", Category: "shirts", Price: decimal.RequireFromString("25.00"), Sizes: model.StringList{"M", "L"}, Colors: model.StringList{"white"}},
		{Name: "Coast Hoodie", Brand: "Loom", Category: "hoodies", Price: decimal.RequireFromString("60.00"), Sizes: model.StringList{"L"}, Colors: model.StringList{"black", "grey"}},
	}
	for i := range products {
		products[i].ID = uuid.NewString()
		products[i].Stock = 10
		require.NoError(t, db.Create(&products[i]).Error)
	}
}

func TestListFilteredByCategoryAndBrand(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db), nil)
	seedCatalog(t, db)

	resp, err := svc.ListFiltered(context.Background(), dto.ProductFilter{
		Categories: []string{"Shoes"}, // case-insensitive
		Brands:     []string{"peak"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.TotalProducts)
	assert.Len(t, resp.Products, 2)
}

func TestListFilteredBySizeAndColor(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db), nil)
	seedCatalog(t, db)

	resp, err := svc.ListFiltered(context.Background(), dto.ProductFilter{
		Sizes: []string{"42"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.TotalProducts, "both shoes carry size 42")

	resp, err = svc.ListFiltered(context.Background(), dto.ProductFilter{
		Colors: []string{"black", "white"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, resp.TotalProducts)
}

func TestListFilteredByPriceSorted(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db), nil)
	seedCatalog(t, db)

	resp, err := svc.ListFiltered(context.Background(), dto.ProductFilter{
		MinPrice:  decimal.RequireFromString("50"),
		MaxPrice:  decimal.RequireFromString("100"),
		SortBy:    "price",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "Coast Hoodie", resp.Products[0].Name)
	assert.Equal(t, "Trail Max", resp.Products[1].Name)
}

func TestListFilteredPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db), nil)
	seedCatalog(t, db)

	resp, err := svc.ListFiltered(context.Background(), dto.ProductFilter{
		SortBy:    "name",
		SortOrder: "asc",
		Page:      2,
		Limit:     3,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, resp.TotalProducts)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Products, 1)
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db), nil)

	_, err := svc.Create(context.Background(), &dto.CreateProductRequest{
		Name: "Broken", Brand: "X", Category: "shoes", Price: "not-a-number",
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestUpdateAndDeleteMissingProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(repository.NewProductRepository(db), nil)

	_, err := svc.Update(context.Background(), "missing", &dto.UpdateProductRequest{
		Name: "X", Brand: "X", Category: "shoes", Price: "10.00",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), ErrProductNotFound)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, model.StringList{"M", "L"}, splitList("M, L"))
	assert.Equal(t, model.StringList{"black"}, splitList("black,"))
	assert.Empty(t, splitList(""))
}
