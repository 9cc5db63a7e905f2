package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront-backend/internal/client"
	"storefront-backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, price string, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		ID:       uuid.NewString(),
		Name:     "Air Runner",
		Brand:    "Peak",
		Category: "shoes",
		Gender:   "men",
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Sizes:    model.StringList{"M", "L"},
		Colors:   model.StringList{"black"},
		Images:   model.StringList{"https://cdn.example.com/air-runner.jpg"},
	}
	require.NoError(t, db.Create(product).Error)

	return product
}
