package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	FindByUser(ctx context.Context, userID string) ([]model.Address, error)
	FindByIDForUser(ctx context.Context, addressID, userID string) (*model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, addressID, userID string) error

	// ClearDefault unsets the default flag on all of the user's addresses,
	// ahead of marking a new one default.
	ClearDefault(ctx context.Context, userID string) error
}

type addressRepoImpl struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepoImpl{
		db: db,
	}
}

func (r *addressRepoImpl) Create(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressRepoImpl) FindByUser(ctx context.Context, userID string) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}

	return addresses, nil
}

func (r *addressRepoImpl) FindByIDForUser(ctx context.Context, addressID, userID string) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error
	if err != nil {
		return nil, err
	}

	return &address, nil
}

func (r *addressRepoImpl) Update(ctx context.Context, address *model.Address) error {
	result := r.db.WithContext(ctx).Model(&model.Address{}).
		Where("id = ? AND user_id = ?", address.ID, address.UserID).
		Updates(map[string]interface{}{
			"name":        address.Name,
			"address":     address.Address,
			"city":        address.City,
			"country":     address.Country,
			"postal_code": address.PostalCode,
			"phone":       address.Phone,
			"is_default":  address.IsDefault,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *addressRepoImpl) Delete(ctx context.Context, addressID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&model.Address{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *addressRepoImpl) ClearDefault(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&model.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
