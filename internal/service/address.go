package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressService interface {
	Create(ctx context.Context, userID string, req *dto.CreateAddressRequest) (*model.Address, error)
	List(ctx context.Context, userID string) ([]model.Address, error)
	Update(ctx context.Context, userID, addressID string, req *dto.CreateAddressRequest) (*model.Address, error)
	Delete(ctx context.Context, userID, addressID string) error
}

type addressServiceImpl struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressServiceImpl{
		addressRepo: addressRepo,
	}
}

func (s *addressServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateAddressRequest) (*model.Address, error) {
	if req.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, fmt.Errorf("clear default address: %w", err)
		}
	}

	address := &model.Address{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
		IsDefault:  req.IsDefault,
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("store address in db: %w", err)
	}

	return address, nil
}

func (s *addressServiceImpl) List(ctx context.Context, userID string) ([]model.Address, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	return addresses, nil
}

func (s *addressServiceImpl) Update(ctx context.Context, userID, addressID string, req *dto.CreateAddressRequest) (*model.Address, error) {
	if req.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, fmt.Errorf("clear default address: %w", err)
		}
	}

	address := &model.Address{
		ID:         addressID,
		UserID:     userID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
		IsDefault:  req.IsDefault,
	}

	if err := s.addressRepo.Update(ctx, address); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("update address: %w", err)
	}

	return s.addressRepo.FindByIDForUser(ctx, addressID, userID)
}

func (s *addressServiceImpl) Delete(ctx context.Context, userID, addressID string) error {
	err := s.addressRepo.Delete(ctx, addressID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAddressNotFound
	}

	return err
}
