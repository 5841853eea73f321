package service

import (
	"context"
	"errors"

	"storeminds/internal/model"
	"storeminds/internal/repository"
	"storeminds/pkg/validator"
)

const DefaultCategoryIcon = "Box"

type CatalogService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id uint) error
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	CreateSupplier(ctx context.Context, supplier *model.Supplier) error
	DeleteSupplier(ctx context.Context, id uint) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewCatalogService(categoryRepo repository.CategoryRepository, supplierRepo repository.SupplierRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return categories, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := validator.FirstError(category); err != nil {
		return validationError(err)
	}
	if category.Icon == "" {
		category.Icon = DefaultCategoryIcon
	}

	_, err := s.categoryRepo.FindByName(ctx, category.Name)
	if err == nil {
		return ErrCategoryExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return classify(err)
	}

	category.ID = 0
	return classify(s.categoryRepo.Create(ctx, category))
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.categoryRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return classify(err)
}

func (s *catalogService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return suppliers, nil
}

func (s *catalogService) CreateSupplier(ctx context.Context, supplier *model.Supplier) error {
	if err := validator.FirstError(supplier); err != nil {
		return validationError(err)
	}
	supplier.ID = 0
	return classify(s.supplierRepo.Create(ctx, supplier))
}

func (s *catalogService) DeleteSupplier(ctx context.Context, id uint) error {
	err := s.supplierRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSupplierNotFound
	}
	return classify(err)
}
