package services

import (
	"context"

	"gorm.io/gorm"

	"quizapi/models"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=30"`
	Description string `json:"description" binding:"max=200"`
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, err
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *CategoryRequest) (*models.Category, error) {
	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, conflictError(err)
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID uint, req *CategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundError("category with id: %d was not found", categoryID)
		}
		return nil, err
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, conflictError(err)
		}
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes the category and detaches it from any questions.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID uint) error {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return notFoundError("category with id: %d was not found", categoryID)
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.QuestionCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, categoryID).Error
	})
}
