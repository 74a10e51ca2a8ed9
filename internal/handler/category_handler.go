package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ticketdesk/internal/model"
	"ticketdesk/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	svc service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// CreateCategoryRequest represents a new category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"omitnil,hexcolor6"`
}

// UpdateCategoryRequest is a partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"omitnil,hexcolor6"`
}

// CategoryListResponse wraps the category list.
type CategoryListResponse struct {
	Categories []model.Category `json:"categories"`
}

// CategoryResponse wraps a single category.
type CategoryResponse struct {
	Category *model.Category `json:"category"`
}

// DeleteCategoryResponse echoes the removed category.
type DeleteCategoryResponse struct {
	Message  string          `json:"message"`
	Category *model.Category `json:"category"`
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} CategoryListResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CategoryListResponse{Categories: categories})
}

// CreateCategory godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.svc.Create(c.Request().Context(), service.CategoryInput{
		Name:        &req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CategoryResponse{Category: category})
}

// UpdateCategory godoc
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} CategoryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req UpdateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.svc.Update(c.Request().Context(), pathID(c), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CategoryResponse{Category: category})
}

// DeleteCategory godoc
// @Summary Delete category
// @Description Tickets in the category keep existing without one.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} DeleteCategoryResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	category, err := h.svc.Delete(c.Request().Context(), pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DeleteCategoryResponse{Message: "Category deleted", Category: category})
}
