package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) AddFeatureBanners(c echo.Context) error {
	ctx := c.Request().Context()

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No files provided")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No files provided")
	}

	images := make([]service.ProductImage, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable banner file")
		}
		defer f.Close()
		images = append(images, service.ProductImage{Filename: fh.Filename, Body: f})
	}

	banners, err := h.settingsService.AddBanners(ctx, images)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"banners": banners,
	})
}

func (h *SettingsHandler) FetchFeatureBanners(c echo.Context) error {
	ctx := c.Request().Context()

	banners, err := h.settingsService.ListBanners(ctx)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"banners": banners,
	})
}

func (h *SettingsHandler) UpdateFeatureProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateFeatureProductsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.settingsService.UpdateFeaturedProducts(ctx, req.ProductIDs); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Updated feature products successfully",
	})
}

func (h *SettingsHandler) GetFeaturedProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.settingsService.ListFeaturedProducts(ctx)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":         true,
		"featureProducts": products,
	})
}
