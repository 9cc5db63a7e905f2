package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image files required")
	}

	files := form.File["images"]
	images := make([]service.ProductImage, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
		}
		defer f.Close()
		images = append(images, service.ProductImage{Filename: fh.Filename, Body: f})
	}

	product, err := h.productService.Create(ctx, &req, images)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) FetchAllProductsForAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.ListAdmin(ctx)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.productService.GetByID(ctx, c.Param("id"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productService.Update(ctx, c.Param("id"), &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.productService.Delete(ctx, c.Param("id")); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func (h *ProductHandler) FetchProductsForClient(c echo.Context) error {
	ctx := c.Request().Context()

	filter := dto.ProductFilter{
		Categories: splitQueryList(c.QueryParam("categories")),
		Brands:     splitQueryList(c.QueryParam("brands")),
		Sizes:      splitQueryList(c.QueryParam("sizes")),
		Colors:     splitQueryList(c.QueryParam("colors")),
		SortBy:     c.QueryParam("sortBy"),
		SortOrder:  c.QueryParam("sortOrder"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 10),
	}

	if v := c.QueryParam("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = d
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = d
		}
	}

	resp, err := h.productService.ListFiltered(ctx, filter)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func splitQueryList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

func queryInt(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
