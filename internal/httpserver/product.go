package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/arkhipovd/storefront/internal/logging"
	"github.com/arkhipovd/storefront/internal/models"
	"github.com/arkhipovd/storefront/internal/service"
	"github.com/arkhipovd/storefront/internal/store"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	search := c.QueryParam("search")
	category := c.QueryParam("category")

	items, err := h.Svc.Products(ctx, search, category)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.Product(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req models.InsertProduct
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product data")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_create_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("product_create_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create product")
	}

	l.Info("product_created", "id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("product_update_failed", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req models.ProductPatch
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product data")
	}

	prod, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("product_update_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			l.Warn("product_update_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		default:
			l.Error("product_update_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update product")
		}
	}

	l.Info("product_updated", "id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("product_delete_failed", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	deleted, err := h.Svc.DeleteProduct(ctx, id)
	if err != nil {
		l.Error("product_delete_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}
	if !deleted {
		l.Warn("product_delete_failed", "status", 404, "id", id)
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	l.Info("product_deleted", "id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
