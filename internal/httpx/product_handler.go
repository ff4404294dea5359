package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luu-sac/ceramics-api/internal/apperr"
	"github.com/luu-sac/ceramics-api/internal/product"
)

type ProductHandler struct {
	Repo product.Repository
}

func (h *ProductHandler) Register(api *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	g := api.Group("/products")

	// Public storefront endpoints, ACTIVE products only.
	g.GET("/public", h.listPublic)
	g.GET("/public/:id", h.getPublic)

	g.GET("", auth, admin, h.list)
	g.GET("/:id", auth, admin, h.get)
	g.POST("", auth, admin, h.create)
	g.PUT("/:id", auth, admin, h.update)
	g.DELETE("/:id", auth, admin, h.delete)
}

func parseQuery(c *gin.Context) product.Query {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return product.Query{
		Search:     c.Query("search"),
		CategoryID: c.Query("categoryId"),
		Status:     c.Query("status"),
		MinPrice:   c.Query("minPrice"),
		MaxPrice:   c.Query("maxPrice"),
		SortBy:     c.DefaultQuery("sortBy", "created_at"),
		SortDesc:   c.DefaultQuery("sortOrder", "desc") == "desc",
		Page:       page,
		Limit:      limit,
	}
}

// listPublic godoc
// @Summary  Browse the public catalog
// @Tags     products
// @Produce  json
// @Param    page query int false "page"
// @Param    limit query int false "page size"
// @Param    search query string false "name search"
// @Param    categoryId query string false "category filter"
// @Param    minPrice query string false "minimum price"
// @Param    maxPrice query string false "maximum price"
// @Success  200 {object} Response{data=[]product.Product}
// @Router   /products/public [get]
func (h *ProductHandler) listPublic(c *gin.Context) {
	q := parseQuery(c)
	q.Status = product.StatusActive // public never sees hidden or deleted rows
	items, total, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		fail(c, apperr.Internal("list products", err))
		return
	}
	paginated(c, "products retrieved", items, q.Page, q.Limit, total)
}

func (h *ProductHandler) getPublic(c *gin.Context) {
	p, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || p.Status != product.StatusActive {
		fail(c, apperr.NotFound("product not found"))
		return
	}
	ok(c, http.StatusOK, "product retrieved", p)
}

func (h *ProductHandler) list(c *gin.Context) {
	q := parseQuery(c)
	items, total, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		fail(c, apperr.Internal("list products", err))
		return
	}
	paginated(c, "products retrieved", items, q.Page, q.Limit, total)
}

func (h *ProductHandler) get(c *gin.Context) {
	p, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, apperr.NotFound("product not found"))
		return
	}
	ok(c, http.StatusOK, "product retrieved", p)
}

func validPrice(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

// create godoc
// @Summary  Create a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    body body product.CreateProductRequest true "product payload"
// @Success  201 {object} Response{data=product.Product}
// @Router   /products [post]
func (h *ProductHandler) create(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid json"))
		return
	}
	if req.Name == "" || !validPrice(req.Price) || req.Quantity < 0 {
		fail(c, apperr.BadRequest("name, non-negative price and quantity are required"))
		return
	}
	if req.Status == "" {
		req.Status = product.StatusActive
	}
	if !product.ValidStatus(req.Status) {
		fail(c, apperr.BadRequest("invalid status"))
		return
	}
	p := &product.Product{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Quantity:       req.Quantity,
		Status:         req.Status,
		ImageURL:       req.ImageURL,
		ThumbnailImage: req.ThumbnailImage,
		CategoryID:     req.CategoryID,
	}
	if err := h.Repo.Create(c.Request.Context(), p); err != nil {
		fail(c, apperr.Internal("create product", err))
		return
	}
	ok(c, http.StatusCreated, "product created", p)
}

func (h *ProductHandler) update(c *gin.Context) {
	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid json"))
		return
	}
	if req.Price != nil && !validPrice(*req.Price) {
		fail(c, apperr.BadRequest("price must be non-negative"))
		return
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		fail(c, apperr.BadRequest("quantity must be non-negative"))
		return
	}
	if req.Status != nil && !product.ValidStatus(*req.Status) {
		fail(c, apperr.BadRequest("invalid status"))
		return
	}
	if err := h.Repo.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			fail(c, apperr.NotFound("product not found"))
			return
		}
		fail(c, apperr.Internal("update product", err))
		return
	}
	p, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, apperr.NotFound("product not found"))
		return
	}
	ok(c, http.StatusOK, "product updated", p)
}

// delete performs the soft delete; the row survives for order history.
func (h *ProductHandler) delete(c *gin.Context) {
	if err := h.Repo.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			fail(c, apperr.NotFound("product not found"))
			return
		}
		fail(c, apperr.Internal("delete product", err))
		return
	}
	c.Status(http.StatusNoContent)
}
