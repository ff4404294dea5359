package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luu-sac/ceramics-api/internal/apperr"
	"github.com/luu-sac/ceramics-api/internal/category"
)

type CategoryHandler struct {
	Repo category.Repository
}

func (h *CategoryHandler) Register(api *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	g := api.Group("/categories")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", auth, admin, h.create)
	g.PUT("/:id", auth, admin, h.update)
	g.DELETE("/:id", auth, admin, h.delete)
}

// list godoc
// @Summary  List categories with product counts
// @Tags     categories
// @Produce  json
// @Success  200 {object} Response{data=[]category.Category}
// @Router   /categories [get]
func (h *CategoryHandler) list(c *gin.Context) {
	cats, err := h.Repo.List(c.Request.Context())
	if err != nil {
		fail(c, apperr.Internal("list categories", err))
		return
	}
	ok(c, http.StatusOK, "categories retrieved", cats)
}

func (h *CategoryHandler) get(c *gin.Context) {
	cat, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, apperr.NotFound("category not found"))
		return
	}
	ok(c, http.StatusOK, "category retrieved", cat)
}

func (h *CategoryHandler) create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		fail(c, apperr.BadRequest("name is required"))
		return
	}
	cat := &category.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.Repo.Create(c.Request.Context(), cat); err != nil {
		fail(c, apperr.Internal("create category", err))
		return
	}
	ok(c, http.StatusCreated, "category created", cat)
}

func (h *CategoryHandler) update(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid json"))
		return
	}
	cat := &category.Category{ID: c.Param("id"), Name: req.Name, Description: req.Description}
	if err := h.Repo.Update(c.Request.Context(), cat); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			fail(c, apperr.NotFound("category not found"))
			return
		}
		fail(c, apperr.Internal("update category", err))
		return
	}
	ok(c, http.StatusOK, "category updated", cat)
}

func (h *CategoryHandler) delete(c *gin.Context) {
	deleted, err := h.Repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, apperr.Internal("delete category", err))
		return
	}
	if !deleted {
		fail(c, apperr.NotFound("category not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
