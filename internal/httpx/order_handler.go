package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luu-sac/ceramics-api/internal/apperr"
	"github.com/luu-sac/ceramics-api/internal/order"
)

type OrderHandler struct {
	Svc *order.Service
}

func (h *OrderHandler) Register(api *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	g := api.Group("/orders")

	// Gateway callbacks carry no bearer token.
	g.POST("/payment/webhook", h.webhook)

	g.POST("", auth, h.create)
	g.GET("/my", auth, h.listMine)
	g.GET("/:id", auth, h.get)
	g.GET("/:id/status", auth, h.getStatus)
	g.POST("/:id/payment", auth, h.createPaymentLink)

	g.GET("", auth, admin, h.list)
	g.PATCH("/:id/status", auth, admin, h.updateStatus)
}

// create godoc
// @Summary  Place an order
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    body body order.CreateOrderRequest true "order payload"
// @Success  201 {object} Response{data=order.Order}
// @Security BearerAuth
// @Router   /orders [post]
func (h *OrderHandler) create(c *gin.Context) {
	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid json"))
		return
	}
	o, err := h.Svc.Create(c.Request.Context(), callerID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "order created", o)
}

func (h *OrderHandler) listMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	q := order.ListQuery{UserID: callerID(c), Status: order.Status(c.Query("status")), Page: page, Limit: limit}
	orders, total, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	paginated(c, "orders retrieved", orders, q.Page, q.Limit, total)
}

func (h *OrderHandler) get(c *gin.Context) {
	o, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"), callerID(c), isAdmin(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "order retrieved", o)
}

func (h *OrderHandler) getStatus(c *gin.Context) {
	st, err := h.Svc.GetStatus(c.Request.Context(), c.Param("id"), callerID(c), isAdmin(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "order status retrieved", gin.H{"status": st})
}

// createPaymentLink godoc
// @Summary  Create a payment link for a pending order
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} Response{data=order.PaymentLink}
// @Security BearerAuth
// @Router   /orders/{id}/payment [post]
func (h *OrderHandler) createPaymentLink(c *gin.Context) {
	link, err := h.Svc.CreatePaymentLink(c.Request.Context(), c.Param("id"), callerID(c), isAdmin(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "payment link created", link)
}

// webhook godoc
// @Summary  Payment gateway webhook
// @Tags     orders
// @Accept   json
// @Produce  json
// @Success  200 {object} Response
// @Router   /orders/payment/webhook [post]
func (h *OrderHandler) webhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		fail(c, apperr.BadRequest("unreadable body"))
		return
	}
	if err := h.Svc.HandleWebhook(c.Request.Context(), raw); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "webhook processed", nil)
}

func (h *OrderHandler) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	q := order.ListQuery{UserID: c.Query("userId"), Status: order.Status(c.Query("status")), Page: page, Limit: limit}
	orders, total, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	paginated(c, "orders retrieved", orders, q.Page, q.Limit, total)
}

// updateStatus godoc
// @Summary  Transition an order's status
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id path string true "order id"
// @Param    body body order.UpdateStatusRequest true "target status"
// @Success  200 {object} Response{data=order.Order}
// @Security BearerAuth
// @Router   /orders/{id}/status [patch]
func (h *OrderHandler) updateStatus(c *gin.Context) {
	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.BadRequest("invalid json"))
		return
	}
	o, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "order status updated", o)
}
