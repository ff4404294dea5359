package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luu-sac/ceramics-api/internal/category"
	"github.com/luu-sac/ceramics-api/internal/order"
	"github.com/luu-sac/ceramics-api/internal/payos"
	"github.com/luu-sac/ceramics-api/internal/product"
	"github.com/luu-sac/ceramics-api/internal/user"
)

//
// ---------- STUBS & FAKES ----------
//

type memUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*user.User
	byEmail map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[string]*user.User), byEmail: make(map[string]*user.User)}
}

func (r *memUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrAlreadyExist
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

type memTokens struct{ m sync.Map }

func (t *memTokens) SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	t.m.Store(token, userID)
	return nil
}

func (t *memTokens) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	v, ok := t.m.LoadAndDelete(token)
	if !ok {
		return "", user.ErrNotFound
	}
	return v.(string), nil
}

type memProducts struct {
	mu    sync.Mutex
	items map[string]*product.Product
}

func newMemProducts() *memProducts { return &memProducts{items: make(map[string]*product.Product)} }

func (r *memProducts) Create(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProducts) GetByID(ctx context.Context, id string) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok || p.Status == product.StatusDeleted {
		return nil, product.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProducts) GetManyByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []product.Product
	for _, id := range ids {
		if p, ok := r.items[id]; ok && p.Status != product.StatusDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProducts) List(ctx context.Context, q product.Query) ([]product.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []product.Product
	for _, p := range r.items {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.Status == "" && p.Status == product.StatusDeleted {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *memProducts) Update(ctx context.Context, id string, req product.UpdateProductRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return product.ErrNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	return nil
}

func (r *memProducts) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok || p.Status == product.StatusDeleted {
		return product.ErrNotFound
	}
	p.Status = product.StatusDeleted
	return nil
}

type memOrders struct {
	mu       sync.Mutex
	products *memProducts
	orders   map[string]*order.Order
}

func newMemOrders(products *memProducts) *memOrders {
	return &memOrders{products: products, orders: make(map[string]*order.Order)}
}

func (r *memOrders) Create(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products.mu.Lock()
	defer r.products.mu.Unlock()
	for _, it := range o.Items {
		p, ok := r.products.items[it.ProductID]
		if !ok || p.Status != product.StatusActive || p.Quantity < it.Quantity {
			return &order.InsufficientStockError{ProductID: it.ProductID}
		}
	}
	for _, it := range o.Items {
		r.products.items[it.ProductID].Quantity -= it.Quantity
	}
	cp := *o
	cp.Items = append([]order.Item(nil), o.Items...)
	for i := range cp.Items {
		cp.Items[i].ProductName = r.products.items[cp.Items[i].ProductID].Name
	}
	r.orders[cp.ID] = &cp
	return nil
}

func (r *memOrders) GetByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	cp.Items = append([]order.Item(nil), o.Items...)
	return &cp, nil
}

func (r *memOrders) List(ctx context.Context, q order.ListQuery) ([]order.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []order.Order
	for _, o := range r.orders {
		if q.UserID != "" && o.UserID != q.UserID {
			continue
		}
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (r *memOrders) UpdateStatusFrom(ctx context.Context, id string, from, to order.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (r *memOrders) SetPaymentInfo(ctx context.Context, id, linkID, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.PaymentLinkID = linkID
	o.PaymentReference = ref
	return nil
}

func (r *memOrders) MarkPaidByReference(ctx context.Context, ref string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.PaymentReference == ref && o.Status == order.StatusPending {
			o.Status = order.StatusPaid
			return o.ID, true, nil
		}
	}
	return "", false, nil
}

type memCategories struct {
	mu    sync.Mutex
	items map[string]*category.Category
}

func newMemCategories() *memCategories {
	return &memCategories{items: make(map[string]*category.Category)}
}

func (r *memCategories) Create(ctx context.Context, c *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memCategories) GetByID(ctx context.Context, id string) (*category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, category.ErrNotFound
	}
	return c, nil
}

func (r *memCategories) List(ctx context.Context) ([]category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []category.Category
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCategories) Update(ctx context.Context, c *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return category.ErrNotFound
	}
	r.items[c.ID] = c
	return nil
}

func (r *memCategories) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// stubGateway trusts every webhook body; signature checks are covered by the
// payos package tests.
type stubGateway struct{ linkID string }

func (g *stubGateway) CreatePaymentRequest(ctx context.Context, req payos.CheckoutRequest) (*payos.CheckoutData, error) {
	return &payos.CheckoutData{
		PaymentLinkID: g.linkID,
		CheckoutURL:   "https://pay.example/" + g.linkID,
		OrderCode:     req.OrderCode,
		Amount:        req.Amount,
	}, nil
}

func (g *stubGateway) VerifyWebhook(raw []byte) (*payos.WebhookData, error) {
	var wh struct {
		Data payos.WebhookData `json:"data"`
	}
	if err := json.Unmarshal(raw, &wh); err != nil {
		return nil, err
	}
	return &wh.Data, nil
}

//
// ---------- FIXTURE ----------
//

type fixture struct {
	router   *gin.Engine
	users    *memUserRepo
	products *memProducts
	orders   *memOrders
	userSvc  *user.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUserRepo()
	userSvc := user.NewService(users, &memTokens{}, "test-secret")

	products := newMemProducts()
	orders := newMemOrders(products)
	orderSvc := order.NewService(orders, products, &stubGateway{linkID: "plink-1"}, nil, nil, "http://localhost:3000")

	router := NewRouter(Deps{
		Auth:       &AuthHandler{Svc: userSvc},
		Categories: &CategoryHandler{Repo: newMemCategories()},
		Products:   &ProductHandler{Repo: products},
		Orders:     &OrderHandler{Svc: orderSvc},
		Tokens:     userSvc,
		CORSOrigin: "http://localhost:3000",
	})
	return &fixture{router: router, users: users, products: products, orders: orders, userSvc: userSvc}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) registerUser(t *testing.T, email string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/auth/register", "", user.RegisterRequest{
		Email: email, Password: "s3cret", Name: "Test User",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, w.Code, w.Body.String())
	}
	var res struct {
		Data user.AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	return res.Data.Token
}

func (f *fixture) registerAdmin(t *testing.T, email string) string {
	t.Helper()
	hash, err := user.HashPassword("admin-pass")
	if err != nil {
		t.Fatal(err)
	}
	u := &user.User{ID: uuid.NewString(), Name: "Admin", Email: email, PasswordHash: hash, Role: user.RoleAdmin}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	res, err := f.userSvc.Login(context.Background(), user.LoginRequest{Email: email, Password: "admin-pass"})
	if err != nil {
		t.Fatal(err)
	}
	return res.Token
}

func (f *fixture) seedProduct(t *testing.T, name, price string, qty int, status string) string {
	t.Helper()
	id := uuid.NewString()
	err := f.products.Create(context.Background(), &product.Product{
		ID: id, Name: name, Price: price, Quantity: qty, Status: status,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

//
// ---------- TESTS ----------
//

func TestAuthEndpoints(t *testing.T) {
	f := newFixture(t)

	token := f.registerUser(t, "an@example.com")
	if token == "" {
		t.Fatal("empty token")
	}

	w := f.do(t, http.MethodPost, "/api/auth/login", "", user.LoginRequest{Email: "an@example.com", Password: "s3cret"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d", w.Code)
	}

	w = f.do(t, http.MethodPost, "/api/auth/login", "", user.LoginRequest{Email: "an@example.com", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d, want 401", w.Code)
	}
}

func TestOrdersRequireAuth(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/orders", "", order.CreateOrderRequest{})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	w = f.do(t, http.MethodGet, "/api/orders/my", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestOrderPlacementAndOwnership(t *testing.T) {
	f := newFixture(t)
	tokenA := f.registerUser(t, "a@example.com")
	tokenB := f.registerUser(t, "b@example.com")
	pid := f.seedProduct(t, "Celadon vase", "120.50", 10, product.StatusActive)

	w := f.do(t, http.MethodPost, "/api/orders", tokenA, order.CreateOrderRequest{
		Items: []order.CreateOrderItem{{ProductID: pid, Quantity: 2}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: status %d, body %s", w.Code, w.Body.String())
	}
	var res struct {
		Data order.Order `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Data.Status != order.StatusPending {
		t.Fatalf("status = %s, want PENDING", res.Data.Status)
	}

	// The owner reads it; a stranger does not.
	if w := f.do(t, http.MethodGet, "/api/orders/"+res.Data.ID, tokenA, nil); w.Code != http.StatusOK {
		t.Fatalf("owner read: status %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/orders/"+res.Data.ID, tokenB, nil); w.Code != http.StatusForbidden {
		t.Fatalf("stranger read: status %d, want 403", w.Code)
	}
}

func TestOrderListStatusFilter(t *testing.T) {
	f := newFixture(t)
	token := f.registerUser(t, "a@example.com")
	adminToken := f.registerAdmin(t, "admin@example.com")
	pid := f.seedProduct(t, "Celadon vase", "100", 5, product.StatusActive)

	w := f.do(t, http.MethodPost, "/api/orders", token, order.CreateOrderRequest{
		Items: []order.CreateOrderItem{{ProductID: pid, Quantity: 1}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: status %d", w.Code)
	}

	listLen := func(path, tok string) int {
		t.Helper()
		w := f.do(t, http.MethodGet, path, tok, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d, body %s", path, w.Code, w.Body.String())
		}
		var res struct {
			Data []order.Order `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatal(err)
		}
		return len(res.Data)
	}

	if n := listLen("/api/orders/my?status=PENDING", token); n != 1 {
		t.Fatalf("PENDING filter returned %d orders, want 1", n)
	}
	if n := listLen("/api/orders/my?status=PAID", token); n != 0 {
		t.Fatalf("PAID filter returned %d orders, want 0", n)
	}
	if n := listLen("/api/orders?status=PENDING", adminToken); n != 1 {
		t.Fatalf("admin PENDING filter returned %d orders, want 1", n)
	}
}

func TestOrderInsufficientStock(t *testing.T) {
	f := newFixture(t)
	token := f.registerUser(t, "a@example.com")
	pid := f.seedProduct(t, "Tea bowl", "75.00", 1, product.StatusActive)

	w := f.do(t, http.MethodPost, "/api/orders", token, order.CreateOrderRequest{
		Items: []order.CreateOrderItem{{ProductID: pid, Quantity: 5}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	var res Response
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Success {
		t.Fatal("success should be false")
	}
}

func TestAdminGating(t *testing.T) {
	f := newFixture(t)
	userToken := f.registerUser(t, "a@example.com")
	adminToken := f.registerAdmin(t, "admin@example.com")

	if w := f.do(t, http.MethodGet, "/api/orders", userToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("user listing all orders: status %d, want 403", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/orders", adminToken, nil); w.Code != http.StatusOK {
		t.Fatalf("admin listing all orders: status %d", w.Code)
	}

	body := product.CreateProductRequest{Name: "Celadon vase", Price: "120.50", Quantity: 3}
	if w := f.do(t, http.MethodPost, "/api/products", userToken, body); w.Code != http.StatusForbidden {
		t.Fatalf("user creating product: status %d, want 403", w.Code)
	}
	if w := f.do(t, http.MethodPost, "/api/products", adminToken, body); w.Code != http.StatusCreated {
		t.Fatalf("admin creating product: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestAdminStatusTransitions(t *testing.T) {
	f := newFixture(t)
	userToken := f.registerUser(t, "a@example.com")
	adminToken := f.registerAdmin(t, "admin@example.com")
	pid := f.seedProduct(t, "Celadon vase", "100", 5, product.StatusActive)

	w := f.do(t, http.MethodPost, "/api/orders", userToken, order.CreateOrderRequest{
		Items: []order.CreateOrderItem{{ProductID: pid, Quantity: 1}},
	})
	var res struct {
		Data order.Order `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}

	// PENDING cannot jump straight to PROCESSING.
	w = f.do(t, http.MethodPatch, "/api/orders/"+res.Data.ID+"/status", adminToken,
		order.UpdateStatusRequest{Status: "PROCESSING"})
	if w.Code != http.StatusConflict {
		t.Fatalf("skip-ahead: status %d, want 409", w.Code)
	}

	w = f.do(t, http.MethodPatch, "/api/orders/"+res.Data.ID+"/status", adminToken,
		order.UpdateStatusRequest{Status: "CANCELLED"})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: status %d, body %s", w.Code, w.Body.String())
	}

	// Non-admins cannot drive the lifecycle at all.
	w = f.do(t, http.MethodPatch, "/api/orders/"+res.Data.ID+"/status", userToken,
		order.UpdateStatusRequest{Status: "CANCELLED"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("user transition: status %d, want 403", w.Code)
	}
}

func TestPaymentWebhookEndpoint(t *testing.T) {
	f := newFixture(t)
	token := f.registerUser(t, "a@example.com")
	pid := f.seedProduct(t, "Celadon vase", "100", 5, product.StatusActive)

	w := f.do(t, http.MethodPost, "/api/orders", token, order.CreateOrderRequest{
		Items: []order.CreateOrderItem{{ProductID: pid, Quantity: 1}},
	})
	var created struct {
		Data order.Order `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	if w := f.do(t, http.MethodPost, "/api/orders/"+created.Data.ID+"/payment", token, nil); w.Code != http.StatusOK {
		t.Fatalf("payment link: status %d, body %s", w.Code, w.Body.String())
	}
	stored, err := f.orders.GetByID(context.Background(), created.Data.ID)
	if err != nil {
		t.Fatal(err)
	}

	var code int64
	fmt.Sscanf(stored.PaymentReference, "%d", &code)

	// No Authorization header: the gateway calls this endpoint directly.
	w = f.do(t, http.MethodPost, "/api/orders/payment/webhook", "", map[string]any{
		"data": payos.WebhookData{OrderCode: code, Code: payos.CodeSuccess},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("webhook: status %d, body %s", w.Code, w.Body.String())
	}

	after, _ := f.orders.GetByID(context.Background(), created.Data.ID)
	if after.Status != order.StatusPaid {
		t.Fatalf("status = %s, want PAID", after.Status)
	}

	// Unknown references are acknowledged so the gateway stops retrying.
	w = f.do(t, http.MethodPost, "/api/orders/payment/webhook", "", map[string]any{
		"data": payos.WebhookData{OrderCode: 424242, Code: payos.CodeSuccess},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unknown reference: status %d, want 200", w.Code)
	}
}

func TestPublicCatalogShowsOnlyActive(t *testing.T) {
	f := newFixture(t)
	activeID := f.seedProduct(t, "Celadon vase", "120.50", 5, product.StatusActive)
	hiddenID := f.seedProduct(t, "Workshop second", "10.00", 5, product.StatusHide)

	w := f.do(t, http.MethodGet, "/api/products/public", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var res struct {
		Data []product.Product `json:"data"`
		Meta *Meta             `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Data) != 1 || res.Data[0].ID != activeID {
		t.Fatalf("public listing = %+v, want only the active product", res.Data)
	}
	if res.Meta == nil || res.Meta.Total != 1 {
		t.Fatalf("meta = %+v, want total 1", res.Meta)
	}

	if w := f.do(t, http.MethodGet, "/api/products/public/"+hiddenID, "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("hidden product: status %d, want 404", w.Code)
	}
}

func TestCategoryCRUD(t *testing.T) {
	f := newFixture(t)
	adminToken := f.registerAdmin(t, "admin@example.com")

	w := f.do(t, http.MethodPost, "/api/categories", adminToken,
		category.CreateCategoryRequest{Name: "Vases", Description: "Hand-thrown vases"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", w.Code, w.Body.String())
	}
	var res struct {
		Data category.Category `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}

	// Reads are public.
	if w := f.do(t, http.MethodGet, "/api/categories", "", nil); w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/categories/"+res.Data.ID, "", nil); w.Code != http.StatusOK {
		t.Fatalf("get: status %d", w.Code)
	}

	if w := f.do(t, http.MethodDelete, "/api/categories/"+res.Data.ID, adminToken, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	if w := f.do(t, http.MethodGet, "/healthz", "", nil); w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}
