package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/example/salesapp/internal/config"
	"github.com/example/salesapp/internal/domain"
	"github.com/example/salesapp/internal/middleware"
	"github.com/example/salesapp/internal/models"
	"github.com/example/salesapp/internal/services"
)

// memStore is a shared in-memory backing for all repository interfaces, so
// the full HTTP surface can be tested without a database. Conditional
// updates behave like the postgres layer: version and used-flag checks fail
// with the same sentinels.
type memStore struct {
	users     map[uuid.UUID]*models.User
	customers map[uuid.UUID]*models.Customer
	products  map[uuid.UUID]*models.Product
	orders    map[uuid.UUID]*models.Order
	otps      []*models.OtpCode
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]*models.User{},
		customers: map[uuid.UUID]*models.Customer{},
		products:  map[uuid.UUID]*models.Product{},
		orders:    map[uuid.UUID]*models.Order{},
	}
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memUsers) Update(ctx context.Context, u *models.User) error {
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r memUsers) ListAdmins(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.s.users {
		if u.Role == models.RoleAdmin {
			out = append(out, *u)
		}
	}
	return out, nil
}

type memCustomers struct{ s *memStore }

func (r memCustomers) Create(ctx context.Context, c *models.Customer) error {
	if c.User != nil {
		if err := (memUsers{r.s}).Create(ctx, c.User); err != nil {
			return err
		}
		c.UserID = c.User.ID
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	cp.User = nil
	r.s.customers[c.ID] = &cp
	return nil
}

func (r memCustomers) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if c, ok := r.s.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r memCustomers) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	for _, c := range r.s.customers {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memCustomers) Update(ctx context.Context, c *models.Customer) error {
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r memCustomers) List(ctx context.Context, limit, offset int) ([]models.Customer, int64, error) {
	var out []models.Customer
	for _, c := range r.s.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r memCustomers) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

type memProducts struct{ s *memStore }

func (r memProducts) Create(ctx context.Context, p *models.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r memProducts) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r memProducts) List(ctx context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range r.s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r memProducts) Update(ctx context.Context, p *models.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r memProducts) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

type memOrders struct{ s *memStore }

func (r memOrders) Create(ctx context.Context, o *models.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	r.s.orders[o.ID] = &cp
	return nil
}

func (r memOrders) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (r memOrders) UpdateStatus(ctx context.Context, o *models.Order) error {
	stored, ok := r.s.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != o.Version {
		return domain.ErrConflict
	}
	stored.Status = o.Status
	stored.PaymentStatus = o.PaymentStatus
	stored.PaymentReference = o.PaymentReference
	stored.Version++
	o.Version = stored.Version
	return nil
}

func (r memOrders) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range r.s.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r memOrders) ListAll(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	out := []models.Order{}
	for _, o := range r.s.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

// captureMailer keeps the last code sent per email instead of mailing it.
type captureMailer struct {
	codes map[string]string
}

func (m *captureMailer) SendCode(email, code string) error {
	m.codes[email] = code
	return nil
}

// testEnv wires the complete HTTP surface against in-memory stores.
type testEnv struct {
	app     *fiber.App
	cfg     *config.Config
	store   *memStore
	mailer  *captureMailer
	gateway *services.MockGateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:    "handler-test-secret",
		TokenExpires: time.Hour,
		Currency:     "PHP",
	}
	store := newMemStore()
	mailer := &captureMailer{codes: map[string]string{}}
	gateway := services.NewMockGateway()

	users := memUsers{store}
	customers := memCustomers{store}
	products := memProducts{store}
	orders := memOrders{store}
	codes := &memOtps{store}

	otpService := services.NewOtpService(users, codes, mailer, cfg.JWTSecret, cfg.TokenExpires)
	orderService := services.NewOrderService(orders, products, customers)

	authHandler := NewAuthHandler(users, cfg)
	customerAuthHandler := NewCustomerAuthHandler(users, customers, otpService)
	customerHandler := NewCustomerHandler(customers)
	adminHandler := NewAdminHandler(users)
	productHandler := NewProductHandler(products)
	orderHandler := NewOrderHandler(orderService, customers, gateway, cfg)

	app := fiber.New()
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)

	customerAuth := api.Group("/customer-auth")
	customerAuth.Post("/register", customerAuthHandler.Register)
	customerAuth.Post("/request-otp", customerAuthHandler.RequestOtp)
	customerAuth.Post("/verify-otp", customerAuthHandler.VerifyOtp)

	productsGroup := api.Group("/products")
	productsGroup.Get("/", productHandler.List)
	productsGroup.Get("/:id", productHandler.Get)
	adminProducts := productsGroup.Group("", middleware.AuthMiddleware(cfg), middleware.RequireRoles("Admin", "SuperAdmin"))
	adminProducts.Post("/", productHandler.Create)
	adminProducts.Put("/:id", productHandler.Update)
	adminProducts.Delete("/:id", productHandler.Delete)

	customersGroup := api.Group("/customers", middleware.AuthMiddleware(cfg))
	customersGroup.Get("/me", middleware.RequireRoles("Customer"), customerHandler.Me)
	customersGroup.Put("/me", middleware.RequireRoles("Customer"), customerHandler.UpdateMe)
	customersGroup.Get("/", middleware.RequireRoles("Admin", "SuperAdmin"), customerHandler.List)
	customersGroup.Delete("/:id", middleware.RequireRoles("Admin", "SuperAdmin"), customerHandler.Delete)

	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.RequireRoles("SuperAdmin"))
	admin.Get("/admins", adminHandler.ListAdmins)
	admin.Put("/:id/approve", adminHandler.Approve)
	admin.Put("/:id/block", adminHandler.Block)
	admin.Put("/:id/unblock", adminHandler.Unblock)

	ordersGroup := api.Group("/orders", middleware.AuthMiddleware(cfg))
	ordersGroup.Post("/", middleware.RequireRoles("Customer"), orderHandler.Create)
	ordersGroup.Get("/my-orders", middleware.RequireRoles("Customer"), orderHandler.ListMine)
	ordersGroup.Get("/", middleware.RequireRoles("Admin", "SuperAdmin"), orderHandler.ListAll)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Post("/:id/payment", middleware.RequireRoles("Customer"), orderHandler.CreatePayment)
	ordersGroup.Put("/:id/payment-status", middleware.RequireRoles("Customer"), orderHandler.UpdatePaymentStatus)
	ordersGroup.Delete("/:id", orderHandler.Cancel)

	return &testEnv{app: app, cfg: cfg, store: store, mailer: mailer, gateway: gateway}
}

type memOtps struct{ s *memStore }

func (r *memOtps) Create(ctx context.Context, code *models.OtpCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	cp := *code
	r.s.otps = append(r.s.otps, &cp)
	return nil
}

func (r *memOtps) GetValid(ctx context.Context, email, code string, now time.Time) (*models.OtpCode, error) {
	for i := len(r.s.otps) - 1; i >= 0; i-- {
		c := r.s.otps[i]
		if c.Email == email && c.Code == code && !c.Used && c.ExpiresAt.After(now) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memOtps) MarkUsed(ctx context.Context, id uuid.UUID) error {
	for _, c := range r.s.otps {
		if c.ID == id {
			if c.Used {
				return domain.ErrConflict
			}
			c.Used = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memOtps) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var kept []*models.OtpCode
	var removed int64
	for _, c := range r.s.otps {
		if c.Used || !c.ExpiresAt.After(now) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	r.s.otps = kept
	return removed, nil
}

// request performs an HTTP call against the test app and decodes the JSON body.
func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// registerCustomer signs a customer up through the API and logs them in via
// the OTP flow, returning a session token.
func (e *testEnv) registerCustomer(t *testing.T, name, email string) string {
	t.Helper()

	resp, _ := e.request(t, fiber.MethodPost, "/api/customer-auth/register", "", fiber.Map{
		"full_name":       name,
		"email":           email,
		"billing_address": "1 Test Street",
		"contact_number":  "+630000000000",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = e.request(t, fiber.MethodPost, "/api/customer-auth/request-otp", "", fiber.Map{"email": email})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := e.request(t, fiber.MethodPost, "/api/customer-auth/verify-otp", "", fiber.Map{
		"email": email,
		"code":  e.mailer.codes[email],
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// seedAdmin creates an approved account directly in the store and returns a
// login token for it.
func (e *testEnv) seedAdmin(t *testing.T, role string) string {
	t.Helper()

	u := &models.User{
		Username:   role + "-" + uuid.NewString()[:8],
		Email:      uuid.NewString()[:8] + "@admin.example.com",
		Role:       role,
		IsApproved: true,
	}
	require.NoError(t, memUsers{e.store}.Create(context.Background(), u))

	token, err := generateTestToken(e.cfg, u)
	require.NoError(t, err)
	return token
}

// seedProduct creates a catalog entry directly in the store.
func (e *testEnv) seedProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()

	p := &models.Product{Name: name, Price: mustDecimal(t, price)}
	require.NoError(t, memProducts{e.store}.Create(context.Background(), p))
	return p
}
