package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/salesapp/internal/domain"
	"github.com/example/salesapp/internal/models"
)

// In-memory repository fakes. They mirror the conditional-update semantics of
// the postgres implementations, version checks included, so the services can
// be exercised without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) ListAdmins(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if u.Role == models.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeOtpRepo struct {
	mu    sync.Mutex
	codes []models.OtpCode
}

func newFakeOtpRepo() *fakeOtpRepo {
	return &fakeOtpRepo{}
}

func (r *fakeOtpRepo) Create(ctx context.Context, code *models.OtpCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	code.CreatedAt = time.Now()
	r.codes = append(r.codes, *code)
	return nil
}

func (r *fakeOtpRepo) GetValid(ctx context.Context, email, code string, now time.Time) (*models.OtpCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Newest first, matching the ORDER BY created_at DESC of the real store.
	for i := len(r.codes) - 1; i >= 0; i-- {
		c := r.codes[i]
		if c.Email == email && c.Code == code && !c.Used && c.ExpiresAt.After(now) {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeOtpRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.codes {
		if r.codes[i].ID == id {
			if r.codes[i].Used {
				return domain.ErrConflict
			}
			r.codes[i].Used = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOtpRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.OtpCode
	var removed int64
	for _, c := range r.codes {
		if c.Used || !c.ExpiresAt.After(now) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	r.codes = kept
	return removed, nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uuid.UUID]models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]models.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.UserID == userID {
			c := c
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, limit, offset int) ([]models.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]models.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *fakeProductRepo) List(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]models.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	r.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	out := cloneOrder(o)
	return &out, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.ID]
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
	r.orders[o.ID] = stored
	o.Version = stored.Version
	return nil
}

func (r *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Order{}
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	return out, int64(len(out)), nil
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

// recordingMailer captures sent codes instead of dispatching mail.
type recordingMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	codes map[string]string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{codes: make(map[string]string)}
}

func (m *recordingMailer) SendCode(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, email)
	m.codes[email] = code
	return nil
}

func (m *recordingMailer) lastCode(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}
