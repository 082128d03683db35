package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/repository"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They mirror the filters and error behavior
// of the real Postgres repositories closely enough for service-level tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byUsername map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byUsername: make(map[string]*model.User)}
}

func (r *stubUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.byUsername[user.Username] = &clone
	return nil
}

func (r *stubUserRepo) FindByUsername(username string) (*model.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.byUsername {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(username, hashedPassword string) error {
	u, ok := r.byUsername[username]
	if !ok {
		return model.ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

type stubClientRepo struct {
	byID map[uuid.UUID]*model.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{byID: make(map[uuid.UUID]*model.Client)}
}

func (r *stubClientRepo) Create(client *model.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	clone := *client
	r.byID[client.ID] = &clone
	return nil
}

func (r *stubClientRepo) FindByID(id uuid.UUID) (*model.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, model.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) FindByEmail(email string) (*model.Client, error) {
	for _, c := range r.byID {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, model.ErrClientNotFound
}

func (r *stubClientRepo) FindByCPF(cpf string) (*model.Client, error) {
	for _, c := range r.byID {
		if c.CPF == cpf {
			clone := *c
			return &clone, nil
		}
	}
	return nil, model.ErrClientNotFound
}

func (r *stubClientRepo) FindAll(f repository.ClientFilter) ([]model.Client, error) {
	var out []model.Client
	for _, c := range r.byID {
		if f.Name != "" && !containsFold(c.Name, f.Name) {
			continue
		}
		if f.Email != "" && !containsFold(c.Email, f.Email) {
			continue
		}
		out = append(out, *c)
	}
	return page(out, f.Offset, f.Limit), nil
}

func (r *stubClientRepo) Update(client *model.Client) error {
	if _, ok := r.byID[client.ID]; !ok {
		return model.ErrClientNotFound
	}
	clone := *client
	r.byID[client.ID] = &clone
	return nil
}

func (r *stubClientRepo) Delete(id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type stubProductRepo struct {
	byID map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	clone := *product
	r.byID[product.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindByBarcode(barcode string) (*model.Product, error) {
	for _, p := range r.byID {
		if p.Barcode == barcode {
			clone := *p
			return &clone, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (r *stubProductRepo) FindAll(f repository.ProductFilter) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.byID {
		if f.Section != "" && !containsFold(p.Section, f.Section) {
			continue
		}
		if f.MinPrice != nil && p.SalePrice < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.SalePrice > *f.MaxPrice {
			continue
		}
		if f.Available && p.Stock <= 0 {
			continue
		}
		out = append(out, *p)
	}
	return page(out, f.Offset, f.Limit), nil
}

func (r *stubProductRepo) Update(product *model.Product) error {
	if _, ok := r.byID[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	clone := *product
	r.byID[product.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

// stock returns the live stock count for assertions.
func (r *stubProductRepo) stock(id uuid.UUID) int {
	return r.byID[id].Stock
}

type stubOrderRepo struct {
	byID     map[uuid.UUID]*model.Order
	products *stubProductRepo
}

func newStubOrderRepo(products *stubProductRepo) *stubOrderRepo {
	return &stubOrderRepo{
		byID:     make(map[uuid.UUID]*model.Order),
		products: products,
	}
}

// CreateWithLines mirrors the all-or-nothing transaction of the real repo:
// every conditional decrement must hit, otherwise nothing is kept.
func (r *stubOrderRepo) CreateWithLines(order *model.Order) error {
	var decremented []uuid.UUID
	rollback := func() {
		for _, pid := range decremented {
			r.products.byID[pid].Stock++
		}
	}

	for i := range order.Lines {
		p, ok := r.products.byID[order.Lines[i].ProductID]
		if !ok || p.Stock <= 0 {
			rollback()
			return fmt.Errorf("%w: product %s", model.ErrOutOfStock, order.Lines[i].ProductID)
		}
		p.Stock--
		decremented = append(decremented, p.ID)
	}

	order.ID = uuid.New()
	for i := range order.Lines {
		order.Lines[i].ID = uuid.New()
		order.Lines[i].OrderID = order.ID
	}
	clone := cloneOrder(order)
	r.byID[order.ID] = clone
	return nil
}

func (r *stubOrderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) FindAll(f repository.OrderFilter) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.byID {
		if f.Status != "" && !containsFold(o.Status, f.Status) {
			continue
		}
		if f.ClientID != nil && o.ClientID != *f.ClientID {
			continue
		}
		if f.StartDate != nil && o.OrderDate.Format("2006-01-02") < f.StartDate.Format("2006-01-02") {
			continue
		}
		if f.EndDate != nil && o.OrderDate.Format("2006-01-02") > f.EndDate.Format("2006-01-02") {
			continue
		}
		if f.Section != "" {
			matched := false
			for _, l := range o.Lines {
				if p, ok := r.products.byID[l.ProductID]; ok && containsFold(p.Section, f.Section) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, *cloneOrder(o))
	}
	return page(out, f.Offset, f.Limit), nil
}

func (r *stubOrderRepo) UpdateStatus(id uuid.UUID, status string) error {
	o, ok := r.byID[id]
	if !ok {
		return model.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) ReplaceLines(orderID uuid.UUID, productIDs []uuid.UUID) error {
	o, ok := r.byID[orderID]
	if !ok {
		return model.ErrOrderNotFound
	}
	o.Lines = nil
	for _, pid := range productIDs {
		o.Lines = append(o.Lines, model.OrderLine{
			Base:      model.Base{ID: uuid.New()},
			OrderID:   orderID,
			ProductID: pid,
			Quantity:  1,
		})
	}
	return nil
}

func (r *stubOrderRepo) Delete(id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type stubGateway struct {
	sent    []string
	lastTo  *model.Client
	failErr error
}

func (g *stubGateway) Send(client *model.Client, message string) (*Receipt, error) {
	if g.failErr != nil {
		return nil, g.failErr
	}
	g.lastTo = client
	g.sent = append(g.sent, message)
	return &Receipt{Status: "sent", Detail: "message delivered to " + client.Name}, nil
}

func cloneOrder(o *model.Order) *model.Order {
	clone := *o
	clone.Lines = append([]model.OrderLine(nil), o.Lines...)
	return &clone
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
