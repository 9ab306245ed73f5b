package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/dbx"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/carts"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/inquiries"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/orders"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/products"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeRepoManager serves in-memory repositories regardless of the DBTX.
type fakeRepoManager struct {
	users     *users.MemoryRepository
	products  *fakeProducts
	carts     *fakeCarts
	orders    *fakeOrders
	inquiries *fakeInquiries
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:     users.NewMemoryRepository(),
		products:  &fakeProducts{byID: map[int64]models.Product{}},
		carts:     &fakeCarts{},
		orders:    &fakeOrders{byID: map[int64]models.Order{}},
		inquiries: &fakeInquiries{byID: map[int64]models.Inquiry{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Products(dbx.DBTX) products.Repository        { return m.products }
func (m *fakeRepoManager) Carts(dbx.DBTX) carts.Repository              { return m.carts }
func (m *fakeRepoManager) Orders(dbx.DBTX) orders.Repository            { return m.orders }
func (m *fakeRepoManager) Inquiries(dbx.DBTX) inquiries.Repository      { return m.inquiries }

type fakeProducts struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.Product
	offset int
	limit  int
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.byID[p.ID] = *p
	return p, nil
}

func (f *fakeProducts) Get(_ context.Context, id int64) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (f *fakeProducts) List(_ context.Context, offset, limit int) ([]*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offset, f.limit = offset, limit
	ids := make([]int64, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*models.Product, 0)
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		p := f.byID[id]
		out = append(out, &p)
	}
	return out, nil
}

func (f *fakeProducts) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.byID[p.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.ImageURL = old.ImageURL
	f.byID[p.ID] = *p
	return p, nil
}

func (f *fakeProducts) SetImage(_ context.Context, id int64, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.ImageURL = key
	f.byID[id] = p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCarts struct {
	mu     sync.Mutex
	nextID int64
	items  []models.CartItem
}

func (f *fakeCarts) Add(_ context.Context, it *models.CartItem) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	it.ID = f.nextID
	f.items = append(f.items, *it)
	return it, nil
}

func (f *fakeCarts) ListByUser(_ context.Context, userID int64) ([]*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.CartItem, 0)
	for _, it := range f.items {
		if it.UserID == userID {
			it := it
			out = append(out, &it)
		}
	}
	return out, nil
}

func (f *fakeCarts) ClearByUser(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, it := range f.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

type fakeOrders struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.Order
	offset int
	limit  int
}

func (f *fakeOrders) Create(_ context.Context, o *models.Order) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	o.ID = f.nextID
	f.byID[o.ID] = *o
	return o, nil
}

func (f *fakeOrders) Get(_ context.Context, id int64) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &o, nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID int64) ([]*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Order, 0)
	for id := int64(1); id <= f.nextID; id++ {
		if o, ok := f.byID[id]; ok && o.UserID == userID {
			out = append(out, &o)
		}
	}
	return out, nil
}

func (f *fakeOrders) List(_ context.Context, offset, limit int) ([]*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offset, f.limit = offset, limit
	out := make([]*models.Order, 0)
	for id := int64(1); id <= f.nextID; id++ {
		if o, ok := f.byID[id]; ok {
			out = append(out, &o)
		}
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id int64, statusID int) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	o.StatusID = statusID
	f.byID[id] = o
	return &o, nil
}

type fakeInquiries struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.Inquiry
	offset int
	limit  int
}

func (f *fakeInquiries) Create(_ context.Context, in *models.Inquiry) (*models.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	in.ID = f.nextID
	f.byID[in.ID] = *in
	return in, nil
}

func (f *fakeInquiries) Get(_ context.Context, id int64) (*models.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	in, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &in, nil
}

func (f *fakeInquiries) List(_ context.Context, offset, limit int) ([]*models.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offset, f.limit = offset, limit
	out := make([]*models.Inquiry, 0)
	for id := int64(1); id <= f.nextID; id++ {
		if in, ok := f.byID[id]; ok {
			out = append(out, &in)
		}
	}
	return out, nil
}
