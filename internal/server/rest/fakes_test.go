package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/server/auth"
	"github.com/dmitrijs2005/gophershop/internal/server/metrics"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophershop/internal/server/services"
)

type fakeUsers struct {
	store  *users.MemoryRepository
	hasher auth.PasswordHasher
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password too short", common.ErrorValidation)
	}
	hash, err := f.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return f.store.Create(ctx, &models.User{Username: username, Email: email, PasswordHash: hash})
}

func (f *fakeUsers) Get(ctx context.Context, id int64) (*models.User, error) {
	return f.store.FindByID(ctx, id)
}

func (f *fakeUsers) Delete(ctx context.Context, id int64) error {
	return f.store.Delete(ctx, id)
}

type fakeProducts struct {
	mu                  sync.Mutex
	items               map[int64]*models.Product
	next                int64
	lastSkip, lastLimit int
	panicOnGet          bool
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{items: map[int64]*models.Product{}}
}

func (f *fakeProducts) List(_ context.Context, skip, limit int) ([]*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSkip, f.lastLimit = skip, limit
	var out []*models.Product
	for id := int64(1); id <= f.next; id++ {
		if p, ok := f.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Get(_ context.Context, id int64) (*models.Product, error) {
	if f.panicOnGet {
		panic("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", common.ErrorValidation)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	cp := *p
	cp.ID = f.next
	f.items[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeProducts) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	f.items[p.ID] = &cp
	return &cp, nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeImages struct {
	keys map[int64]string
}

func (f *fakeImages) PresignUpload(_ context.Context, productID int64) (*services.ImageUpload, error) {
	if productID != 1 {
		return nil, common.ErrorNotFound
	}
	key := fmt.Sprintf("products/%d/img", productID)
	f.keys[productID] = key
	return &services.ImageUpload{Key: key, URL: "http://s3.local/" + key + "?put", ExpiresAt: time.Unix(0, 0)}, nil
}

func (f *fakeImages) PresignDownload(_ context.Context, productID int64) (string, error) {
	key, ok := f.keys[productID]
	if !ok {
		return "", common.ErrorNotFound
	}
	return "http://s3.local/" + key + "?get", nil
}

type fakeCarts struct {
	items []*models.CartItem
}

func (f *fakeCarts) List(_ context.Context, userID int64) ([]*models.CartItem, error) {
	var out []*models.CartItem
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCarts) Add(_ context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", common.ErrorValidation)
	}
	it := &models.CartItem{ID: int64(len(f.items) + 1), UserID: userID, ProductID: productID, Quantity: quantity}
	f.items = append(f.items, it)
	return it, nil
}

type fakeOrders struct {
	items []*models.Order
}

func (f *fakeOrders) Place(_ context.Context, userID int64, paymentID string) (*models.Order, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("%w: cart is empty", common.ErrorValidation)
	}
	o := &models.Order{ID: int64(len(f.items) + 1), UserID: userID, PaymentID: paymentID, StatusID: services.StatusPlaced, TotalCost: 300}
	f.items = append(f.items, o)
	return o, nil
}

func (f *fakeOrders) ListMine(_ context.Context, userID int64) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range f.items {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListAll(context.Context, int, int) ([]*models.Order, error) {
	return f.items, nil
}

func (f *fakeOrders) GetOwn(_ context.Context, userID, orderID int64) (*models.Order, error) {
	for _, o := range f.items {
		if o.ID == orderID && o.UserID == userID {
			return o, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeOrders) UpdateStatus(_ context.Context, orderID int64, statusID int) (*models.Order, error) {
	for _, o := range f.items {
		if o.ID == orderID {
			o.StatusID = statusID
			return o, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeInquiries struct {
	items []*models.Inquiry
}

func (f *fakeInquiries) Create(_ context.Context, userID int64, message string) (*models.Inquiry, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", common.ErrorValidation)
	}
	in := &models.Inquiry{ID: int64(len(f.items) + 1), UserID: userID, Message: message}
	f.items = append(f.items, in)
	return in, nil
}

func (f *fakeInquiries) Get(_ context.Context, id int64) (*models.Inquiry, error) {
	for _, in := range f.items {
		if in.ID == id {
			return in, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeInquiries) List(context.Context, int, int) ([]*models.Inquiry, error) {
	return f.items, nil
}

type testEnv struct {
	store     *users.MemoryRepository
	hasher    auth.PasswordHasher
	authn     *auth.Authenticator
	metrics   *metrics.Metrics
	products  *fakeProducts
	images    *fakeImages
	carts     *fakeCarts
	orders    *fakeOrders
	inquiries *fakeInquiries
	router    http.Handler
}

func newTestEnv(t *testing.T, opts ...func(*Deps)) *testEnv {
	t.Helper()

	codec, err := auth.NewCodec([]byte(strings.Repeat("k", 32)), "HS256")
	require.NoError(t, err)

	e := &testEnv{
		store:     users.NewMemoryRepository(),
		hasher:    auth.NewBcryptHasher(bcrypt.MinCost),
		metrics:   metrics.New(),
		products:  newFakeProducts(),
		images:    &fakeImages{keys: map[int64]string{}},
		carts:     &fakeCarts{},
		orders:    &fakeOrders{},
		inquiries: &fakeInquiries{},
	}
	e.authn, err = auth.NewAuthenticator(e.store, e.hasher, codec, 30*time.Minute, logging.Nop())
	require.NoError(t, err)

	d := Deps{
		Authenticator: e.authn,
		Resolver:      auth.NewResolver(codec, e.store, logging.Nop()),
		Users:         &fakeUsers{store: e.store, hasher: e.hasher},
		Products:      e.products,
		Images:        e.images,
		Carts:         e.carts,
		Orders:        e.orders,
		Inquiries:     e.inquiries,
		Metrics:       e.metrics,
		Logger:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(&d)
	}
	e.router = NewRouter(d)
	return e
}

func (e *testEnv) register(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := e.hasher.Hash(password)
	require.NoError(t, err)
	u, err := e.store.Create(context.Background(), &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) token(t *testing.T, u *models.User, ttl time.Duration) string {
	t.Helper()
	tok, err := e.authn.IssueToken(u, ttl)
	require.NoError(t, err)
	return tok.AccessToken
}

func (e *testEnv) do(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
