// Package rest is the HTTP transport of the shop. It owns routing, bearer
// token extraction, login throttling and the mapping of service errors onto
// status codes. Business rules live in the services and auth packages.
package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/server/auth"
	"github.com/dmitrijs2005/gophershop/internal/server/metrics"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/dmitrijs2005/gophershop/internal/server/services"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (auth.Token, error)
}

type SessionResolver interface {
	Resolve(ctx context.Context, token string) auth.Session
}

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type ProductService interface {
	List(ctx context.Context, skip, limit int) ([]*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ImageService interface {
	PresignUpload(ctx context.Context, productID int64) (*services.ImageUpload, error)
	PresignDownload(ctx context.Context, productID int64) (string, error)
}

type CartService interface {
	List(ctx context.Context, userID int64) ([]*models.CartItem, error)
	Add(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error)
}

type OrderService interface {
	Place(ctx context.Context, userID int64, paymentID string) (*models.Order, error)
	ListMine(ctx context.Context, userID int64) ([]*models.Order, error)
	ListAll(ctx context.Context, skip, limit int) ([]*models.Order, error)
	GetOwn(ctx context.Context, userID, orderID int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, statusID int) (*models.Order, error)
}

type InquiryService interface {
	Create(ctx context.Context, userID int64, message string) (*models.Inquiry, error)
	Get(ctx context.Context, id int64) (*models.Inquiry, error)
	List(ctx context.Context, skip, limit int) ([]*models.Inquiry, error)
}

// Deps is everything the router needs. Ready may be nil, in which case
// /readyz always reports ready.
type Deps struct {
	Authenticator Authenticator
	Resolver      SessionResolver
	Users         UserService
	Products      ProductService
	Images        ImageService
	Carts         CartService
	Orders        OrderService
	Inquiries     InquiryService

	Metrics   *metrics.Metrics
	Logger    logging.Logger
	LoginRPM  int
	Ready     func(ctx context.Context) error
	ReadyWait time.Duration
}

// Handler holds the route handlers. Build one with NewRouter.
type Handler struct {
	authn     Authenticator
	resolver  SessionResolver
	users     UserService
	products  ProductService
	images    ImageService
	carts     CartService
	orders    OrderService
	inquiries InquiryService

	metrics   *metrics.Metrics
	log       logging.Logger
	limiter   *RateLimiter
	ready     func(ctx context.Context) error
	readyWait time.Duration
}

func newHandler(d Deps) *Handler {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	m := d.Metrics
	if m == nil {
		m = metrics.New()
	}
	wait := d.ReadyWait
	if wait <= 0 {
		wait = 2 * time.Second
	}
	return &Handler{
		authn:     d.Authenticator,
		resolver:  d.Resolver,
		users:     d.Users,
		products:  d.Products,
		images:    d.Images,
		carts:     d.Carts,
		orders:    d.Orders,
		inquiries: d.Inquiries,
		metrics:   m,
		log:       log.With("module", "http"),
		limiter:   NewRateLimiter(d.LoginRPM),
		ready:     d.Ready,
		readyWait: wait,
	}
}
