package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophershop/internal/dbx"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/carts"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/inquiries"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/orders"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/products"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same constructors with a plain connection or inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
	Carts(db dbx.DBTX) carts.Repository
	Orders(db dbx.DBTX) orders.Repository
	Inquiries(db dbx.DBTX) inquiries.Repository
}
