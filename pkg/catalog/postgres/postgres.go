// Package postgres reads the product feed from a PostgreSQL table.
package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"lightshop/pkg/catalog"
)

// Schema is the table the provider reads. The storefront never writes to it.
const Schema = `CREATE TABLE IF NOT EXISTS products (
	id        INT PRIMARY KEY,
	position  INT NOT NULL DEFAULT 0,
	name      TEXT NOT NULL,
	price     INT NOT NULL,
	category  TEXT NOT NULL,
	image     TEXT NOT NULL DEFAULT '',
	features  TEXT[] NOT NULL DEFAULT '{}',
	occasions TEXT[] NOT NULL DEFAULT '{}',
	power     TEXT NOT NULL DEFAULT ''
)`

const selectProducts = `SELECT id, name, price, category, image, features, occasions, power
FROM products ORDER BY position, id`

// Provider loads products from PostgreSQL.
type Provider struct {
	db *sql.DB
}

// New creates a PostgreSQL catalog provider.
func New(db *sql.DB) *Provider {
	return &Provider{db: db}
}

// Load fetches every product ordered by position.
func (p *Provider) Load(ctx context.Context) ([]catalog.Product, error) {
	rows, err := p.db.QueryContext(ctx, selectProducts)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var (
			prod     catalog.Product
			category string
		)
		if err := rows.Scan(&prod.ID, &prod.Name, &prod.Price, &category, &prod.Image,
			pq.Array(&prod.Features), pq.Array(&prod.Occasions), &prod.Power); err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		if prod.Category, err = catalog.ParseCategory(category); err != nil {
			return nil, errors.Wrapf(err, "product %d", prod.ID)
		}
		products = append(products, prod)
	}
	return products, errors.Wrap(rows.Err(), "iterate products")
}

// Seed inserts products, keeping their slice order as position. Existing rows
// with the same id are left untouched.
func Seed(ctx context.Context, db *sql.DB, products []catalog.Product) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return errors.Wrap(err, "create products table")
	}
	for i, p := range products {
		_, err := db.ExecContext(ctx,
			`INSERT INTO products (id,position,name,price,category,image,features,occasions,power)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) ON CONFLICT (id) DO NOTHING`,
			p.ID, i, p.Name, p.Price, p.Category.String(), p.Image,
			pq.Array(p.Features), pq.Array(p.Occasions), p.Power)
		if err != nil {
			return errors.Wrapf(err, "insert product %d", p.ID)
		}
	}
	return nil
}
