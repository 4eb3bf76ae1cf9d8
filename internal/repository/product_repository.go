package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/websopen/web-valencio/internal/model"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns the catalog in its curated display order.
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, price, category, gradient
		 FROM products ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Gradient); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Upsert inserts or updates a product at the given display position.
func (r *ProductRepository) Upsert(ctx context.Context, p model.Product, position int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, description, price, category, gradient, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   description = EXCLUDED.description,
		   price = EXCLUDED.price,
		   category = EXCLUDED.category,
		   gradient = EXCLUDED.gradient,
		   position = EXCLUDED.position`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Gradient, position)
	return err
}
