package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/example/storefront/internal/domain"
)

// Repository is the embedded catalog and order store used when no
// upstream API is configured.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) Categories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, title, image
		FROM categories
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Image); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return categories, nil
}

func (r *Repository) Products(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, title, description, price, discont_price, image, category_id
		FROM products
		ORDER BY id
	`
	return r.queryProducts(ctx, query)
}

func (r *Repository) Product(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, title, description, price, discont_price, image, category_id
		FROM products
		WHERE id = ?
	`

	products, err := r.queryProducts(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrNotFound
	}
	return &products[0], nil
}

func (r *Repository) CategoryProducts(ctx context.Context, id int64) (*domain.Category, []domain.Product, error) {
	var category domain.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, image FROM categories WHERE id = ?`, id,
	).Scan(&category.ID, &category.Title, &category.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query category: %w", err)
	}

	query := `
		SELECT id, title, description, price, discont_price, image, category_id
		FROM products
		WHERE category_id = ?
		ORDER BY id
	`
	products, err := r.queryProducts(ctx, query, id)
	if err != nil {
		return nil, nil, err
	}

	return &category, products, nil
}

// SubmitOrder persists the order and its lines in one transaction and
// answers with the same {status, message} envelope as the upstream
// order endpoint.
func (r *Repository) SubmitOrder(ctx context.Context, order domain.OrderRequest) (domain.OrderResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	total := decimal.Zero
	for _, line := range order.Items {
		total = total.Add(line.Subtotal())
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (name, phone, email, total, created_at) VALUES (?, ?, ?, ?, ?)`,
		order.Customer.Name, order.Customer.Phone, order.Customer.Email,
		total.String(), time.Now().UTC(),
	)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("failed to insert order: %w", err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("failed to read order id: %w", err)
	}

	for _, line := range order.Items {
		var discount any
		if line.DiscountPrice.Valid {
			discount = line.DiscountPrice.Decimal.String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, title, price, discont_price, quantity)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, line.ProductID, line.Title, line.Price.String(), discount, line.Quantity,
		)
		if err != nil {
			return domain.OrderResult{}, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.OrderResult{}, fmt.Errorf("failed to commit order: %w", err)
	}

	return domain.OrderResult{Status: domain.OrderStatusOK}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Price,
			&p.DiscountPrice,
			&p.Image,
			&p.CategoryID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}
