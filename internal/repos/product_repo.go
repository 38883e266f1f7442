package repos

import (
	"database/sql"

	"maboutique/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// productRow flattens the category join for sqlx scanning.
type productRow struct {
	domain.Product
	CatID   int64  `db:"cat_id"`
	CatName string `db:"cat_name"`
}

func (r productRow) toDomain() domain.Product {
	p := r.Product
	p.Category = &domain.Category{ID: r.CatID, Name: r.CatName}
	return p
}

const productJoin = `
  SELECT
    p.id, p.name, COALESCE(p.description,'') AS description, p.price,
    p.image_url, p.stock, p.category_id,
    c.id AS cat_id, c.name AS cat_name
  FROM products p
  JOIN categories c ON c.id = p.category_id
`

// List returns every product joined with its category, in insertion order.
func (r *ProductRepo) List() ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, productJoin+` ORDER BY p.id`); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ProductRepo) ListByCategory(categoryID int64) ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, productJoin+` WHERE p.category_id = ? ORDER BY p.id`, categoryID); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var row productRow
	if err := r.db.Get(&row, productJoin+` WHERE p.id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	return row.toDomain(), nil
}

// GetByIDs fetches the products for the given ids in one query. Missing ids
// are simply absent from the result.
func (r *ProductRepo) GetByIDs(ids []int64) (map[int64]domain.Product, error) {
	out := make(map[int64]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(productJoin+` WHERE p.id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var rows []productRow
	if err := r.db.Select(&rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.Product.ID] = row.toDomain()
	}
	return out, nil
}

func (r *ProductRepo) Insert(p *domain.Product) error {
	if p.ImageURL == "" {
		p.ImageURL = domain.PlaceholderImage
	}
	res, err := r.db.Exec(`
		INSERT INTO products(category_id,name,description,price,image_url,stock)
		VALUES(?,?,?,?,?,?)`,
		p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.Stock)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// Update rewrites the full row. Returns sql.ErrNoRows when the product
// vanished under a concurrent delete.
func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET category_id=?, name=?, description=?, price=?, image_url=?, stock=?,
		    updated_at=CURRENT_TIMESTAMP
		WHERE id=?`,
		p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.Stock, p.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ProductRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
