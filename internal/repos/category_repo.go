package repos

import (
	"database/sql"

	"maboutique/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT id, name FROM categories ORDER BY name`)
	return out, err
}

// Get loads a category with its owned products.
func (r *CategoryRepo) Get(id int64) (domain.Category, error) {
	var c domain.Category
	if err := r.db.Get(&c, `SELECT id, name FROM categories WHERE id=?`, id); err != nil {
		return domain.Category{}, err
	}
	err := r.db.Select(&c.Products, `
		SELECT id, name, COALESCE(description,'') AS description, price,
		       image_url, stock, category_id
		FROM products WHERE category_id=? ORDER BY id`, id)
	return c, err
}

func (r *CategoryRepo) Insert(c *domain.Category) error {
	res, err := r.db.Exec(`INSERT INTO categories(name) VALUES(?)`, c.Name)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

// Delete removes the category; products cascade at the store level.
func (r *CategoryRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
