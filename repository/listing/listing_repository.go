package listing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/greengarden/greenery/constant"
	"github.com/greengarden/greenery/model"
	"github.com/greengarden/greenery/utils/errors"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

// ListingRepository is the store boundary for one call's partition. Every
// statement is scoped to a single category table; rows never cross
// partitions. Writes expected to touch one row return
// errors.ErrNoRowsAffected when the store accepted the call but changed
// nothing.
type ListingRepository interface {
	Insert(ctx context.Context, category constant.Category, data *model.ListingEntity) (*model.ListingEntity, error)
	ListByCategory(ctx context.Context, category constant.Category) ([]model.ListingEntity, error)
	GetByID(ctx context.Context, category constant.Category, id uint64) (*model.ListingEntity, error)
	SetApproved(ctx context.Context, category constant.Category, id uint64) error
	UpdateFields(ctx context.Context, category constant.Category, id uint64, name string, price float64) error
	DeleteByOwner(ctx context.Context, category constant.Category, id, ownerID uint64) error
	Delete(ctx context.Context, category constant.Category, id uint64) error
}

func NewListingRepository(conn *sqlx.DB) ListingRepository {
	return &SQL{conn: conn}
}

// listingRow keeps the approved column raw; legacy tables store it as bool,
// tinyint, text or not at all, and the normalizer decides at the boundary.
type listingRow struct {
	ID        uint64         `db:"id"`
	Name      string         `db:"name"`
	Price     float64        `db:"price"`
	ImageURL  sql.NullString `db:"image_url"`
	UserID    uint64         `db:"user_id"`
	Approved  any            `db:"approved"`
	CreatedAt sql.NullTime   `db:"created_at"`
}

func (r *listingRow) toEntity(category constant.Category) model.ListingEntity {
	e := model.ListingEntity{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		ImageURL: r.ImageURL.String,
		OwnerID:  r.UserID,
		State:    model.NormalizeApproval(r.Approved),
		Category: category,
	}
	if r.CreatedAt.Valid {
		e.CreatedAt = r.CreatedAt.Time
	}
	return e
}

// table maps the partition to its table name. Callers validate the category
// before it reaches a query string.
func table(category constant.Category) (string, error) {
	if !category.Valid() {
		return "", fmt.Errorf("unknown category %q", category)
	}
	return string(category), nil
}

func (s *SQL) Insert(ctx context.Context, category constant.Category, data *model.ListingEntity) (*model.ListingEntity, error) {
	tbl, err := table(category)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`INSERT INTO %s (name, price, image_url, user_id, approved, created_at) VALUES (?, ?, ?, ?, false, NOW())`, tbl)
	result, err := s.conn.ExecContext(ctx, query, data.Name, data.Price, data.ImageURL, data.OwnerID)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	data.State = model.StatePending
	data.Category = category
	return data, nil
}

func (s *SQL) ListByCategory(ctx context.Context, category constant.Category) ([]model.ListingEntity, error) {
	tbl, err := table(category)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, name, price, image_url, user_id, approved, created_at FROM %s ORDER BY created_at DESC, id DESC`, tbl)
	rows, err := s.conn.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ListingEntity, 0)
	for rows.Next() {
		var row listingRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		items = append(items, row.toEntity(category))
	}
	return items, rows.Err()
}

func (s *SQL) GetByID(ctx context.Context, category constant.Category, id uint64) (*model.ListingEntity, error) {
	tbl, err := table(category)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, name, price, image_url, user_id, approved, created_at FROM %s WHERE id = ?`, tbl)
	var row listingRow
	if err := s.conn.QueryRowxContext(ctx, query, id).StructScan(&row); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	entity := row.toEntity(category)
	return &entity, nil
}

func (s *SQL) SetApproved(ctx context.Context, category constant.Category, id uint64) error {
	tbl, err := table(category)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET approved = true WHERE id = ? AND approved = false`, tbl)
	res, execErr := s.conn.ExecContext(ctx, query, id)
	return errors.VerifyOneRow(res, execErr)
}

func (s *SQL) UpdateFields(ctx context.Context, category constant.Category, id uint64, name string, price float64) error {
	tbl, err := table(category)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET name = ?, price = ? WHERE id = ?`, tbl)
	res, execErr := s.conn.ExecContext(ctx, query, name, price, id)
	return errors.VerifyOneRow(res, execErr)
}

func (s *SQL) DeleteByOwner(ctx context.Context, category constant.Category, id, ownerID uint64) error {
	tbl, err := table(category)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, tbl)
	res, execErr := s.conn.ExecContext(ctx, query, id, ownerID)
	return errors.VerifyOneRow(res, execErr)
}

func (s *SQL) Delete(ctx context.Context, category constant.Category, id uint64) error {
	tbl, err := table(category)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, tbl)
	res, execErr := s.conn.ExecContext(ctx, query, id)
	return errors.VerifyOneRow(res, execErr)
}
