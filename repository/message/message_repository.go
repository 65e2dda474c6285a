package message

import (
	"context"

	"github.com/greengarden/greenery/model"
	"github.com/greengarden/greenery/utils/errors"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type MessageRepository interface {
	Insert(ctx context.Context, data *model.MessageEntity) (*model.MessageEntity, error)
	List(ctx context.Context) ([]model.MessageEntity, error)
	Delete(ctx context.Context, id uint64) error
}

func NewMessageRepository(conn *sqlx.DB) MessageRepository {
	return &SQL{conn: conn}
}

const (
	insertMessageQuery = `INSERT INTO admin_messages (sender_id, name, email, body, created_at) VALUES (?, ?, ?, ?, NOW())`
	listMessagesQuery  = `SELECT id, sender_id, name, email, body, created_at FROM admin_messages ORDER BY created_at DESC, id DESC`
	deleteMessageQuery = `DELETE FROM admin_messages WHERE id = ?`
)

func (s *SQL) Insert(ctx context.Context, data *model.MessageEntity) (*model.MessageEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertMessageQuery, data.SenderID, data.Name, data.Email, data.Body)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) List(ctx context.Context) ([]model.MessageEntity, error) {
	rows, err := s.conn.QueryxContext(ctx, listMessagesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.MessageEntity, 0)
	for rows.Next() {
		var it model.MessageEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	res, err := s.conn.ExecContext(ctx, deleteMessageQuery, id)
	return errors.VerifyOneRow(res, err)
}
