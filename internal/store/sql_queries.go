package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Deadmanswitch/encryption/models"
)

const (
	createUser = `INSERT INTO users (login, name, salt, fingerprint)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, name, salt, fingerprint, created_at;`

	findUserByLogin = `SELECT user_id, login, name, salt, fingerprint, created_at
    FROM users
    WHERE login = $1;`

	insertItem = `INSERT INTO items (id, user_id, name, content_type, salt, fingerprint, size, chunk_count)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING created_at;`

	getItem = `SELECT id, user_id, name, content_type, salt, fingerprint, size, chunk_count, created_at
    FROM items
    WHERE user_id = $1 AND id = $2;`

	insertChunk = `INSERT INTO chunks (item_id, seq, data)
    SELECT i.id, $3, $4
    FROM items i
    WHERE i.user_id = $1 AND i.id = $2
    RETURNING item_id;`

	getChunks = `SELECT c.item_id, c.seq, c.data
    FROM chunks c
    JOIN items i ON i.id = c.item_id
    WHERE i.user_id = $1 AND c.item_id = $2
    ORDER BY c.seq;`
)

// buildListItemsQuery assembles the item listing query for the given filter.
// Filtering is always applied by user_id; content type and name prefix
// clauses are added only when the corresponding filter field is non-empty.
func buildListItemsQuery(userID int64, filter models.ItemListFilter) (string, []any, error) {
	builder := sq.Select("id", "user_id", "name", "content_type", "salt", "fingerprint", "size", "chunk_count", "created_at").
		From("items").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.ContentType != "" {
		builder = builder.Where(sq.Eq{"content_type": filter.ContentType})
	}

	if filter.NamePrefix != "" {
		builder = builder.Where(sq.Like{"name": filter.NamePrefix + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
