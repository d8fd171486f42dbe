package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) insert(tx *sql.Tx, ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := tx.QueryRowContext(ctx, query, b.Title, b.Author, b.URL, b.Likes, b.UserID).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

func scanBlog(row interface{ Scan(...any) error }) (*Blog, error) {
	var (
		blog      Blog
		ownerID   sql.NullInt64
		ownerUser sql.NullString
		ownerName sql.NullString
	)

	err := row.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &ownerID, &blog.CreatedAt, &blog.UpdatedAt, &ownerUser, &ownerName)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		blog.UserID = int(ownerID.Int64)
		blog.Owner = &Owner{
			ID:       int(ownerID.Int64),
			Username: ownerUser.String,
			Name:     ownerName.String,
		}
	}

	return &blog, nil
}

// getBlogByID fetches a blog with its owner summary join-fetched from the
// users table. Ownerless blogs come back with a nil Owner.
func (m *BlogModel) getBlogByID(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at, u.username, u.name
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at, u.username, u.name
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id
		ORDER BY b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// updateBlog applies the non-nil fields in place. A nil pointer leaves the
// column untouched via COALESCE; ownership is never part of the update.
func (m *BlogModel) updateBlog(ctx context.Context, id int, title, author, url *string, likes *int) error {
	query := `
		UPDATE blogs
		SET title = COALESCE($1, title),
			author = COALESCE($2, author),
			url = COALESCE($3, url),
			likes = COALESCE($4, likes),
			updated_at = now()
		WHERE id = $5
		RETURNING id`

	err := m.db.QueryRowContext(ctx, query, title, author, url, likes, id).Scan(&id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(tx *sql.Tx, ctx context.Context, id int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	_, err := tx.ExecContext(ctx, query, id)
	return err
}
