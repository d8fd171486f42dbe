package blogservice

import (
	"context"
	"database/sql"
	"time"
)

// Blog is a saved blog recommendation. Owner carries a join-fetched summary
// of the owning user and is nil for ownerless rows.
type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    int       `json:"-"`
	Owner     *Owner    `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Owner is the summary subset of the owning user exposed on blog reads.
type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// UserDirectory maintains the blog id list stored on each user. The blog
// service is the only caller; the two sides of the ownership relation are
// always updated inside one transaction.
type UserDirectory interface {
	AppendBlogRef(tx *sql.Tx, ctx context.Context, userID, blogID int) error
	RemoveBlogRef(tx *sql.Tx, ctx context.Context, userID, blogID int) error
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m     *BlogModel
	users UserDirectory
}
