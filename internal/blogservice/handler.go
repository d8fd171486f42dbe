package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

var (
	ErrNotOwner = errors.New("only the creator can delete a blog")
)

func NewBlogService(db *sql.DB, users UserDirectory) *BlogService {
	return &BlogService{m: newBlogModel(db), users: users}
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// CreateBlog inserts a blog owned by the given user and appends its id to the
// user's blog list. Both writes share one transaction so the ownership
// relation never ends up half-recorded. Likes defaults to zero when omitted;
// an explicit negative value is a validation error, not a default.
func (s *BlogService) CreateBlog(ctx context.Context, user *userservice.User, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateAuthor(v, req.Author)
	validateURL(v, req.URL)
	if req.Likes != nil {
		validateLikes(v, *req.Likes)
	}
	validateInt(v, user.ID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		UserID: user.ID,
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	err = s.m.insert(tx, ctx, &blog)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	err = s.users.AppendBlogRef(tx, ctx, user.ID, blog.ID)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.m.getBlogByID(ctx, blog.ID)
}

// GetBlogByID returns a blog with its owner summary populated.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogByID(ctx, id)
}

// GetBlogs returns every blog with owner summaries populated.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.getBlogs(ctx)
}

type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// UpdateBlog applies the fields present in the request to the blog with the
// given id. A nil field is left untouched; a present-but-empty string is
// rejected. An unknown id is not an error: the result is (nil, nil) and the
// HTTP layer answers with a null body.
//
// No authentication happens here. That asymmetry with create/delete is a
// deliberate carry-over from the behavior this service replaces.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Author != nil {
		validateAuthor(v, *req.Author)
	}
	if req.URL != nil {
		validateURL(v, *req.URL)
	}
	if req.Likes != nil {
		validateLikes(v, *req.Likes)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.updateBlog(ctx, id, req.Title, req.Author, req.URL, req.Likes)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return nil, nil
		default:
			return nil, err
		}
	}

	return s.m.getBlogByID(ctx, id)
}

// DeleteBlog removes a blog and drops its id from the owner's blog list in
// one transaction. Only the creator may delete; a blog without an owner is
// not deletable by anyone. Deleting an absent id succeeds without touching
// anything, so repeated deletes converge on the same outcome.
func (s *BlogService) DeleteBlog(ctx context.Context, user *userservice.User, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, user.ID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return nil
		default:
			return err
		}
	}

	if blog.UserID == 0 || blog.UserID != user.ID {
		return ErrNotOwner
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = s.m.deleteBlog(tx, ctx, id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	err = s.users.RemoveBlogRef(tx, ctx, user.ID, id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
