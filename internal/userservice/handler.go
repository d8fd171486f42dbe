package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid username or password")
)

func NewUserService(db *sql.DB, verifier *TokenVerifier, mb common.MessageProducer, c *common.Cache) *UserService {
	return &UserService{
		m:        newUserModel(db),
		verifier: verifier,
		mb:       mb,
		c:        c,
	}
}

// CreateUser registers a new account. When an email address is supplied a
// user.created event is published so the mail service can send a welcome
// email; registration itself never waits on mail delivery.
func (s *UserService) CreateUser(ctx context.Context, username, name, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Email:    email,
		Password: Password{Plain: password},
	}

	err := u.Password.set(u.Password.Plain)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	if u.Email != "" && s.mb != nil {
		data := struct {
			Email    string
			Username string
			Name     string
		}{
			Email:    u.Email,
			Username: u.Username,
			Name:     u.Name,
		}

		msg, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}

		err = s.mb.Publish(ctx, msg, common.UserCreatedKey, common.UserExchange)
		if err != nil {
			return nil, err
		}
	}

	return &u, nil
}

// LoginUser checks the credentials and returns a signed bearer token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, expiry, err := s.verifier.Sign(user)
	if err != nil {
		return nil, err
	}

	return &AuthToken{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
		Expiry:   expiry,
	}, nil
}

// GetUserForToken verifies a raw bearer token and resolves its subject to an
// existing user. A token whose subject no longer exists fails the same way an
// invalid token does.
func (s *UserService) GetUserForToken(ctx context.Context, token string) (*User, error) {
	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyUserByToken(token)); ok {
			return cached.(*User), nil
		}
	}

	id, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.m.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyUserByToken(token), user)
	}

	return user, nil
}

// GetUserByID resolves a user id to its account.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByID(ctx, id)
}

// GetUsers lists all accounts with their blog id lists.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.getUsers(ctx)
}

// AppendBlogRef records blog ownership on the user row as part of the caller's
// transaction. Cached users go stale on mutation, so the cache is dropped.
func (s *UserService) AppendBlogRef(tx *sql.Tx, ctx context.Context, userID, blogID int) error {
	if err := s.m.appendBlogRef(tx, ctx, userID, blogID); err != nil {
		return err
	}

	if s.c != nil {
		s.c.Flush()
	}

	return nil
}

// RemoveBlogRef removes every occurrence of the blog id from the user's blog
// list as part of the caller's transaction.
func (s *UserService) RemoveBlogRef(tx *sql.Tx, ctx context.Context, userID, blogID int) error {
	if err := s.m.removeBlogRef(tx, ctx, userID, blogID); err != nil {
		return err
	}

	if s.c != nil {
		s.c.Flush()
	}

	return nil
}
