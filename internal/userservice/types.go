package userservice

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	// TokenTime is how long a signed login token stays valid.
	TokenTime time.Duration = 7 * 24 * time.Hour
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m        *UserModel
	verifier *TokenVerifier
	mb       common.MessageProducer
	c        *common.Cache
}

type UserModel struct {
	db *sql.DB
}

// User is an account that can own blogs. Blogs holds the ids of the owned
// blogs in append order and mirrors blogs.user_id; only the blog service
// mutates it.
type User struct {
	ID        int           `json:"id"`
	Username  string        `json:"username"`
	Name      string        `json:"name,omitempty"`
	Email     string        `json:"email,omitempty"`
	Password  Password      `json:"-"`
	Blogs     pq.Int64Array `json:"blogs"`
	CreatedAt time.Time     `json:"created_at"`
}

func (u *User) IsAnonymous() bool {
	return u.ID == 0
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// AuthToken is the login response payload: a signed bearer token plus the
// identity it was issued for.
type AuthToken struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Name     string    `json:"name,omitempty"`
	Expiry   time.Time `json:"expiry"`
}
