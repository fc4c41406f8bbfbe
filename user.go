package learnhub

import (
	"context"
	"errors"
	"time"

	"github.com/rs/xid"
)

type Repository interface {
	FindByName(ctx context.Context, username string) (*Account, error)
	FindByUsernameAndEmail(ctx context.Context, username, email string) (*Account, error)
	CountByUsernameAndEmail(ctx context.Context, username, email string) (int64, error)
	// Create assigns the account an ID and persists it. It returns
	// ErrDuplicateUsername when the username is already stored.
	Create(ctx context.Context, na NewAccount) (*Account, error)
}

type ID string

type Account struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Courses      []ID
	CreatedAt    time.Time
}

// NewAccount holds the normalized fields of an account that has not been stored yet.
type NewAccount struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// PublicAccount is the outward representation of an Account.
type PublicAccount struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ID        ID     `json:"id"`
}

var (
	ErrNotFound           = errors.New("account not found")
	ErrDuplicateUsername  = errors.New("username in use")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func (a *Account) Serialize() PublicAccount {
	return PublicAccount{
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		ID:        a.ID,
	}
}

func newAccountFrom(na NewAccount) *Account {
	return &Account{
		ID:           nextID(),
		Username:     na.Username,
		Email:        na.Email,
		PasswordHash: na.PasswordHash,
		FirstName:    na.FirstName,
		LastName:     na.LastName,
		CreatedAt:    time.Now().UTC(),
	}
}

func nextID() ID {
	return ID(xid.New().String())
}

//IsValidID checks if a given id is valid based on the xid library definition of a valid id
// this method should change if we ever change our uid generation library
func IsValidID(id string) bool {
	if _, err := xid.FromString(id); err != nil {
		return false
	}
	return true
}
