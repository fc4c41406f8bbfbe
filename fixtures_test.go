package learnhub

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jimiolaniyan/learnhub/auth"
)

var testSigningKey = []byte("test-signing-key")

func newTestSigner() *auth.Signer {
	return auth.NewSigner(testSigningKey, time.Hour)
}

func newTestService(accounts Repository, courses CourseRepository) *service {
	return NewService(
		accounts,
		courses,
		NewPasswordHasher(bcrypt.MinCost, 0),
		NewTokenIssuer(newTestSigner()),
		zap.NewNop(),
	).(*service)
}

func aliceInput() map[string]interface{} {
	return map[string]interface{}{"username": "alice", "email": "a@x.com", "password": "secret1"}
}

var errStoreDown = errors.New("store unavailable")

// failingRepository answers every call with err.
type failingRepository struct {
	err       error
	countErr  error
	creates   int
	countHits int
}

func (f *failingRepository) FindByName(context.Context, string) (*Account, error) {
	return nil, f.err
}

func (f *failingRepository) FindByUsernameAndEmail(context.Context, string, string) (*Account, error) {
	return nil, f.err
}

func (f *failingRepository) CountByUsernameAndEmail(context.Context, string, string) (int64, error) {
	f.countHits++
	return 0, f.countErr
}

func (f *failingRepository) Create(context.Context, NewAccount) (*Account, error) {
	f.creates++
	return nil, f.err
}

type failingHasher struct{}

func (failingHasher) Hash(context.Context, string) (string, error) {
	return "", errors.New("hash failed")
}

func (failingHasher) Verify(context.Context, string, string) bool { return false }

type failingIssuer struct{}

func (failingIssuer) Issue(PublicAccount) (string, error) {
	return "", errors.New("signing failed")
}

type failingCourseRepository struct{}

func (failingCourseRepository) FindByIDs(context.Context, []ID) ([]Course, error) {
	return nil, errStoreDown
}

func (failingCourseRepository) Store(context.Context, *Course) error { return errStoreDown }
