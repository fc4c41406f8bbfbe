package learnhub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// createTimeout bounds an account insert that has been detached from its request.
const createTimeout = 10 * time.Second

type Service interface {
	RegisterAccount(ctx context.Context, input map[string]interface{}) (*RegisteredAccount, error)
	ValidateCredentials(ctx context.Context, username, password string) (string, error)
	GetAccount(ctx context.Context, username string) (PublicAccount, error)
	GetAccountCourses(ctx context.Context, username string) ([]PublicCourse, error)
}

// RegisteredAccount is the response to a successful registration.
type RegisteredAccount struct {
	PublicAccount
	AuthToken string `json:"authToken"`
}

type service struct {
	accounts Repository
	courses  CourseRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	log      *zap.Logger
}

func NewService(accounts Repository, courses CourseRepository, hasher PasswordHasher, tokens TokenIssuer, log *zap.Logger) Service {
	return &service{accounts: accounts, courses: courses, hasher: hasher, tokens: tokens, log: log}
}

func (svc *service) RegisterAccount(ctx context.Context, input map[string]interface{}) (*RegisteredAccount, error) {
	f, err := Validate(input)
	if err != nil {
		return nil, err
	}

	if err := svc.verifyNotInUse(ctx, f.Username, f.Email); err != nil {
		return nil, err
	}

	hash, err := svc.hasher.Hash(ctx, f.Password)
	if err != nil {
		svc.log.Error("hashing password failed", zap.String("username", f.Username), zap.Error(err))
		return nil, err
	}

	// The insert must finish or fail as a whole even if the client goes away.
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), createTimeout)
	defer cancel()

	acc, err := svc.accounts.Create(cctx, NewAccount{
		Username:     f.Username,
		Email:        f.Email,
		PasswordHash: hash,
		FirstName:    f.FirstName,
		LastName:     f.LastName,
	})
	if errors.Is(err, ErrDuplicateUsername) {
		return nil, conflictError()
	}
	if err != nil {
		svc.log.Error("error saving account", zap.String("username", f.Username), zap.Error(err))
		return nil, fmt.Errorf("error saving account: %w", err)
	}

	p := acc.Serialize()
	token, err := svc.tokens.Issue(p)
	if err != nil {
		svc.log.Error("issuing token failed", zap.String("id", string(acc.ID)), zap.Error(err))
		return nil, err
	}

	svc.log.Info("account registered", zap.String("id", string(acc.ID)), zap.String("username", acc.Username))
	return &RegisteredAccount{PublicAccount: p, AuthToken: token}, nil
}

// verifyNotInUse rejects a (username, email) pair that is already stored.
// A reused username with a different email gets through here and is caught
// by the unique index on create.
func (svc *service) verifyNotInUse(ctx context.Context, username, email string) error {
	n, err := svc.accounts.CountByUsernameAndEmail(ctx, username, email)
	if err != nil {
		svc.log.Error("counting accounts failed", zap.String("username", username), zap.Error(err))
		return fmt.Errorf("error checking username: %w", err)
	}
	if n > 0 {
		return conflictError()
	}
	return nil
}

func (svc *service) ValidateCredentials(ctx context.Context, username, password string) (string, error) {
	acc, err := svc.findAccount(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !svc.hasher.Verify(ctx, password, acc.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Issue(acc.Serialize())
	if err != nil {
		svc.log.Error("issuing token failed", zap.String("id", string(acc.ID)), zap.Error(err))
		return "", err
	}
	return token, nil
}

func (svc *service) GetAccount(ctx context.Context, username string) (PublicAccount, error) {
	acc, err := svc.findAccount(ctx, username)
	if err != nil {
		return PublicAccount{}, err
	}
	return acc.Serialize(), nil
}

func (svc *service) GetAccountCourses(ctx context.Context, username string) ([]PublicCourse, error) {
	acc, err := svc.findAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	courses, err := svc.courses.FindByIDs(ctx, acc.Courses)
	if err != nil {
		svc.log.Error("resolving courses failed", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("error finding courses: %w", err)
	}

	out := make([]PublicCourse, 0, len(courses))
	for i := range courses {
		out = append(out, courses[i].Serialize())
	}
	return out, nil
}

func (svc *service) findAccount(ctx context.Context, username string) (*Account, error) {
	acc, err := svc.accounts.FindByName(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		svc.log.Error("finding account failed", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("error finding account: %w", err)
	}
	return acc, nil
}
