package learnhub

import (
	"context"
	"sync"
)

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[ID]*Account
	byName   map[string]ID
}

func NewAccountRepository() Repository {
	return &accountRepository{accounts: map[ID]*Account{}, byName: map[string]ID{}}
}

func (repo *accountRepository) Create(_ context.Context, na NewAccount) (*Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.byName[na.Username]; ok {
		return nil, ErrDuplicateUsername
	}

	acc := newAccountFrom(na)
	repo.accounts[acc.ID] = acc
	repo.byName[acc.Username] = acc.ID

	c := *acc
	return &c, nil
}

func (repo *accountRepository) FindByName(_ context.Context, username string) (*Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if id, ok := repo.byName[username]; ok {
		c := *repo.accounts[id]
		return &c, nil
	}
	return nil, ErrNotFound
}

func (repo *accountRepository) FindByUsernameAndEmail(_ context.Context, username, email string) (*Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, v := range repo.accounts {
		if v.Username == username && v.Email == email {
			c := *v
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (repo *accountRepository) CountByUsernameAndEmail(_ context.Context, username, email string) (int64, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var n int64
	for _, v := range repo.accounts {
		if v.Username == username && v.Email == email {
			n++
		}
	}
	return n, nil
}

// linkCourse attaches a course to an account. Enrolment lives outside this
// service; the in-memory store exposes it for fixtures.
func (repo *accountRepository) linkCourse(username string, id ID) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	accID, ok := repo.byName[username]
	if !ok {
		return ErrNotFound
	}
	acc := repo.accounts[accID]
	acc.Courses = append(acc.Courses, id)
	return nil
}

type courseRepository struct {
	mu      sync.RWMutex
	courses map[ID]Course
}

func NewCourseRepository() CourseRepository {
	return &courseRepository{courses: map[ID]Course{}}
}

func (repo *courseRepository) Store(_ context.Context, c *Course) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if c.ID == "" {
		c.ID = nextID()
	}
	repo.courses[c.ID] = *c
	return nil
}

func (repo *courseRepository) FindByIDs(_ context.Context, ids []ID) ([]Course, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var found []Course
	for _, id := range ids {
		if c, ok := repo.courses[id]; ok {
			found = append(found, c)
		}
	}
	return orderByIDs(ids, found), nil
}
