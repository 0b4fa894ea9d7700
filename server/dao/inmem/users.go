package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
)

// NewUsersRepository returns an empty in-memory dao.UserRepository.
func NewUsersRepository() *UsersRepository {
	return &UsersRepository{
		users:   make(map[uuid.UUID]dao.User),
		byUname: make(map[string]uuid.UUID),
	}
}

// UsersRepository is an in-memory dao.UserRepository, grounded on the
// teacher's InMemoryUsersRepository.
type UsersRepository struct {
	mu      sync.Mutex
	users   map[uuid.UUID]dao.User
	byUname map[string]uuid.UUID
}

func (r *UsersRepository) Close() error { return nil }

func (r *UsersRepository) Create(ctx context.Context, u dao.User) (dao.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUname[u.Username]; ok {
		return dao.User{}, dao.ErrConstraintViolation
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return dao.User{}, err
	}
	u.ID = id
	u.Created = time.Now()

	r.users[u.ID] = u
	r.byUname[u.Username] = u.ID
	return u, nil
}

func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (dao.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUname[username]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}
	return r.users[id], nil
}

func (r *UsersRepository) GetAll(ctx context.Context) ([]dao.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]dao.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	return all, nil
}

func (r *UsersRepository) Update(ctx context.Context, id uuid.UUID, u dao.User) (dao.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[id]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}
	if u.Username != existing.Username {
		if _, taken := r.byUname[u.Username]; taken {
			return dao.User{}, dao.ErrConstraintViolation
		}
		delete(r.byUname, existing.Username)
	}

	u.ID = id
	r.users[id] = u
	r.byUname[u.Username] = id
	return u, nil
}

func (r *UsersRepository) Delete(ctx context.Context, id uuid.UUID) (dao.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}
	delete(r.users, id)
	delete(r.byUname, u.Username)
	return u, nil
}
