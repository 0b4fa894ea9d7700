package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
)

// NewWorldsRepository returns an empty in-memory dao.WorldRepository.
func NewWorldsRepository() *WorldsRepository {
	return &WorldsRepository{worlds: make(map[uuid.UUID]dao.World)}
}

// WorldsRepository is an in-memory dao.WorldRepository.
type WorldsRepository struct {
	mu     sync.Mutex
	worlds map[uuid.UUID]dao.World
}

func (r *WorldsRepository) Close() error { return nil }

func (r *WorldsRepository) Create(ctx context.Context, w dao.World) (dao.World, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.worlds {
		if existing.Name == w.Name {
			return dao.World{}, dao.ErrConstraintViolation
		}
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return dao.World{}, err
	}
	w.ID = id
	now := time.Now()
	w.Created = now
	w.Modified = now

	r.worlds[w.ID] = w
	return w, nil
}

func (r *WorldsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.World, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.worlds[id]
	if !ok {
		return dao.World{}, dao.ErrNotFound
	}
	return w, nil
}

func (r *WorldsRepository) GetAll(ctx context.Context) ([]dao.World, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]dao.World, 0, len(r.worlds))
	for _, w := range r.worlds {
		all = append(all, w)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (r *WorldsRepository) Update(ctx context.Context, id uuid.UUID, w dao.World) (dao.World, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.worlds[id]
	if !ok {
		return dao.World{}, dao.ErrNotFound
	}
	for otherID, other := range r.worlds {
		if otherID != id && other.Name == w.Name {
			return dao.World{}, dao.ErrConstraintViolation
		}
	}

	w.ID = id
	w.Created = existing.Created
	w.Modified = time.Now()
	r.worlds[id] = w
	return w, nil
}

func (r *WorldsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.World, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.worlds[id]
	if !ok {
		return dao.World{}, dao.ErrNotFound
	}
	delete(r.worlds, id)
	return w, nil
}
