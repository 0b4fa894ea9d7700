package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
)

// NewPlanRunsRepository returns an empty in-memory dao.PlanRunRepository.
func NewPlanRunsRepository() *PlanRunsRepository {
	return &PlanRunsRepository{runs: make(map[uuid.UUID]dao.PlanRun)}
}

// PlanRunsRepository is an in-memory dao.PlanRunRepository.
type PlanRunsRepository struct {
	mu   sync.Mutex
	runs map[uuid.UUID]dao.PlanRun
}

func (r *PlanRunsRepository) Close() error { return nil }

func (r *PlanRunsRepository) Create(ctx context.Context, p dao.PlanRun) (dao.PlanRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := uuid.NewRandom()
	if err != nil {
		return dao.PlanRun{}, err
	}
	p.ID = id
	p.Created = time.Now()

	r.runs[p.ID] = p
	return p, nil
}

func (r *PlanRunsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.PlanRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.runs[id]
	if !ok {
		return dao.PlanRun{}, dao.ErrNotFound
	}
	return p, nil
}

func (r *PlanRunsRepository) GetAllByWorld(ctx context.Context, worldID uuid.UUID) ([]dao.PlanRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []dao.PlanRun
	for _, p := range r.runs {
		if p.WorldID == worldID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out, nil
}

func (r *PlanRunsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.PlanRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.runs[id]
	if !ok {
		return dao.PlanRun{}, dao.ErrNotFound
	}
	delete(r.runs, id)
	return p, nil
}
