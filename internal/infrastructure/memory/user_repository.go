package memory

import (
	"context"
	"time"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	"github.com/oksasatya/fitbalance-api/internal/domain/repository"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

// taken reports whether another user already holds the email or username.
func (r *UserRepository) taken(u *entity.User) bool {
	for id, other := range r.s.users {
		if id == u.ID {
			continue
		}
		if fold(other.Email) == fold(u.Email) || fold(other.Username) == fold(u.Username) {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.taken(u) {
		return repository.ErrConflict
	}
	now := time.Now()
	u.ID = newID()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	cp.Menu = nil
	r.s.users[u.ID] = &cp
	r.s.userOrder = append(r.s.userOrder, u.ID)
	return nil
}

func (r *UserRepository) find(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range r.s.userOrder {
		if u := r.s.users[id]; match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return fold(u.Email) == fold(email) })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return fold(u.Username) == fold(username) })
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.User, 0, len(r.s.userOrder))
	for _, id := range r.s.userOrder {
		out = append(out, *r.s.users[id])
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.taken(u) {
		return repository.ErrConflict
	}
	u.UpdatedAt = time.Now()
	u.CreatedAt = cur.CreatedAt
	cp := *u
	cp.Menu = nil
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepository) DeleteByID(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	delete(r.s.menus, id)
	for i, v := range r.s.userOrder {
		if v == id {
			r.s.userOrder = append(r.s.userOrder[:i], r.s.userOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *UserRepository) DeleteAll(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users = make(map[string]*entity.User)
	r.s.menus = make(map[string][]string)
	r.s.userOrder = nil
	return nil
}

func (r *UserRepository) GetMenu(_ context.Context, userID string) ([]entity.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.menus[userID]
	out := make([]entity.Recipe, 0, len(ids))
	for _, id := range ids {
		if rc, ok := r.s.recipes[id]; ok {
			out = append(out, cloneRecipe(rc))
		}
	}
	return out, nil
}

func (r *UserRepository) ReplaceMenu(_ context.Context, userID string, recipeIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return repository.ErrNotFound
	}
	for _, id := range recipeIDs {
		if _, ok := r.s.recipes[id]; !ok {
			return repository.ErrNotFound
		}
	}
	if len(recipeIDs) == 0 {
		delete(r.s.menus, userID)
		return nil
	}
	ids := make([]string, len(recipeIDs))
	copy(ids, recipeIDs)
	r.s.menus[userID] = ids
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
