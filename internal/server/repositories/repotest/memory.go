// Package repotest provides an in-memory RepositoryManager for tests of the
// layers above storage.
package repotest

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
)

// Store keeps users and reviews in maps guarded by one mutex. It satisfies
// repomanager.RepositoryManager.
type Store struct {
	mu      sync.Mutex
	seq     int
	clock   time.Time
	users   map[string]models.User
	reviews map[string]models.Review

	// PingErr is returned by Ping when set.
	PingErr error
}

var _ repomanager.RepositoryManager = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:   map[string]models.User{},
		reviews: map[string]models.Review{},
	}
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return prefix + "-" + strconv.Itoa(s.seq)
}

func (s *Store) Users() users.Repository     { return userRepo{s} }
func (s *Store) Reviews() reviews.Repository { return reviewRepo{s} }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repomanager.Repositories) error) error {
	return fn(ctx, s)
}

func (s *Store) RunMigrations(context.Context) error { return nil }
func (s *Store) Ping(context.Context) error          { return s.PingErr }
func (s *Store) Close(context.Context) error         { return nil }

// ReviewCount reports how many reviews are stored.
func (s *Store) ReviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

// UserCount reports how many users are stored.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type userRepo struct{ s *Store }

func (r userRepo) taken(u *models.User) bool {
	for id, other := range r.s.users {
		if id == u.ID {
			continue
		}
		if other.UserName == u.UserName || other.Email == u.Email {
			return true
		}
	}
	return false
}

func (r userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.taken(user) {
		return nil, common.ErrorAlreadyExists
	}
	u := *user
	u.ID = r.s.nextID("user")
	u.CreatedAt = r.s.tick()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = u
	return &u, nil
}

func (r userRepo) find(match func(models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			out := u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.UserName == username })
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r userRepo) FindConflicts(ctx context.Context, username, email, excludeID string) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.User
	for id, u := range r.s.users {
		if id == excludeID {
			continue
		}
		if u.UserName == username || u.Email == email {
			found := u
			out = append(out, &found)
		}
	}
	return out, nil
}

func (r userRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.users[user.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if r.taken(user) {
		return nil, common.ErrorAlreadyExists
	}
	cur.UserName = user.UserName
	cur.Email = user.Email
	cur.PasswordHash = user.PasswordHash
	cur.UpdatedAt = r.s.tick()
	r.s.users[cur.ID] = cur
	out := cur
	return &out, nil
}

func (r userRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	return nil
}

type reviewRepo struct{ s *Store }

func (r reviewRepo) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv := *review
	rv.ID = r.s.nextID("review")
	rv.CreatedAt = r.s.tick()
	rv.UpdatedAt = rv.CreatedAt
	r.s.reviews[rv.ID] = rv
	return &rv, nil
}

func (r reviewRepo) Get(ctx context.Context, id string) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rv, nil
}

func (r reviewRepo) List(ctx context.Context, filter models.ReviewFilter) ([]*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Review{}
	for _, rv := range r.s.reviews {
		if filter.BookID != "" && rv.BookID != filter.BookID {
			continue
		}
		if filter.UserID != "" && rv.UserID != filter.UserID {
			continue
		}
		found := rv
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r reviewRepo) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.reviews[review.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cur.Rating = review.Rating
	cur.Comment = review.Comment
	cur.UpdatedAt = r.s.tick()
	r.s.reviews[cur.ID] = cur
	out := cur
	return &out, nil
}

func (r reviewRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

func (r reviewRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, rv := range r.s.reviews {
		if rv.UserID == userID {
			delete(r.s.reviews, id)
			n++
		}
	}
	return n, nil
}
