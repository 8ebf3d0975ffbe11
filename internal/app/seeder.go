package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"lightbnb/internal/adapters/observability"
	"lightbnb/internal/domain"
)

// SeedUser is a fixture user keyed by its id in the fixture file.
type SeedUser struct {
	FixtureID int64
	User      domain.NewUser
}

// SeedProperty references its owner by fixture id.
type SeedProperty struct {
	FixtureID      int64
	FixtureOwnerID int64
	Property       domain.NewProperty
}

type SeedReport struct {
	Users, Properties        int
	FailedUsers, FailedProps int
	SkippedProps             int
}

type Seeder struct {
	svc     *ListingService
	workers int64
}

func NewSeeder(svc *ListingService, workers int) *Seeder {
	if workers <= 0 {
		workers = 1
	}
	return &Seeder{svc: svc, workers: int64(workers)}
}

// Seed inserts users first, then properties with owners remapped to the
// stored user ids. Properties whose owner was not stored are skipped.
func (s *Seeder) Seed(ctx context.Context, users []SeedUser, props []SeedProperty) (SeedReport, error) {
	var (
		mu  sync.Mutex
		rep SeedReport
		ids = make(map[int64]int64, len(users))
	)

	err := s.run(ctx, len(users), func(i int) {
		su := users[i]
		u, _ := s.svc.AddUser(ctx, su.User)
		mu.Lock()
		defer mu.Unlock()
		if u == nil {
			rep.FailedUsers++
			observability.ObserveSeed("user", "failed")
			log.Warn().Int64("fixture_id", su.FixtureID).Str("email", su.User.Email).Msg("seed user failed")
			return
		}
		ids[su.FixtureID] = u.ID
		rep.Users++
		observability.ObserveSeed("user", "ok")
	})
	if err != nil {
		return rep, err
	}

	err = s.run(ctx, len(props), func(i int) {
		sp := props[i]
		mu.Lock()
		owner, ok := ids[sp.FixtureOwnerID]
		mu.Unlock()
		if !ok {
			mu.Lock()
			rep.SkippedProps++
			mu.Unlock()
			observability.ObserveSeed("property", "skipped")
			log.Warn().Int64("fixture_id", sp.FixtureID).Int64("owner", sp.FixtureOwnerID).Msg("seed property skipped: owner not stored")
			return
		}
		np := sp.Property
		np.OwnerID = owner
		p, _ := s.svc.AddProperty(ctx, np)
		mu.Lock()
		defer mu.Unlock()
		if p == nil {
			rep.FailedProps++
			observability.ObserveSeed("property", "failed")
			return
		}
		rep.Properties++
		observability.ObserveSeed("property", "ok")
	})
	return rep, err
}

// run calls fn for 0..n-1 with at most s.workers in flight.
func (s *Seeder) run(ctx context.Context, n int, fn func(i int)) error {
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	defer wg.Wait()

	for i := 0; i < n; i++ {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			fn(i)
		}(i)
	}
	return nil
}
