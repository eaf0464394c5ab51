package core

import (
	"context"
	"sync"
	"time"

	"github.com/dkeye/Sketch/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store is the process-wide room registry. Rooms live in memory only
// and vanish on restart; the reaper deletes rooms whose member set has
// been empty longer than ttl.
type Store struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.RWMutex
	rooms map[domain.RoomID]*boardImpl

	ttl      time.Duration
	interval time.Duration
}

// NewStore starts the reaper unless ttl <= 0.
func NewStore(parent context.Context, ttl, interval time.Duration) *Store {
	ctx, cancel := context.WithCancel(parent)
	s := &Store{
		ctx:      ctx,
		cancel:   cancel,
		rooms:    make(map[domain.RoomID]*boardImpl),
		ttl:      ttl,
		interval: interval,
	}
	if ttl > 0 {
		go s.reapLoop()
	}
	return s
}

// Create inserts a fresh empty room. It never fails; uuid collisions
// are not a practical concern at 128 bits.
func (s *Store) Create() Board {
	room := &domain.Room{
		ID:        domain.RoomID(uuid.NewString()),
		CreatedAt: time.Now(),
	}
	b := NewBoard(room).(*boardImpl)
	s.mu.Lock()
	s.rooms[room.ID] = b
	s.mu.Unlock()
	log.Info().Str("module", "core.store").Str("room", string(room.ID)).Msg("room created")
	return b
}

func (s *Store) Get(id domain.RoomID) (Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.rooms[id]
	return b, ok
}

func (s *Store) Exists(id domain.RoomID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

func (s *Store) Stop() { s.cancel() }

func (s *Store) reapLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-ticker.C:
			s.reap(now)
		}
	}
}

func (s *Store) reap(now time.Time) {
	s.mu.RLock()
	var dead []domain.RoomID
	for id, b := range s.rooms {
		if b.expired(now, s.ttl) {
			dead = append(dead, id)
		}
	}
	s.mu.RUnlock()

	if len(dead) == 0 {
		return
	}
	s.mu.Lock()
	for _, id := range dead {
		// A member may have joined between the scan and this lock.
		if b, ok := s.rooms[id]; ok && b.expired(now, s.ttl) {
			delete(s.rooms, id)
			log.Info().Str("module", "core.store").Str("room", string(id)).Msg("reaped empty room")
		}
	}
	s.mu.Unlock()
}
