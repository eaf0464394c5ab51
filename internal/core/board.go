package core

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/dkeye/Sketch/internal/domain"
	"github.com/rs/zerolog/log"
)

// boardImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type boardImpl struct {
	room *domain.Room

	mu       sync.RWMutex
	elements []Element
	members  map[ConnID]*domain.Member

	// emptySince is set whenever the member set drains to zero and
	// cleared on the next join; the store's reaper reads it.
	emptySince time.Time
}

func NewBoard(room *domain.Room) Board {
	return &boardImpl{
		room:       room,
		members:    make(map[ConnID]*domain.Member),
		emptySince: room.CreatedAt,
	}
}

func (b *boardImpl) Room() *domain.Room { return b.room }

func (b *boardImpl) MemberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.members)
}

// AddMember inserts or overwrites the member entry and returns the
// resolved display name. An empty requested name gets a guest name.
func (b *boardImpl) AddMember(id ConnID, requested string) string {
	name := requested
	if name == "" {
		name = fmt.Sprintf("Guest_%d", rand.Intn(10000))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.members[id] = domain.NewMember(name)
	b.emptySince = time.Time{}
	log.Info().Str("module", "core.board").Str("room", string(b.room.ID)).Str("sid", string(id)).Str("name", name).Msg("member added")
	return name
}

// RemoveMember deletes the member entry. Removing an absent member is
// a no-op; the return value tells the caller which case it was.
func (b *boardImpl) RemoveMember(id ConnID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.members[id]; !ok {
		return false
	}
	delete(b.members, id)
	if len(b.members) == 0 {
		b.emptySince = time.Now()
	}
	log.Info().Str("module", "core.board").Str("room", string(b.room.ID)).Str("sid", string(id)).Msg("member removed")
	return true
}

func (b *boardImpl) RenameMember(id ConnID, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.members[id]
	if !ok {
		return ErrMemberNotFound
	}
	m.Username = name
	return nil
}

func (b *boardImpl) MemberName(id ConnID) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if m, ok := b.members[id]; ok {
		return m.Username, true
	}
	return "", false
}

// ReplaceElements overwrites the element list wholesale. The last
// writer wins; there is no merge and no deduplication.
func (b *boardImpl) ReplaceElements(els []Element) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.elements = els
}

// Elements returns a snapshot copy, never nil, so an empty board
// marshals as [] on the wire.
func (b *boardImpl) Elements() []Element {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Element, len(b.elements))
	copy(out, b.elements)
	return out
}

func (b *boardImpl) MembersSnapshot() []MemberDTO {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]MemberDTO, 0, len(b.members))
	for _, m := range b.members {
		out = append(out, MemberDTO{Username: m.Username})
	}
	return out
}

// expired reports whether the board has been empty longer than ttl.
func (b *boardImpl) expired(now time.Time, ttl time.Duration) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.members) > 0 || b.emptySince.IsZero() {
		return false
	}
	return now.Sub(b.emptySince) > ttl
}
