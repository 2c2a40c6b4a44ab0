package member

import (
	"errors"
	"fmt"
	"sync"
)

// ErrMemberNotFound 会员不存在
var ErrMemberNotFound = errors.New("member: not found")

// Repository 会员存储
type Repository interface {
	Save(m Member) error
	FindByID(id int64) (Member, error)
}

// MemoryRepository 基于 map 的内存存储，并发安全
type MemoryRepository struct {
	mu      sync.RWMutex
	members map[int64]Member
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{members: make(map[int64]Member)}
}

func (r *MemoryRepository) Save(m Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID] = m
	return nil
}

func (r *MemoryRepository) FindByID(id int64) (Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	if !ok {
		return Member{}, fmt.Errorf("%w: id=%d", ErrMemberNotFound, id)
	}
	return m, nil
}
