package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/hitoshi/hellomember/internal/model"
)

// MemoryConfig はMemoryMemberRepoの設定。
type MemoryConfig struct {
	// ResetSequenceOnClear がtrueの場合、ClearStoreで採番カウンタも0に戻す。
	ResetSequenceOnClear bool
}

// MemoryMemberRepo はプロセス内メモリを使用した会員リポジトリ。
// 状態はインスタンスごとに保持し、パッケージ変数は使わない。
type MemoryMemberRepo struct {
	mu       sync.RWMutex
	store    map[int64]model.Member
	sequence int64
	config   MemoryConfig
}

// NewMemoryMemberRepo はMemoryMemberRepoを生成する。
func NewMemoryMemberRepo(config MemoryConfig) *MemoryMemberRepo {
	return &MemoryMemberRepo{
		store:  make(map[int64]model.Member),
		config: config,
	}
}

// Save はカウンタをインクリメントしてIDを採番し、会員のコピーを保存する。
func (r *MemoryMemberRepo) Save(ctx context.Context, member *model.Member) (*model.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequence++
	member.ID = r.sequence
	r.store[member.ID] = *member

	return member, nil
}

// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
func (r *MemoryMemberRepo) FindByID(ctx context.Context, id int64) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.store[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// FindByName は名前が一致する会員のうちIDが最小のものを返す。
func (r *MemoryMemberRepo) FindByName(ctx context.Context, name string) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *model.Member
	for _, m := range r.store {
		if m.Name != name {
			continue
		}
		if found == nil || m.ID < found.ID {
			m := m
			found = &m
		}
	}
	return found, nil
}

// FindAll は全会員のコピーをID昇順で返す。
func (r *MemoryMemberRepo) FindAll(ctx context.Context) ([]*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*model.Member, 0, len(r.store))
	for _, m := range r.store {
		m := m
		members = append(members, &m)
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].ID < members[j].ID
	})
	return members, nil
}

// ClearStore は全会員を削除する。
// ResetSequenceOnClearがfalseの場合、採番カウンタは維持される。
func (r *MemoryMemberRepo) ClearStore(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store = make(map[int64]model.Member)
	if r.config.ResetSequenceOnClear {
		r.sequence = 0
	}
	return nil
}

// PingContext はメモリストアの疎通確認。常に成功する。
func (r *MemoryMemberRepo) PingContext(ctx context.Context) error {
	return nil
}

// compile-time interface check
var (
	_ MemberRepository = (*MemoryMemberRepo)(nil)
	_ StoreClearer     = (*MemoryMemberRepo)(nil)
	_ HealthChecker    = (*MemoryMemberRepo)(nil)
)
