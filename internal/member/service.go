// Package member は会員管理のドメインロジックを提供する。
package member

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/hellomember/internal/metrics"
	"github.com/hitoshi/hellomember/internal/model"
	"github.com/hitoshi/hellomember/internal/repository"
)

// JoinRecorder は会員登録の結果とレイテンシを記録するインターフェース。
// metrics.Collector が満たす。
type JoinRecorder interface {
	RecordJoin(result string)
	RecordJoinLatency(duration time.Duration)
}

// ServiceConfig はServiceの動作設定。
type ServiceConfig struct {
	// StrictJoin がtrueの場合、重複チェックから保存までをミューテックスで直列化する。
	// falseの場合は並行する同名登録が両方とも重複チェックを通過し得る。
	StrictJoin bool
}

// Service は会員管理のサービス層。
// 名前の重複を禁止した会員登録と、一覧・単一取得を提供する。
type Service struct {
	repo     repository.MemberRepository
	recorder JoinRecorder
	config   ServiceConfig

	joinMu sync.Mutex
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderはnilでもよい。
func NewService(repo repository.MemberRepository, recorder JoinRecorder, config ServiceConfig) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		config:   config,
	}
}

// Join は会員を登録し、採番されたIDを返す。
// 同名の会員が既に存在する場合は model.NewDuplicateMemberError() を返す。
func (s *Service) Join(ctx context.Context, m *model.Member) (int64, error) {
	start := time.Now()

	if s.config.StrictJoin {
		s.joinMu.Lock()
		defer s.joinMu.Unlock()
	}

	id, err := s.join(ctx, m)
	s.record(err, time.Since(start))
	return id, err
}

func (s *Service) join(ctx context.Context, m *model.Member) (int64, error) {
	if err := s.validateDuplicateMember(ctx, m); err != nil {
		return 0, err
	}

	saved, err := s.repo.Save(ctx, m)
	if err != nil {
		return 0, fmt.Errorf("会員の保存に失敗しました: %w", err)
	}

	slog.Info("会員を登録しました",
		slog.Int64("member_id", saved.ID),
		slog.String("name", saved.Name),
	)

	return saved.ID, nil
}

// validateDuplicateMember は同名の会員が存在しないことを検証する。
func (s *Service) validateDuplicateMember(ctx context.Context, m *model.Member) error {
	existing, err := s.repo.FindByName(ctx, m.Name)
	if err != nil {
		return fmt.Errorf("会員の検索に失敗しました: %w", err)
	}
	if existing != nil {
		slog.Warn("重複する会員名での登録を拒否しました",
			slog.String("name", m.Name),
			slog.Int64("existing_member_id", existing.ID),
		)
		return model.NewDuplicateMemberError()
	}
	return nil
}

// record は登録結果をrecorderに記録する。
func (s *Service) record(err error, elapsed time.Duration) {
	if s.recorder == nil {
		return
	}

	result := metrics.JoinResultSuccess
	switch {
	case model.IsDuplicateMember(err):
		result = metrics.JoinResultDuplicate
	case err != nil:
		result = metrics.JoinResultError
	}

	s.recorder.RecordJoin(result)
	s.recorder.RecordJoinLatency(elapsed)
}

// FindMembers は全会員を返す。
func (s *Service) FindMembers(ctx context.Context) ([]*model.Member, error) {
	members, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("会員一覧の取得に失敗しました: %w", err)
	}
	return members, nil
}

// FindOne は指定IDの会員を返す。見つからない場合はnilを返す。
func (s *Service) FindOne(ctx context.Context, memberID int64) (*model.Member, error) {
	m, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("会員の取得に失敗しました: %w", err)
	}
	return m, nil
}
