package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hitoshi/hellomember/internal/model"
)

// memberRecord はgormで扱うmembersテーブルのレコード。
type memberRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;not null;index:idx_members_name"`
}

// TableName はgormのテーブル名を指定する。
func (memberRecord) TableName() string {
	return "members"
}

func (rec memberRecord) toModel() *model.Member {
	return &model.Member{ID: rec.ID, Name: rec.Name}
}

// GormMemberRepo はgormを使用した会員リポジトリ。
// 本番はPostgreSQLドライバ、テストはSQLiteドライバで動作する。
type GormMemberRepo struct {
	db                   *gorm.DB
	resetSequenceOnClear bool
}

// NewGormMemberRepo はGormMemberRepoを生成する。
func NewGormMemberRepo(db *gorm.DB, resetSequenceOnClear bool) *GormMemberRepo {
	return &GormMemberRepo{db: db, resetSequenceOnClear: resetSequenceOnClear}
}

// AutoMigrateMembers はmembersテーブルをgormのAutoMigrateで作成する。
// 本番のスキーマはgolang-migrateで管理するため、テストやSQLite用途に限る。
func AutoMigrateMembers(db *gorm.DB) error {
	if err := db.AutoMigrate(&memberRecord{}); err != nil {
		return fmt.Errorf("failed to auto-migrate members: %w", err)
	}
	return nil
}

// Save は会員をINSERTし、採番されたIDを設定して返す。
func (r *GormMemberRepo) Save(ctx context.Context, member *model.Member) (*model.Member, error) {
	rec := memberRecord{Name: member.Name}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to insert member: %w", err)
	}
	member.ID = rec.ID
	return member, nil
}

// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
func (r *GormMemberRepo) FindByID(ctx context.Context, id int64) (*model.Member, error) {
	var rec memberRecord
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member by ID: %w", err)
	}
	return rec.toModel(), nil
}

// FindByName は名前が一致する会員を取得する。見つからない場合はnilを返す。
func (r *GormMemberRepo) FindByName(ctx context.Context, name string) (*model.Member, error) {
	var rec memberRecord
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member by name: %w", err)
	}
	return rec.toModel(), nil
}

// FindAll は全会員をID昇順で返す。
func (r *GormMemberRepo) FindAll(ctx context.Context) ([]*model.Member, error) {
	var recs []memberRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]*model.Member, 0, len(recs))
	for _, rec := range recs {
		members = append(members, rec.toModel())
	}
	return members, nil
}

// ClearStore は全会員を削除する。
// シーケンスのリセットはPostgreSQLのみ対応し、他のダイアレクトでは削除のみ行う。
func (r *GormMemberRepo) ClearStore(ctx context.Context) error {
	db := r.db.WithContext(ctx)

	if r.resetSequenceOnClear && db.Dialector.Name() == "postgres" {
		if err := db.Exec(truncateMembersQuery).Error; err != nil {
			return fmt.Errorf("failed to clear members: %w", err)
		}
		return nil
	}

	err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&memberRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}
	return nil
}

// compile-time interface check
var (
	_ MemberRepository = (*GormMemberRepo)(nil)
	_ StoreClearer     = (*GormMemberRepo)(nil)
)
