// Package repository はデータ永続化のインターフェースと実装を提供する。
package repository

import (
	"context"

	"github.com/hitoshi/hellomember/internal/model"
)

// MemberRepository は会員データの永続化インターフェース。
// メモリ、PostgreSQL(database/sql)、sqlx、gormの各実装が満たす。
type MemberRepository interface {
	// Save は会員にIDを採番して保存し、IDを設定した同じポインタを返す。
	Save(ctx context.Context, member *model.Member) (*model.Member, error)

	// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Member, error)

	// FindByName は名前が一致する会員を取得する。見つからない場合はnilを返す。
	// 同名の会員が複数存在する場合はIDが最小のものを返す。
	FindByName(ctx context.Context, name string) (*model.Member, error)

	// FindAll は全会員をID昇順で返す。
	FindAll(ctx context.Context) ([]*model.Member, error)
}

// StoreClearer はテスト用にストアを空にするインターフェース。
type StoreClearer interface {
	// ClearStore は全会員を削除する。
	// 採番カウンタをリセットするかどうかは実装の設定に従う。
	ClearStore(ctx context.Context) error
}

// HealthChecker はストアへの疎通確認インターフェース。
// *sql.DB と *sqlx.DB はそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}
