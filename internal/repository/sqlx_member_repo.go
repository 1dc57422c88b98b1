package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hitoshi/hellomember/internal/model"
)

// memberRow はmembersテーブルの1行をsqlxでスキャンするための構造体。
type memberRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func (row memberRow) toModel() *model.Member {
	return &model.Member{ID: row.ID, Name: row.Name}
}

// SqlxMemberRepo はsqlxを使用した会員リポジトリ。
// SQLはPostgresMemberRepoと共通で、スキャンを構造体マッピングに任せる。
type SqlxMemberRepo struct {
	db                   *sqlx.DB
	resetSequenceOnClear bool
}

// NewSqlxMemberRepo はSqlxMemberRepoを生成する。
func NewSqlxMemberRepo(db *sqlx.DB, resetSequenceOnClear bool) *SqlxMemberRepo {
	return &SqlxMemberRepo{db: db, resetSequenceOnClear: resetSequenceOnClear}
}

// Save は会員をINSERTし、採番されたIDを設定して返す。
func (r *SqlxMemberRepo) Save(ctx context.Context, member *model.Member) (*model.Member, error) {
	var id int64
	if err := r.db.GetContext(ctx, &id, insertMemberQuery, member.Name); err != nil {
		return nil, fmt.Errorf("failed to insert member: %w", err)
	}
	member.ID = id
	return member, nil
}

// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
func (r *SqlxMemberRepo) FindByID(ctx context.Context, id int64) (*model.Member, error) {
	var row memberRow
	err := r.db.GetContext(ctx, &row, selectMemberByIDQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member by ID: %w", err)
	}
	return row.toModel(), nil
}

// FindByName は名前が一致する会員を取得する。見つからない場合はnilを返す。
func (r *SqlxMemberRepo) FindByName(ctx context.Context, name string) (*model.Member, error) {
	var row memberRow
	err := r.db.GetContext(ctx, &row, selectMemberByName, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member by name: %w", err)
	}
	return row.toModel(), nil
}

// FindAll は全会員をID昇順で返す。
func (r *SqlxMemberRepo) FindAll(ctx context.Context) ([]*model.Member, error) {
	var rows []memberRow
	if err := r.db.SelectContext(ctx, &rows, selectAllMembersQuery); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]*model.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.toModel())
	}
	return members, nil
}

// ClearStore は全会員を削除する。
func (r *SqlxMemberRepo) ClearStore(ctx context.Context) error {
	query := deleteAllMembersQuery
	if r.resetSequenceOnClear {
		query = truncateMembersQuery
	}
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}
	return nil
}

// compile-time interface check
var (
	_ MemberRepository = (*SqlxMemberRepo)(nil)
	_ StoreClearer     = (*SqlxMemberRepo)(nil)
)
