package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/hellomember/internal/model"
)

const (
	insertMemberQuery     = `INSERT INTO members (name) VALUES ($1) RETURNING id`
	selectMemberByIDQuery = `SELECT id, name FROM members WHERE id = $1`
	selectMemberByName    = `SELECT id, name FROM members WHERE name = $1 ORDER BY id LIMIT 1`
	selectAllMembersQuery = `SELECT id, name FROM members ORDER BY id`
	deleteAllMembersQuery = `DELETE FROM members`
	truncateMembersQuery  = `TRUNCATE members RESTART IDENTITY`
)

// PostgresMemberRepo はdatabase/sqlとPostgreSQLを使用した会員リポジトリ。
type PostgresMemberRepo struct {
	db                   *sql.DB
	resetSequenceOnClear bool
}

// NewPostgresMemberRepo はPostgresMemberRepoを生成する。
// resetSequenceOnClearがtrueの場合、ClearStoreでIDシーケンスもリセットする。
func NewPostgresMemberRepo(db *sql.DB, resetSequenceOnClear bool) *PostgresMemberRepo {
	return &PostgresMemberRepo{db: db, resetSequenceOnClear: resetSequenceOnClear}
}

// Save は会員をINSERTし、採番されたIDを設定して返す。
func (r *PostgresMemberRepo) Save(ctx context.Context, member *model.Member) (*model.Member, error) {
	var id int64
	if err := r.db.QueryRowContext(ctx, insertMemberQuery, member.Name).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to insert member: %w", err)
	}
	member.ID = id
	return member, nil
}

// FindByID は指定IDの会員を取得する。見つからない場合はnilを返す。
func (r *PostgresMemberRepo) FindByID(ctx context.Context, id int64) (*model.Member, error) {
	m := &model.Member{}
	err := r.db.QueryRowContext(ctx, selectMemberByIDQuery, id).Scan(&m.ID, &m.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member by ID: %w", err)
	}
	return m, nil
}

// FindByName は名前が一致する会員を取得する。見つからない場合はnilを返す。
func (r *PostgresMemberRepo) FindByName(ctx context.Context, name string) (*model.Member, error) {
	m := &model.Member{}
	err := r.db.QueryRowContext(ctx, selectMemberByName, name).Scan(&m.ID, &m.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member by name: %w", err)
	}
	return m, nil
}

// FindAll は全会員をID昇順で返す。
func (r *PostgresMemberRepo) FindAll(ctx context.Context) ([]*model.Member, error) {
	rows, err := r.db.QueryContext(ctx, selectAllMembersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]*model.Member, 0)
	for rows.Next() {
		m := &model.Member{}
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// ClearStore は全会員を削除する。
// DELETEはシーケンスを維持し、TRUNCATE ... RESTART IDENTITYはリセットする。
func (r *PostgresMemberRepo) ClearStore(ctx context.Context) error {
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
	_ MemberRepository = (*PostgresMemberRepo)(nil)
	_ StoreClearer     = (*PostgresMemberRepo)(nil)
)
