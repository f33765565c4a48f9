package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/orgman/internal/model"
)

// rowScanner は*sql.Rowと*sql.Rowsの共通部分。
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresDepartmentRepo はPostgreSQLを使用した部署リポジトリ。
type PostgresDepartmentRepo struct {
	db *sql.DB
}

// NewPostgresDepartmentRepo はPostgresDepartmentRepoを生成する。
func NewPostgresDepartmentRepo(db *sql.DB) *PostgresDepartmentRepo {
	return &PostgresDepartmentRepo{db: db}
}

const departmentColumns = `id, name, description, created_at`

func scanDepartment(s rowScanner) (*model.Department, error) {
	dept := &model.Department{}
	var description sql.NullString
	if err := s.Scan(&dept.ID, &dept.Name, &description, &dept.CreatedAt); err != nil {
		return nil, err
	}
	dept.Description = stringPtr(description)
	return dept, nil
}

// List は全部署をID順で返す。
func (r *PostgresDepartmentRepo) List(ctx context.Context) ([]*model.Department, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("部署一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	depts := []*model.Department{}
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("部署のスキャンに失敗しました: %w", err)
		}
		depts = append(depts, dept)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("部署一覧の走査に失敗しました: %w", err)
	}

	return depts, nil
}

// FindByID は指定IDの部署を取得する。見つからない場合はnilを返す。
func (r *PostgresDepartmentRepo) FindByID(ctx context.Context, id int64) (*model.Department, error) {
	dept, err := scanDepartment(r.db.QueryRowContext(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("部署の取得に失敗しました: %w", err)
	}
	return dept, nil
}

// Create は部署を作成し、IDと作成日時を設定する。
func (r *PostgresDepartmentRepo) Create(ctx context.Context, dept *model.Department) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO departments (name, description) VALUES ($1, $2) RETURNING id, created_at`,
		dept.Name, nullStringPtr(dept.Description),
	).Scan(&dept.ID, &dept.CreatedAt)
	if err != nil {
		return translateError("部署の作成に失敗しました", err)
	}
	return nil
}

// Update は部署を上書き更新する。
func (r *PostgresDepartmentRepo) Update(ctx context.Context, dept *model.Department) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE departments SET name = $2, description = $3 WHERE id = $1`,
		dept.ID, dept.Name, nullStringPtr(dept.Description),
	)
	if err != nil {
		return translateError("部署の更新に失敗しました", err)
	}
	return requireAffected(result, "department")
}

// Delete は部署を削除する。職位・従業員から参照中の場合はErrReferenceViolationを返す。
func (r *PostgresDepartmentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return translateError("部署の削除に失敗しました", err)
	}
	return requireAffected(result, "department")
}

// compile-time interface check
var _ DepartmentRepository = (*PostgresDepartmentRepo)(nil)
