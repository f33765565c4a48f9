package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/orgman/internal/model"
)

// PostgresAssignmentRepo はPostgreSQLを使用したアサインリポジトリ。
type PostgresAssignmentRepo struct {
	db *sql.DB
}

// NewPostgresAssignmentRepo はPostgresAssignmentRepoを生成する。
func NewPostgresAssignmentRepo(db *sql.DB) *PostgresAssignmentRepo {
	return &PostgresAssignmentRepo{db: db}
}

const assignmentColumns = `id, project_id, employee_id, created_at`

func scanAssignment(s rowScanner) (*model.ProjectEmployee, error) {
	pe := &model.ProjectEmployee{}
	if err := s.Scan(&pe.ID, &pe.ProjectID, &pe.EmployeeID, &pe.CreatedAt); err != nil {
		return nil, err
	}
	return pe, nil
}

// FindByProjectAndEmployee は組に対応するアサインを取得する。見つからない場合はnilを返す。
func (r *PostgresAssignmentRepo) FindByProjectAndEmployee(ctx context.Context, projectID, employeeID int64) (*model.ProjectEmployee, error) {
	pe, err := scanAssignment(r.db.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM project_employees WHERE project_id = $1 AND employee_id = $2`,
		projectID, employeeID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("アサインの検索に失敗しました: %w", err)
	}
	return pe, nil
}

// ListByProject はプロジェクトの全アサインをID順で返す。
func (r *PostgresAssignmentRepo) ListByProject(ctx context.Context, projectID int64) ([]*model.ProjectEmployee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assignmentColumns+` FROM project_employees WHERE project_id = $1 ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("アサイン一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	list := []*model.ProjectEmployee{}
	for rows.Next() {
		pe, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("アサインのスキャンに失敗しました: %w", err)
		}
		list = append(list, pe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("アサイン一覧の走査に失敗しました: %w", err)
	}
	return list, nil
}

// Create はアサインを作成する。
// (project_id, employee_id) の一意制約に違反した場合はErrDuplicateを返す。
func (r *PostgresAssignmentRepo) Create(ctx context.Context, pe *model.ProjectEmployee) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO project_employees (project_id, employee_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		pe.ProjectID, pe.EmployeeID,
	).Scan(&pe.ID, &pe.CreatedAt)
	if err != nil {
		return translateError("アサインの作成に失敗しました", err)
	}
	return nil
}

// Delete は指定IDのアサインを削除する。
func (r *PostgresAssignmentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM project_employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("アサインの削除に失敗しました: %w", err)
	}
	return requireAffected(result, "assignment")
}

// compile-time interface check
var _ AssignmentRepository = (*PostgresAssignmentRepo)(nil)
