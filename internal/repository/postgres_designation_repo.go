package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/orgman/internal/model"
)

// PostgresDesignationRepo はPostgreSQLを使用した職位リポジトリ。
type PostgresDesignationRepo struct {
	db *sql.DB
}

// NewPostgresDesignationRepo はPostgresDesignationRepoを生成する。
func NewPostgresDesignationRepo(db *sql.DB) *PostgresDesignationRepo {
	return &PostgresDesignationRepo{db: db}
}

const designationColumns = `id, class_level, salary, department_id, created_at`

func scanDesignation(s rowScanner) (*model.Designation, error) {
	d := &model.Designation{}
	if err := s.Scan(&d.ID, &d.ClassLevel, &d.Salary, &d.DepartmentID, &d.CreatedAt); err != nil {
		return nil, err
	}
	return d, nil
}

// List は全職位をID順で返す。
func (r *PostgresDesignationRepo) List(ctx context.Context) ([]*model.Designation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+designationColumns+` FROM designations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list designations: %w", err)
	}
	defer rows.Close()

	desigs := []*model.Designation{}
	for rows.Next() {
		d, err := scanDesignation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan designation: %w", err)
		}
		desigs = append(desigs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate designations: %w", err)
	}

	return desigs, nil
}

// FindByID は指定IDの職位を取得する。見つからない場合はnilを返す。
func (r *PostgresDesignationRepo) FindByID(ctx context.Context, id int64) (*model.Designation, error) {
	d, err := scanDesignation(r.db.QueryRowContext(ctx,
		`SELECT `+designationColumns+` FROM designations WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find designation: %w", err)
	}
	return d, nil
}

// Create は職位を作成する。部署が存在しない場合はErrReferenceViolationを返す。
func (r *PostgresDesignationRepo) Create(ctx context.Context, d *model.Designation) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO designations (class_level, salary, department_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		d.ClassLevel, d.Salary, d.DepartmentID,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return translateError("failed to insert designation", err)
	}
	return nil
}

// Update は職位を上書き更新する。
func (r *PostgresDesignationRepo) Update(ctx context.Context, d *model.Designation) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE designations SET class_level = $2, salary = $3, department_id = $4 WHERE id = $1`,
		d.ID, d.ClassLevel, d.Salary, d.DepartmentID,
	)
	if err != nil {
		return translateError("failed to update designation", err)
	}
	return requireAffected(result, "designation")
}

// Delete は職位を削除する。従業員から参照中の場合はErrReferenceViolationを返す。
func (r *PostgresDesignationRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM designations WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete designation", err)
	}
	return requireAffected(result, "designation")
}

// compile-time interface check
var _ DesignationRepository = (*PostgresDesignationRepo)(nil)
