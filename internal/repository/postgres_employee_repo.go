package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/orgman/internal/model"
)

// PostgresEmployeeRepo はPostgreSQLを使用した従業員リポジトリ。
type PostgresEmployeeRepo struct {
	db *sql.DB
}

// NewPostgresEmployeeRepo はPostgresEmployeeRepoを生成する。
func NewPostgresEmployeeRepo(db *sql.DB) *PostgresEmployeeRepo {
	return &PostgresEmployeeRepo{db: db}
}

const employeeColumns = `id, user_id, position, hire_date, department_id, designation_id, created_at`

func scanEmployee(s rowScanner) (*model.Employee, error) {
	e := &model.Employee{}
	var hireDate time.Time
	if err := s.Scan(&e.ID, &e.UserID, &e.Position, &hireDate, &e.DepartmentID, &e.DesignationID, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.HireDate = model.DateOf(hireDate)
	return e, nil
}

// List は全従業員をID順で返す。
func (r *PostgresEmployeeRepo) List(ctx context.Context) ([]*model.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("従業員一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	emps := []*model.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("従業員のスキャンに失敗しました: %w", err)
		}
		emps = append(emps, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("従業員一覧の走査に失敗しました: %w", err)
	}

	return emps, nil
}

// FindByID は指定IDの従業員を取得する。見つからない場合はnilを返す。
func (r *PostgresEmployeeRepo) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("従業員の取得に失敗しました: %w", err)
	}
	return e, nil
}

// Create は従業員を作成する。部署・職位が存在しない場合はErrReferenceViolationを返す。
func (r *PostgresEmployeeRepo) Create(ctx context.Context, e *model.Employee) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO employees (user_id, position, hire_date, department_id, designation_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.UserID, e.Position, e.HireDate.Time, e.DepartmentID, e.DesignationID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return translateError("従業員の作成に失敗しました", err)
	}
	return nil
}

// Update は従業員を上書き更新する。
func (r *PostgresEmployeeRepo) Update(ctx context.Context, e *model.Employee) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE employees
		 SET user_id = $2, position = $3, hire_date = $4, department_id = $5, designation_id = $6
		 WHERE id = $1`,
		e.ID, e.UserID, e.Position, e.HireDate.Time, e.DepartmentID, e.DesignationID,
	)
	if err != nil {
		return translateError("従業員の更新に失敗しました", err)
	}
	return requireAffected(result, "employee")
}

// Delete は従業員を削除する。
// project_employeesはCASCADE削除、projects.team_lead_employee_idはNULLに更新される。
func (r *PostgresEmployeeRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return translateError("従業員の削除に失敗しました", err)
	}
	return requireAffected(result, "employee")
}

// compile-time interface check
var _ EmployeeRepository = (*PostgresEmployeeRepo)(nil)
