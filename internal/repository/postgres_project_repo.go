package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/orgman/internal/model"
)

// PostgresProjectRepo はPostgreSQLを使用したプロジェクトリポジトリ。
type PostgresProjectRepo struct {
	db *sql.DB
}

// NewPostgresProjectRepo はPostgresProjectRepoを生成する。
func NewPostgresProjectRepo(db *sql.DB) *PostgresProjectRepo {
	return &PostgresProjectRepo{db: db}
}

const projectColumns = `id, name, description, start_date, end_date, status, team_lead_employee_id, created_at`

func scanProject(s rowScanner) (*model.Project, error) {
	p := &model.Project{}
	var (
		description sql.NullString
		startDate   sql.NullTime
		endDate     sql.NullTime
		status      sql.NullString
		teamLead    sql.NullInt64
	)
	if err := s.Scan(&p.ID, &p.Name, &description, &startDate, &endDate, &status, &teamLead, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Description = stringPtr(description)
	p.StartDate = datePtr(startDate)
	p.EndDate = datePtr(endDate)
	p.Status = status.String
	p.TeamLeadEmployeeID = int64Ptr(teamLead)
	return p, nil
}

// List は全プロジェクトをID順で返す。
func (r *PostgresProjectRepo) List(ctx context.Context) ([]*model.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []*model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// FindByID は指定IDのプロジェクトを取得する。見つからない場合はnilを返す。
func (r *PostgresProjectRepo) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return p, nil
}

// Create はプロジェクトを作成する。
// リーダーの従業員が存在しない場合はErrReferenceViolationを返す。
func (r *PostgresProjectRepo) Create(ctx context.Context, p *model.Project) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO projects (name, description, start_date, end_date, status, team_lead_employee_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		p.Name, nullStringPtr(p.Description), nullDatePtr(p.StartDate), nullDatePtr(p.EndDate),
		p.Status, nullInt64Ptr(p.TeamLeadEmployeeID),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return translateError("failed to insert project", err)
	}
	return nil
}

// Update はプロジェクトを上書き更新する。
func (r *PostgresProjectRepo) Update(ctx context.Context, p *model.Project) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects
		 SET name = $2, description = $3, start_date = $4, end_date = $5, status = $6, team_lead_employee_id = $7
		 WHERE id = $1`,
		p.ID, p.Name, nullStringPtr(p.Description), nullDatePtr(p.StartDate), nullDatePtr(p.EndDate),
		p.Status, nullInt64Ptr(p.TeamLeadEmployeeID),
	)
	if err != nil {
		return translateError("failed to update project", err)
	}
	return requireAffected(result, "project")
}

// Delete はプロジェクトを削除する。アサインはCASCADE削除される。
func (r *PostgresProjectRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete project", err)
	}
	return requireAffected(result, "project")
}

// compile-time interface check
var _ ProjectRepository = (*PostgresProjectRepo)(nil)
