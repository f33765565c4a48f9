package org

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hitoshi/orgman/internal/model"
	"github.com/hitoshi/orgman/internal/repository"
	"github.com/hitoshi/orgman/internal/security"
)

// ProjectService はプロジェクトと従業員アサインのサービス層。
type ProjectService struct {
	projects    repository.ProjectRepository
	employees   repository.EmployeeRepository
	assignments repository.AssignmentRepository
	markup      security.MarkupDetector
}

// NewProjectService はProjectServiceを生成する。
func NewProjectService(
	projects repository.ProjectRepository,
	employees repository.EmployeeRepository,
	assignments repository.AssignmentRepository,
	markup security.MarkupDetector,
) *ProjectService {
	return &ProjectService{
		projects:    projects,
		employees:   employees,
		assignments: assignments,
		markup:      markup,
	}
}

// List は全プロジェクトを返す。
func (s *ProjectService) List(ctx context.Context) ([]*model.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("プロジェクト一覧の取得に失敗しました: %w", err)
	}
	return projects, nil
}

// Get は指定IDのプロジェクトを返す。
func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	proj, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの取得に失敗しました: %w", err)
	}
	if proj == nil {
		return nil, model.NewNotFoundError("Project")
	}
	return proj, nil
}

// Create はプロジェクトを作成する。nameは必須、statusの既定値はPlanned。
func (s *ProjectService) Create(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	name, ok, err := requiredText(s.markup, "name", in.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.NewValidationError(msgNameRequired)
	}
	description, err := optionalText(s.markup, "description", in.Description)
	if err != nil {
		return nil, err
	}

	proj := &model.Project{
		Name:        name,
		Description: description,
		Status:      model.DefaultProjectStatus,
	}
	if err := s.applyProjectFields(proj, in); err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("プロジェクトの作成に失敗しました: %w", writeError("Project", err))
	}

	slog.Info("project created", slog.Int64("project_id", proj.ID))
	return proj, nil
}

// Update はペイロードに含まれるフィールドのみ上書きする。
// 日付とリーダーはnullで解除でき、statusのnullは既定値に戻す。
func (s *ProjectService) Update(ctx context.Context, id int64, in model.ProjectInput) (*model.Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name.Set {
		name, ok, err := requiredText(s.markup, "name", in.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, model.NewValidationError(msgNameRequired)
		}
		proj.Name = name
	}
	if in.Description.Set {
		description, err := optionalText(s.markup, "description", in.Description)
		if err != nil {
			return nil, err
		}
		proj.Description = description
	}
	if err := s.applyProjectFields(proj, in); err != nil {
		return nil, err
	}

	if err := s.projects.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("プロジェクトの更新に失敗しました: %w", writeError("Project", err))
	}
	return proj, nil
}

// applyProjectFields は日付・ステータス・リーダーを反映する。
func (s *ProjectService) applyProjectFields(proj *model.Project, in model.ProjectInput) error {
	if in.StartDate.Set {
		d, err := optionalDate(in.StartDate)
		if err != nil {
			return err
		}
		proj.StartDate = d
	}
	if in.EndDate.Set {
		d, err := optionalDate(in.EndDate)
		if err != nil {
			return err
		}
		proj.EndDate = d
	}
	if in.Status.Set {
		status, ok, err := requiredText(s.markup, "status", in.Status)
		if err != nil {
			return err
		}
		proj.Status = model.DefaultProjectStatus
		if ok {
			proj.Status = status
		}
	}
	if in.TeamLeadEmployeeID.Set {
		proj.TeamLeadEmployeeID = nil
		if in.TeamLeadEmployeeID.Present() {
			lead := in.TeamLeadEmployeeID.Value
			proj.TeamLeadEmployeeID = &lead
		}
	}
	return nil
}

// Delete はプロジェクトを削除する。アサインは同時に削除される。
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("プロジェクトの削除に失敗しました: %w", deleteError("Project", err))
	}
	slog.Info("project deleted", slog.Int64("project_id", id))
	return nil
}

// Assign は従業員をプロジェクトにアサインする。
// 既にアサイン済みの場合は既存行をcreated=falseで返す。
// 同時リクエストで一意制約に違反した場合も先行した行を返す。
func (s *ProjectService) Assign(ctx context.Context, projectID int64, in model.AssignInput) (*model.ProjectEmployee, bool, error) {
	if !in.EmployeeID.Present() || in.EmployeeID.Value <= 0 {
		return nil, false, model.NewValidationError("employee_id is required")
	}
	employeeID := in.EmployeeID.Value

	if _, err := s.Get(ctx, projectID); err != nil {
		return nil, false, err
	}
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, false, fmt.Errorf("従業員の取得に失敗しました: %w", err)
	}
	if emp == nil {
		return nil, false, model.NewNotFoundError("Employee")
	}

	existing, err := s.assignments.FindByProjectAndEmployee(ctx, projectID, employeeID)
	if err != nil {
		return nil, false, fmt.Errorf("アサインの取得に失敗しました: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	pe := &model.ProjectEmployee{ProjectID: projectID, EmployeeID: employeeID}
	err = s.assignments.Create(ctx, pe)
	if errors.Is(err, repository.ErrDuplicate) {
		existing, findErr := s.assignments.FindByProjectAndEmployee(ctx, projectID, employeeID)
		if findErr != nil {
			return nil, false, fmt.Errorf("アサインの再取得に失敗しました: %w", findErr)
		}
		if existing != nil {
			return existing, false, nil
		}
	}
	if err != nil {
		return nil, false, fmt.Errorf("アサインの作成に失敗しました: %w", writeError("Assignment", err))
	}

	slog.Info("employee assigned to project",
		slog.Int64("project_id", projectID),
		slog.Int64("employee_id", employeeID),
	)
	return pe, true, nil
}

// Unassign はプロジェクトから従業員のアサインを外す。
func (s *ProjectService) Unassign(ctx context.Context, projectID, employeeID int64) error {
	pe, err := s.assignments.FindByProjectAndEmployee(ctx, projectID, employeeID)
	if err != nil {
		return fmt.Errorf("アサインの取得に失敗しました: %w", err)
	}
	if pe == nil {
		return model.NewNotFoundError("Assignment")
	}

	if err := s.assignments.Delete(ctx, pe.ID); err != nil {
		return fmt.Errorf("アサインの削除に失敗しました: %w", deleteError("Assignment", err))
	}
	return nil
}

// ListAssignments はプロジェクトのアサイン一覧を返す。
func (s *ProjectService) ListAssignments(ctx context.Context, projectID int64) ([]*model.ProjectEmployee, error) {
	if _, err := s.Get(ctx, projectID); err != nil {
		return nil, err
	}
	list, err := s.assignments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("アサイン一覧の取得に失敗しました: %w", err)
	}
	return list, nil
}
