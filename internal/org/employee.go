package org

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/orgman/internal/model"
	"github.com/hitoshi/orgman/internal/repository"
	"github.com/hitoshi/orgman/internal/security"
)

// EmployeeService は従業員のサービス層。
type EmployeeService struct {
	repo      repository.EmployeeRepository
	markup security.MarkupDetector
}

// NewEmployeeService はEmployeeServiceを生成する。
func NewEmployeeService(repo repository.EmployeeRepository, markup security.MarkupDetector) *EmployeeService {
	return &EmployeeService{repo: repo, markup: markup}
}

// List は全従業員を返す。
func (s *EmployeeService) List(ctx context.Context) ([]*model.Employee, error) {
	emps, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("従業員一覧の取得に失敗しました: %w", err)
	}
	return emps, nil
}

// Get は指定IDの従業員を返す。
func (s *EmployeeService) Get(ctx context.Context, id int64) (*model.Employee, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("従業員の取得に失敗しました: %w", err)
	}
	if emp == nil {
		return nil, model.NewNotFoundError("Employee")
	}
	return emp, nil
}

// Create は従業員を作成する。全フィールド必須で、hire_dateはYYYY-MM-DD。
// user_idはusersテーブルと照合しない。
func (s *EmployeeService) Create(ctx context.Context, in model.EmployeeInput) (*model.Employee, error) {
	position, positionOK, err := requiredText(s.markup, "position", in.Position)
	if err != nil {
		return nil, err
	}
	missing := missingFields(
		fieldCheck{"user_id", in.UserID.Present()},
		fieldCheck{"position", positionOK},
		fieldCheck{"hire_date", in.HireDate.Present()},
		fieldCheck{"department_id", in.DepartmentID.Present()},
		fieldCheck{"designation_id", in.DesignationID.Present()},
	)
	if len(missing) > 0 {
		return nil, missingFieldsError(missing)
	}

	hireDate, err := model.ParseDate(in.HireDate.Value)
	if err != nil {
		return nil, model.NewInvalidDateError()
	}

	emp := &model.Employee{
		UserID:        in.UserID.Value,
		Position:      position,
		HireDate:      hireDate,
		DepartmentID:  in.DepartmentID.Value,
		DesignationID: in.DesignationID.Value,
	}
	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, fmt.Errorf("従業員の作成に失敗しました: %w", writeError("Employee", err))
	}

	slog.Info("employee created", slog.Int64("employee_id", emp.ID))
	return emp, nil
}

// Update はペイロードに含まれるフィールドのみ上書きする。
func (s *EmployeeService) Update(ctx context.Context, id int64, in model.EmployeeInput) (*model.Employee, error) {
	emp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		name string
		null bool
	}{
		{"user_id", in.UserID.Null},
		{"position", in.Position.Null},
		{"hire_date", in.HireDate.Null},
		{"department_id", in.DepartmentID.Null},
		{"designation_id", in.DesignationID.Null},
	} {
		if f.null {
			return nil, nullNotAllowed(f.name)
		}
	}

	if in.UserID.Set {
		emp.UserID = in.UserID.Value
	}
	if in.Position.Set {
		position, ok, err := requiredText(s.markup, "position", in.Position)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, model.NewValidationError("position must not be empty")
		}
		emp.Position = position
	}
	if in.HireDate.Set {
		hireDate, err := model.ParseDate(in.HireDate.Value)
		if err != nil {
			return nil, model.NewInvalidDateError()
		}
		emp.HireDate = hireDate
	}
	if in.DepartmentID.Set {
		emp.DepartmentID = in.DepartmentID.Value
	}
	if in.DesignationID.Set {
		emp.DesignationID = in.DesignationID.Value
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return nil, fmt.Errorf("従業員の更新に失敗しました: %w", writeError("Employee", err))
	}
	return emp, nil
}

// Delete は従業員を削除する。アサインは同時に削除され、リーダー参照はnullになる。
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("従業員の削除に失敗しました: %w", deleteError("Employee", err))
	}
	slog.Info("employee deleted", slog.Int64("employee_id", id))
	return nil
}
