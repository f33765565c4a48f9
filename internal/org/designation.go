package org

import (
	"context"
	"fmt"

	"github.com/hitoshi/orgman/internal/model"
	"github.com/hitoshi/orgman/internal/repository"
)

// DesignationService は職位のサービス層。
type DesignationService struct {
	repo repository.DesignationRepository
}

// NewDesignationService はDesignationServiceを生成する。
func NewDesignationService(repo repository.DesignationRepository) *DesignationService {
	return &DesignationService{repo: repo}
}

// List は全職位を返す。
func (s *DesignationService) List(ctx context.Context) ([]*model.Designation, error) {
	desigs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("職位一覧の取得に失敗しました: %w", err)
	}
	return desigs, nil
}

// Get は指定IDの職位を返す。
func (s *DesignationService) Get(ctx context.Context, id int64) (*model.Designation, error) {
	desig, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("職位の取得に失敗しました: %w", err)
	}
	if desig == nil {
		return nil, model.NewNotFoundError("Designation")
	}
	return desig, nil
}

// Create は職位を作成する。class、salary、department_idは必須。
// 存在しない部署を指定した場合は400。
func (s *DesignationService) Create(ctx context.Context, in model.DesignationInput) (*model.Designation, error) {
	if !in.ClassLevel.Present() || !in.Salary.Present() || !in.DepartmentID.Present() {
		return nil, model.NewMissingFieldsError("class, salary, department_id")
	}

	desig := &model.Designation{
		ClassLevel:   in.ClassLevel.Value,
		Salary:       in.Salary.Value,
		DepartmentID: in.DepartmentID.Value,
	}
	if err := s.repo.Create(ctx, desig); err != nil {
		return nil, fmt.Errorf("職位の作成に失敗しました: %w", writeError("Designation", err))
	}
	return desig, nil
}

// Update はペイロードに含まれるフィールドのみ上書きする。必須フィールドへのnullは400。
func (s *DesignationService) Update(ctx context.Context, id int64, in model.DesignationInput) (*model.Designation, error) {
	desig, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case in.ClassLevel.Null:
		return nil, nullNotAllowed("class")
	case in.Salary.Null:
		return nil, nullNotAllowed("salary")
	case in.DepartmentID.Null:
		return nil, nullNotAllowed("department_id")
	}

	if in.ClassLevel.Set {
		desig.ClassLevel = in.ClassLevel.Value
	}
	if in.Salary.Set {
		desig.Salary = in.Salary.Value
	}
	if in.DepartmentID.Set {
		desig.DepartmentID = in.DepartmentID.Value
	}

	if err := s.repo.Update(ctx, desig); err != nil {
		return nil, fmt.Errorf("職位の更新に失敗しました: %w", writeError("Designation", err))
	}
	return desig, nil
}

// Delete は職位を削除する。従業員から参照されている場合は400。
func (s *DesignationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("職位の削除に失敗しました: %w", deleteError("Designation", err))
	}
	return nil
}
