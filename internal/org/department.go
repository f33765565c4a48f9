package org

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/orgman/internal/model"
	"github.com/hitoshi/orgman/internal/repository"
	"github.com/hitoshi/orgman/internal/security"
)

const msgNameRequired = "Name is required"

// DepartmentService は部署のサービス層。
type DepartmentService struct {
	repo      repository.DepartmentRepository
	markup security.MarkupDetector
}

// NewDepartmentService はDepartmentServiceを生成する。
func NewDepartmentService(repo repository.DepartmentRepository, markup security.MarkupDetector) *DepartmentService {
	return &DepartmentService{repo: repo, markup: markup}
}

// List は全部署を返す。
func (s *DepartmentService) List(ctx context.Context) ([]*model.Department, error) {
	depts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("部署一覧の取得に失敗しました: %w", err)
	}
	return depts, nil
}

// Get は指定IDの部署を返す。
func (s *DepartmentService) Get(ctx context.Context, id int64) (*model.Department, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("部署の取得に失敗しました: %w", err)
	}
	if dept == nil {
		return nil, model.NewNotFoundError("Department")
	}
	return dept, nil
}

// Create は部署を作成する。nameは必須。
func (s *DepartmentService) Create(ctx context.Context, in model.DepartmentInput) (*model.Department, error) {
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

	dept := &model.Department{
		Name:        name,
		Description: description,
	}
	if err := s.repo.Create(ctx, dept); err != nil {
		return nil, fmt.Errorf("部署の作成に失敗しました: %w", writeError("Department", err))
	}

	slog.Info("department created", slog.Int64("department_id", dept.ID))
	return dept, nil
}

// Update はペイロードに含まれるフィールドのみ上書きする。
func (s *DepartmentService) Update(ctx context.Context, id int64, in model.DepartmentInput) (*model.Department, error) {
	dept, err := s.Get(ctx, id)
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
		dept.Name = name
	}
	if in.Description.Set {
		description, err := optionalText(s.markup, "description", in.Description)
		if err != nil {
			return nil, err
		}
		dept.Description = description
	}

	if err := s.repo.Update(ctx, dept); err != nil {
		return nil, fmt.Errorf("部署の更新に失敗しました: %w", writeError("Department", err))
	}
	return dept, nil
}

// Delete は部署を削除する。職位・従業員から参照されている場合は400。
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("部署の削除に失敗しました: %w", deleteError("Department", err))
	}
	slog.Info("department deleted", slog.Int64("department_id", id))
	return nil
}
