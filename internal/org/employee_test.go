package org

import (
	"context"
	"fmt"
	"testing"

	"github.com/hitoshi/orgman/internal/model"
	"github.com/hitoshi/orgman/internal/repository"
	"github.com/hitoshi/orgman/internal/security"
)

func validEmployeeInput() model.EmployeeInput {
	return model.EmployeeInput{
		UserID:        model.Some(int64(101)),
		Position:      model.Some("Developer"),
		HireDate:      model.Some("2023-01-01"),
		DepartmentID:  model.Some(int64(1)),
		DesignationID: model.Some(int64(2)),
	}
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("作成成功", func(t *testing.T) {
		repo := &mockEmployeeRepo{
			createFn: func(_ context.Context, e *model.Employee) error {
				e.ID = 5
				return nil
			},
		}
		emp, err := NewEmployeeService(repo, security.NewMarkupDetector()).Create(context.Background(), validEmployeeInput())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if emp.ID != 5 || emp.UserID != 101 || emp.Position != "Developer" || emp.DepartmentID != 1 || emp.DesignationID != 2 {
			t.Errorf("emp = %+v", emp)
		}
		if emp.HireDate.String() != "2023-01-01" {
			t.Errorf("HireDate = %s, want 2023-01-01", emp.HireDate)
		}
	})

	tests := []struct {
		name    string
		mutate  func(in *model.EmployeeInput)
		wantMsg string
	}{
		{
			name:    "不正な月は400",
			mutate:  func(in *model.EmployeeInput) { in.HireDate = model.Some("2023-13-01") },
			wantMsg: model.MsgInvalidDate,
		},
		{
			name:    "存在しない日は400",
			mutate:  func(in *model.EmployeeInput) { in.HireDate = model.Some("2023-02-30") },
			wantMsg: model.MsgInvalidDate,
		},
		{
			name:    "フォーマット違いは400",
			mutate:  func(in *model.EmployeeInput) { in.HireDate = model.Some("01/02/2023") },
			wantMsg: model.MsgInvalidDate,
		},
		{
			name: "欠落フィールドを列挙する",
			mutate: func(in *model.EmployeeInput) {
				in.UserID = model.Optional[int64]{}
				in.HireDate = model.Null[string]()
			},
			wantMsg: "Missing required fields: user_id, hire_date",
		},
		{
			name:    "空のpositionは欠落扱い",
			mutate:  func(in *model.EmployeeInput) { in.Position = model.Some("  ") },
			wantMsg: "Missing required fields: position",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockEmployeeRepo{
				createFn: func(context.Context, *model.Employee) error {
					t.Error("Create should not be called")
					return nil
				},
			}
			in := validEmployeeInput()
			tt.mutate(&in)

			_, err := NewEmployeeService(repo, security.NewMarkupDetector()).Create(context.Background(), in)
			assertAPIError(t, err, model.ErrCodeValidation, tt.wantMsg)
		})
	}

	t.Run("存在しない部署・職位は400", func(t *testing.T) {
		repo := &mockEmployeeRepo{
			createFn: func(context.Context, *model.Employee) error {
				return fmt.Errorf("create employee: %w", repository.ErrReferenceViolation)
			},
		}
		_, err := NewEmployeeService(repo, security.NewMarkupDetector()).Create(context.Background(), validEmployeeInput())
		assertAPIError(t, err, model.ErrCodeValidation, "Referenced record does not exist")
	})
}

func TestEmployeeService_Update(t *testing.T) {
	current := func() *model.Employee {
		return &model.Employee{
			ID: 5, UserID: 101, Position: "Developer",
			HireDate: model.NewDate(2023, 1, 1), DepartmentID: 1, DesignationID: 2,
		}
	}
	newRepo := func() *mockEmployeeRepo {
		return &mockEmployeeRepo{
			findByIDFn: func(_ context.Context, id int64) (*model.Employee, error) {
				if id != 5 {
					return nil, nil
				}
				return current(), nil
			},
			updateFn: func(context.Context, *model.Employee) error { return nil },
		}
	}
	svc := NewEmployeeService(newRepo(), security.NewMarkupDetector())

	t.Run("指定フィールドのみ更新", func(t *testing.T) {
		emp, err := svc.Update(context.Background(), 5, model.EmployeeInput{
			Position: model.Some("Lead"),
			HireDate: model.Some("2024-02-29"),
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if emp.Position != "Lead" || emp.HireDate.String() != "2024-02-29" {
			t.Errorf("emp = %+v", emp)
		}
		if emp.UserID != 101 || emp.DepartmentID != 1 || emp.DesignationID != 2 {
			t.Errorf("unrelated fields changed: %+v", emp)
		}
	})

	t.Run("不正な日付は400", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 5, model.EmployeeInput{HireDate: model.Some("2023-13-01")})
		assertAPIError(t, err, model.ErrCodeValidation, model.MsgInvalidDate)
	})

	t.Run("nullは400", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 5, model.EmployeeInput{DepartmentID: model.Null[int64]()})
		assertAPIError(t, err, model.ErrCodeValidation, "department_id cannot be null")
	})

	t.Run("存在しなければ404", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 6, model.EmployeeInput{Position: model.Some("x")})
		assertAPIError(t, err, model.ErrCodeNotFound, "Employee not found")
	})
}

func TestEmployeeService_Delete_NotFound(t *testing.T) {
	repo := &mockEmployeeRepo{
		deleteFn: func(context.Context, int64) error {
			return fmt.Errorf("delete employee: %w", repository.ErrNotFound)
		},
	}
	err := NewEmployeeService(repo, security.NewMarkupDetector()).Delete(context.Background(), 404)
	assertAPIError(t, err, model.ErrCodeNotFound, "Employee not found")
}
