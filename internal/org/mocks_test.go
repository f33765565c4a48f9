package org

import (
	"context"

	"github.com/hitoshi/orgman/internal/model"
	"github.com/hitoshi/orgman/internal/repository"
)

// --- モック定義 ---

type mockDepartmentRepo struct {
	listFn     func(ctx context.Context) ([]*model.Department, error)
	findByIDFn func(ctx context.Context, id int64) (*model.Department, error)
	createFn   func(ctx context.Context, d *model.Department) error
	updateFn   func(ctx context.Context, d *model.Department) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockDepartmentRepo) List(ctx context.Context) ([]*model.Department, error) {
	return m.listFn(ctx)
}
func (m *mockDepartmentRepo) FindByID(ctx context.Context, id int64) (*model.Department, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockDepartmentRepo) Create(ctx context.Context, d *model.Department) error {
	return m.createFn(ctx, d)
}
func (m *mockDepartmentRepo) Update(ctx context.Context, d *model.Department) error {
	return m.updateFn(ctx, d)
}
func (m *mockDepartmentRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockDesignationRepo struct {
	findByIDFn func(ctx context.Context, id int64) (*model.Designation, error)
	createFn   func(ctx context.Context, d *model.Designation) error
	updateFn   func(ctx context.Context, d *model.Designation) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockDesignationRepo) List(ctx context.Context) ([]*model.Designation, error) {
	return nil, nil
}
func (m *mockDesignationRepo) FindByID(ctx context.Context, id int64) (*model.Designation, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockDesignationRepo) Create(ctx context.Context, d *model.Designation) error {
	return m.createFn(ctx, d)
}
func (m *mockDesignationRepo) Update(ctx context.Context, d *model.Designation) error {
	return m.updateFn(ctx, d)
}
func (m *mockDesignationRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockEmployeeRepo struct {
	findByIDFn func(ctx context.Context, id int64) (*model.Employee, error)
	createFn   func(ctx context.Context, e *model.Employee) error
	updateFn   func(ctx context.Context, e *model.Employee) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockEmployeeRepo) List(ctx context.Context) ([]*model.Employee, error) {
	return nil, nil
}
func (m *mockEmployeeRepo) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEmployeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return m.createFn(ctx, e)
}
func (m *mockEmployeeRepo) Update(ctx context.Context, e *model.Employee) error {
	return m.updateFn(ctx, e)
}
func (m *mockEmployeeRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockProjectRepo struct {
	findByIDFn func(ctx context.Context, id int64) (*model.Project, error)
	createFn   func(ctx context.Context, p *model.Project) error
	updateFn   func(ctx context.Context, p *model.Project) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockProjectRepo) List(ctx context.Context) ([]*model.Project, error) {
	return nil, nil
}
func (m *mockProjectRepo) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	return m.createFn(ctx, p)
}
func (m *mockProjectRepo) Update(ctx context.Context, p *model.Project) error {
	return m.updateFn(ctx, p)
}
func (m *mockProjectRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockAssignmentRepo struct {
	findFn   func(ctx context.Context, projectID, employeeID int64) (*model.ProjectEmployee, error)
	listFn   func(ctx context.Context, projectID int64) ([]*model.ProjectEmployee, error)
	createFn func(ctx context.Context, pe *model.ProjectEmployee) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockAssignmentRepo) FindByProjectAndEmployee(ctx context.Context, projectID, employeeID int64) (*model.ProjectEmployee, error) {
	return m.findFn(ctx, projectID, employeeID)
}
func (m *mockAssignmentRepo) ListByProject(ctx context.Context, projectID int64) ([]*model.ProjectEmployee, error) {
	return m.listFn(ctx, projectID)
}
func (m *mockAssignmentRepo) Create(ctx context.Context, pe *model.ProjectEmployee) error {
	return m.createFn(ctx, pe)
}
func (m *mockAssignmentRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// --- compile-time interface checks ---
var _ repository.DepartmentRepository = (*mockDepartmentRepo)(nil)
var _ repository.DesignationRepository = (*mockDesignationRepo)(nil)
var _ repository.EmployeeRepository = (*mockEmployeeRepo)(nil)
var _ repository.ProjectRepository = (*mockProjectRepo)(nil)
var _ repository.AssignmentRepository = (*mockAssignmentRepo)(nil)
