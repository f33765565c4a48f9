package handler

import (
	"context"

	"github.com/hitoshi/orgman/internal/auth"
	"github.com/hitoshi/orgman/internal/middleware"
	"github.com/hitoshi/orgman/internal/model"
)

// --- モック定義 ---

type mockAuthService struct {
	getLoginURLFn    func(state string) string
	handleCallbackFn func(ctx context.Context, code string) (*model.Session, error)
	provisionFn      func(ctx context.Context, sessionID string) (*model.User, error)
	logoutFn         func(ctx context.Context, sessionID string) error
	getCurrentUserFn func(ctx context.Context, userID int64) (*model.User, error)
}

func (m *mockAuthService) GetLoginURL(state string) string {
	if m.getLoginURLFn != nil {
		return m.getLoginURLFn(state)
	}
	return ""
}

func (m *mockAuthService) HandleCallback(ctx context.Context, code string) (*model.Session, error) {
	if m.handleCallbackFn != nil {
		return m.handleCallbackFn(ctx, code)
	}
	return nil, nil
}

func (m *mockAuthService) Provision(ctx context.Context, sessionID string) (*model.User, error) {
	if m.provisionFn != nil {
		return m.provisionFn(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) GetCurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	if m.getCurrentUserFn != nil {
		return m.getCurrentUserFn(ctx, userID)
	}
	return nil, nil
}

type mockCRUDService[E any, I any] struct {
	listFn   func(ctx context.Context) ([]*E, error)
	getFn    func(ctx context.Context, id int64) (*E, error)
	createFn func(ctx context.Context, in I) (*E, error)
	updateFn func(ctx context.Context, id int64, in I) (*E, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockCRUDService[E, I]) List(ctx context.Context) ([]*E, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCRUDService[E, I]) Get(ctx context.Context, id int64) (*E, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCRUDService[E, I]) Create(ctx context.Context, in I) (*E, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return nil, nil
}

func (m *mockCRUDService[E, I]) Update(ctx context.Context, id int64, in I) (*E, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, in)
	}
	return nil, nil
}

func (m *mockCRUDService[E, I]) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockProjectService struct {
	mockCRUDService[model.Project, model.ProjectInput]
	assignFn          func(ctx context.Context, projectID int64, in model.AssignInput) (*model.ProjectEmployee, bool, error)
	unassignFn        func(ctx context.Context, projectID, employeeID int64) error
	listAssignmentsFn func(ctx context.Context, projectID int64) ([]*model.ProjectEmployee, error)
}

func (m *mockProjectService) Assign(ctx context.Context, projectID int64, in model.AssignInput) (*model.ProjectEmployee, bool, error) {
	if m.assignFn != nil {
		return m.assignFn(ctx, projectID, in)
	}
	return nil, false, nil
}

func (m *mockProjectService) Unassign(ctx context.Context, projectID, employeeID int64) error {
	if m.unassignFn != nil {
		return m.unassignFn(ctx, projectID, employeeID)
	}
	return nil
}

func (m *mockProjectService) ListAssignments(ctx context.Context, projectID int64) ([]*model.ProjectEmployee, error) {
	if m.listAssignmentsFn != nil {
		return m.listAssignmentsFn(ctx, projectID)
	}
	return nil, nil
}

type mockGateResolver struct {
	resolveFn func(ctx context.Context, sessionID string) (auth.GateResult, error)
}

func (m *mockGateResolver) Resolve(ctx context.Context, sessionID string) (auth.GateResult, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, sessionID)
	}
	return auth.GateResult{Status: auth.Unauthenticated}, nil
}

type mockHealthChecker struct {
	pingFn func(ctx context.Context) error
}

func (m *mockHealthChecker) PingContext(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

var (
	_ AuthServiceInterface       = (*mockAuthService)(nil)
	_ DepartmentServiceInterface = (*mockCRUDService[model.Department, model.DepartmentInput])(nil)
	_ ProjectServiceInterface    = (*mockProjectService)(nil)
	_ middleware.GateResolver    = (*mockGateResolver)(nil)
	_ HealthChecker              = (*mockHealthChecker)(nil)
)
