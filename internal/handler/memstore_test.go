package handler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/hitoshi/orgman/internal/auth"
	"github.com/hitoshi/orgman/internal/model"
	"github.com/hitoshi/orgman/internal/repository"
)

// memDB は結合テスト用のインメモリストア。
// PostgreSQLの制約（一意・外部キー・CASCADE・SET NULL）を同じエラーで再現する。
type memDB struct {
	mu           sync.Mutex
	seq          int64
	users        map[int64]*model.User
	departments  map[int64]*model.Department
	designations map[int64]*model.Designation
	employees    map[int64]*model.Employee
	projects     map[int64]*model.Project
	assignments  map[int64]*model.ProjectEmployee
}

func newMemDB() *memDB {
	return &memDB{
		users:        map[int64]*model.User{},
		departments:  map[int64]*model.Department{},
		designations: map[int64]*model.Designation{},
		employees:    map[int64]*model.Employee{},
		projects:     map[int64]*model.Project{},
		assignments:  map[int64]*model.ProjectEmployee{},
	}
}

func (db *memDB) nextID() int64 {
	db.seq++
	return db.seq
}

func sortedValues[T any](m map[int64]*T) []*T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]*T, 0, len(keys))
	for _, k := range keys {
		v := *m[k]
		out = append(out, &v)
	}
	return out
}

func findCopy[T any](m map[int64]*T, id int64) *T {
	v, ok := m[id]
	if !ok {
		return nil
	}
	c := *v
	return &c
}

func (db *memDB) userCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users)
}

func (db *memDB) departmentCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.departments)
}

func (db *memDB) assignmentCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.assignments)
}

type memUsers struct{ db *memDB }

func (r memUsers) FindByID(ctx context.Context, id int64) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return findCopy(r.db.users, id), nil
}

func (r memUsers) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.GoogleID == googleID {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r memUsers) Create(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.GoogleID == user.GoogleID || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.db.nextID()
	user.CreatedAt = time.Now()
	c := *user
	r.db.users[user.ID] = &c
	return nil
}

type memDepartments struct{ db *memDB }

func (r memDepartments) List(ctx context.Context) ([]*model.Department, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return sortedValues(r.db.departments), nil
}

func (r memDepartments) FindByID(ctx context.Context, id int64) (*model.Department, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return findCopy(r.db.departments, id), nil
}

func (r memDepartments) Create(ctx context.Context, d *model.Department) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d.ID = r.db.nextID()
	d.CreatedAt = time.Now()
	c := *d
	r.db.departments[d.ID] = &c
	return nil
}

func (r memDepartments) Update(ctx context.Context, d *model.Department) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.departments[d.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *d
	r.db.departments[d.ID] = &c
	return nil
}

func (r memDepartments) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.departments[id]; !ok {
		return repository.ErrNotFound
	}
	for _, d := range r.db.designations {
		if d.DepartmentID == id {
			return repository.ErrReferenceViolation
		}
	}
	for _, e := range r.db.employees {
		if e.DepartmentID == id {
			return repository.ErrReferenceViolation
		}
	}
	delete(r.db.departments, id)
	return nil
}

type memDesignations struct{ db *memDB }

func (r memDesignations) List(ctx context.Context) ([]*model.Designation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return sortedValues(r.db.designations), nil
}

func (r memDesignations) FindByID(ctx context.Context, id int64) (*model.Designation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return findCopy(r.db.designations, id), nil
}

func (r memDesignations) Create(ctx context.Context, d *model.Designation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.departments[d.DepartmentID]; !ok {
		return repository.ErrReferenceViolation
	}
	d.ID = r.db.nextID()
	d.CreatedAt = time.Now()
	c := *d
	r.db.designations[d.ID] = &c
	return nil
}

func (r memDesignations) Update(ctx context.Context, d *model.Designation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.designations[d.ID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.db.departments[d.DepartmentID]; !ok {
		return repository.ErrReferenceViolation
	}
	c := *d
	r.db.designations[d.ID] = &c
	return nil
}

func (r memDesignations) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.designations[id]; !ok {
		return repository.ErrNotFound
	}
	for _, e := range r.db.employees {
		if e.DesignationID == id {
			return repository.ErrReferenceViolation
		}
	}
	delete(r.db.designations, id)
	return nil
}

type memEmployees struct{ db *memDB }

func (r memEmployees) List(ctx context.Context) ([]*model.Employee, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return sortedValues(r.db.employees), nil
}

func (r memEmployees) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return findCopy(r.db.employees, id), nil
}

func (r memEmployees) checkRefs(e *model.Employee) error {
	if _, ok := r.db.departments[e.DepartmentID]; !ok {
		return repository.ErrReferenceViolation
	}
	if _, ok := r.db.designations[e.DesignationID]; !ok {
		return repository.ErrReferenceViolation
	}
	return nil
}

func (r memEmployees) Create(ctx context.Context, e *model.Employee) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.checkRefs(e); err != nil {
		return err
	}
	e.ID = r.db.nextID()
	e.CreatedAt = time.Now()
	c := *e
	r.db.employees[e.ID] = &c
	return nil
}

func (r memEmployees) Update(ctx context.Context, e *model.Employee) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.employees[e.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.checkRefs(e); err != nil {
		return err
	}
	c := *e
	r.db.employees[e.ID] = &c
	return nil
}

func (r memEmployees) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.employees[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.employees, id)
	for aid, a := range r.db.assignments {
		if a.EmployeeID == id {
			delete(r.db.assignments, aid)
		}
	}
	for _, p := range r.db.projects {
		if p.TeamLeadEmployeeID != nil && *p.TeamLeadEmployeeID == id {
			p.TeamLeadEmployeeID = nil
		}
	}
	return nil
}

type memProjects struct{ db *memDB }

func (r memProjects) List(ctx context.Context) ([]*model.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return sortedValues(r.db.projects), nil
}

func (r memProjects) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return findCopy(r.db.projects, id), nil
}

func (r memProjects) checkLead(p *model.Project) error {
	if p.TeamLeadEmployeeID == nil {
		return nil
	}
	if _, ok := r.db.employees[*p.TeamLeadEmployeeID]; !ok {
		return repository.ErrReferenceViolation
	}
	return nil
}

func (r memProjects) Create(ctx context.Context, p *model.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.checkLead(p); err != nil {
		return err
	}
	p.ID = r.db.nextID()
	p.CreatedAt = time.Now()
	c := *p
	r.db.projects[p.ID] = &c
	return nil
}

func (r memProjects) Update(ctx context.Context, p *model.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.projects[p.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.checkLead(p); err != nil {
		return err
	}
	c := *p
	r.db.projects[p.ID] = &c
	return nil
}

func (r memProjects) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.projects, id)
	for aid, a := range r.db.assignments {
		if a.ProjectID == id {
			delete(r.db.assignments, aid)
		}
	}
	return nil
}

type memAssignments struct{ db *memDB }

func (r memAssignments) FindByProjectAndEmployee(ctx context.Context, projectID, employeeID int64) (*model.ProjectEmployee, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.assignments {
		if a.ProjectID == projectID && a.EmployeeID == employeeID {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r memAssignments) ListByProject(ctx context.Context, projectID int64) ([]*model.ProjectEmployee, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*model.ProjectEmployee
	for _, a := range sortedValues(r.db.assignments) {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAssignments) Create(ctx context.Context, pe *model.ProjectEmployee) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.assignments {
		if a.ProjectID == pe.ProjectID && a.EmployeeID == pe.EmployeeID {
			return repository.ErrDuplicate
		}
	}
	pe.ID = r.db.nextID()
	pe.CreatedAt = time.Now()
	c := *pe
	r.db.assignments[pe.ID] = &c
	return nil
}

func (r memAssignments) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.assignments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.assignments, id)
	return nil
}

// fakeProvider は認可コード "code-<name>" をそのユーザーのトークンに交換するIdP。
type fakeProvider struct {
	mu       sync.Mutex
	profiles map[string]*auth.Profile // アクセストークン → プロフィール
	revoked  []string
}

func (p *fakeProvider) LoginURL(state string) string {
	return "https://idp.example.com/authorize?state=" + state
}

func (p *fakeProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "token-" + code, TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}, nil
}

func (p *fakeProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (*auth.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	profile, ok := p.profiles[token.AccessToken]
	if !ok {
		return nil, errors.New("invalid access token")
	}
	return profile, nil
}

func (p *fakeProvider) Revoke(ctx context.Context, accessToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revoked = append(p.revoked, accessToken)
	return nil
}

func (p *fakeProvider) revokedTokens() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.revoked...)
}

var (
	_ repository.UserRepository        = memUsers{}
	_ repository.DepartmentRepository  = memDepartments{}
	_ repository.DesignationRepository = memDesignations{}
	_ repository.EmployeeRepository    = memEmployees{}
	_ repository.ProjectRepository     = memProjects{}
	_ repository.AssignmentRepository  = memAssignments{}
	_ auth.IdentityProvider            = (*fakeProvider)(nil)
)
