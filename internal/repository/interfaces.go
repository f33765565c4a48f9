// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/orgman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByGoogleID は外部IdPのIDでユーザーを検索する。見つからない場合はnilを返す。
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)

	// Create はユーザーを作成し、採番されたIDと作成日時をuserに設定する。
	// email、google_idが重複する場合はErrDuplicateを返す。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// UpdateUserID は解決済みのローカルユーザーIDをセッションに記録する。
	UpdateUserID(ctx context.Context, id string, userID int64) error
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// ExpiredSessionDeleter は期限切れセッションの一括削除インターフェース。
type ExpiredSessionDeleter interface {
	// DeleteExpired は期限切れセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}

// DepartmentRepository は部署データの永続化インターフェース。
type DepartmentRepository interface {
	// List は全部署をID順で返す。
	List(ctx context.Context) ([]*model.Department, error)
	// FindByID は指定IDの部署を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Department, error)
	// Create は部署を作成し、IDと作成日時を設定する。
	Create(ctx context.Context, dept *model.Department) error
	// Update は部署を上書き更新する。
	Update(ctx context.Context, dept *model.Department) error
	// Delete は部署を削除する。参照中の場合はErrReferenceViolationを返す。
	Delete(ctx context.Context, id int64) error
}

// DesignationRepository は職位データの永続化インターフェース。
type DesignationRepository interface {
	List(ctx context.Context) ([]*model.Designation, error)
	FindByID(ctx context.Context, id int64) (*model.Designation, error)
	// Create は職位を作成する。部署が存在しない場合はErrReferenceViolationを返す。
	Create(ctx context.Context, desig *model.Designation) error
	Update(ctx context.Context, desig *model.Designation) error
	Delete(ctx context.Context, id int64) error
}

// EmployeeRepository は従業員データの永続化インターフェース。
type EmployeeRepository interface {
	List(ctx context.Context) ([]*model.Employee, error)
	FindByID(ctx context.Context, id int64) (*model.Employee, error)
	// Create は従業員を作成する。部署・職位が存在しない場合はErrReferenceViolationを返す。
	Create(ctx context.Context, emp *model.Employee) error
	Update(ctx context.Context, emp *model.Employee) error
	// Delete は従業員を削除する。アサインはCASCADE削除、リーダー参照はNULLになる。
	Delete(ctx context.Context, id int64) error
}

// ProjectRepository はプロジェクトデータの永続化インターフェース。
type ProjectRepository interface {
	List(ctx context.Context) ([]*model.Project, error)
	FindByID(ctx context.Context, id int64) (*model.Project, error)
	Create(ctx context.Context, proj *model.Project) error
	Update(ctx context.Context, proj *model.Project) error
	Delete(ctx context.Context, id int64) error
}

// AssignmentRepository はプロジェクトと従業員のアサインの永続化インターフェース。
type AssignmentRepository interface {
	// FindByProjectAndEmployee は組に対応するアサインを取得する。見つからない場合はnilを返す。
	FindByProjectAndEmployee(ctx context.Context, projectID, employeeID int64) (*model.ProjectEmployee, error)
	// ListByProject はプロジェクトの全アサインを返す。
	ListByProject(ctx context.Context, projectID int64) ([]*model.ProjectEmployee, error)
	// Create はアサインを作成する。組が既に存在する場合はErrDuplicateを返す。
	Create(ctx context.Context, pe *model.ProjectEmployee) error
	// Delete は指定IDのアサインを削除する。
	Delete(ctx context.Context, id int64) error
}
