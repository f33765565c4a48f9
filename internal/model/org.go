package model

import "time"

// DefaultProjectStatus はステータス未指定で作成されたプロジェクトの初期値。
const DefaultProjectStatus = "Planned"

// Department は部署を表す。
type Department struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
}

// Designation は部署に属する職位（等級と給与）を表す。
type Designation struct {
	ID           int64
	ClassLevel   int
	Salary       float64
	DepartmentID int64
	CreatedAt    time.Time
}

// Employee は従業員を表す。
// UserIDは外部システムのユーザー番号であり、usersテーブルとは紐付かない。
type Employee struct {
	ID            int64
	UserID        int64
	Position      string
	HireDate      Date
	DepartmentID  int64
	DesignationID int64
	CreatedAt     time.Time
}

// Project はプロジェクトを表す。
type Project struct {
	ID                 int64
	Name               string
	Description        *string
	StartDate          *Date
	EndDate            *Date
	Status             string
	TeamLeadEmployeeID *int64
	CreatedAt          time.Time
}

// ProjectEmployee はプロジェクトと従業員のアサインを表す。
// (ProjectID, EmployeeID) の組は一意。
type ProjectEmployee struct {
	ID         int64
	ProjectID  int64
	EmployeeID int64
	CreatedAt  time.Time
}
