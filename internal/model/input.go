package model

// DepartmentInput は部署の作成・更新リクエスト。
type DepartmentInput struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// DesignationInput は職位の作成・更新リクエスト。
// 等級は外部表現では "class" キーで受け取る。
type DesignationInput struct {
	ClassLevel   Optional[int]     `json:"class"`
	Salary       Optional[float64] `json:"salary"`
	DepartmentID Optional[int64]   `json:"department_id"`
}

// EmployeeInput は従業員の作成・更新リクエスト。
type EmployeeInput struct {
	UserID        Optional[int64]  `json:"user_id"`
	Position      Optional[string] `json:"position"`
	HireDate      Optional[string] `json:"hire_date"`
	DepartmentID  Optional[int64]  `json:"department_id"`
	DesignationID Optional[int64]  `json:"designation_id"`
}

// ProjectInput はプロジェクトの作成・更新リクエスト。
type ProjectInput struct {
	Name               Optional[string] `json:"name"`
	Description        Optional[string] `json:"description"`
	StartDate          Optional[string] `json:"start_date"`
	EndDate            Optional[string] `json:"end_date"`
	Status             Optional[string] `json:"status"`
	TeamLeadEmployeeID Optional[int64]  `json:"team_lead_employee_id"`
}

// AssignInput はプロジェクトへの従業員アサインリクエスト。
type AssignInput struct {
	EmployeeID Optional[int64] `json:"employee_id"`
}
