package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/orgman/internal/middleware"
	"github.com/hitoshi/orgman/internal/model"
)

// maxRequestBodyBytes はリクエストボディの上限サイズ。
const maxRequestBodyBytes = 1 << 20

const msgInvalidBody = "Invalid request body"

// messageResponse は確認メッセージのみのレスポンス。
type messageResponse struct {
	Message string `json:"message"`
}

type departmentResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   *string `json:"created_at"`
}

type designationResponse struct {
	ID           int64   `json:"id"`
	ClassLevel   int     `json:"class"`
	Salary       float64 `json:"salary"`
	DepartmentID int64   `json:"department_id"`
	CreatedAt    *string `json:"created_at"`
}

type employeeResponse struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Position      string     `json:"position"`
	HireDate      model.Date `json:"hire_date"`
	DepartmentID  int64      `json:"department_id"`
	DesignationID int64      `json:"designation_id"`
	CreatedAt     *string    `json:"created_at"`
}

type projectResponse struct {
	ID                 int64       `json:"id"`
	Name               string      `json:"name"`
	Description        *string     `json:"description"`
	StartDate          *model.Date `json:"start_date"`
	EndDate            *model.Date `json:"end_date"`
	Status             string      `json:"status"`
	TeamLeadEmployeeID *int64      `json:"team_lead_employee_id"`
	CreatedAt          *string     `json:"created_at"`
}

type assignmentResponse struct {
	ID         int64   `json:"id"`
	ProjectID  int64   `json:"project_id"`
	EmployeeID int64   `json:"employee_id"`
	CreatedAt  *string `json:"created_at"`
}

// alreadyAssignedResponse は既存アサインを返す場合のレスポンス。
type alreadyAssignedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type userResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	ProfilePic string `json:"profile_pic"`
}

// timestamp は作成日時をISO-8601文字列に変換する。ゼロ値はnull。
func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func toDepartmentResponse(d *model.Department) any {
	return departmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   timestamp(d.CreatedAt),
	}
}

func toDesignationResponse(d *model.Designation) any {
	return designationResponse{
		ID:           d.ID,
		ClassLevel:   d.ClassLevel,
		Salary:       d.Salary,
		DepartmentID: d.DepartmentID,
		CreatedAt:    timestamp(d.CreatedAt),
	}
}

func toEmployeeResponse(e *model.Employee) any {
	return employeeResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		Position:      e.Position,
		HireDate:      e.HireDate,
		DepartmentID:  e.DepartmentID,
		DesignationID: e.DesignationID,
		CreatedAt:     timestamp(e.CreatedAt),
	}
}

func toProjectResponse(p *model.Project) any {
	return projectResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		Status:             p.Status,
		TeamLeadEmployeeID: p.TeamLeadEmployeeID,
		CreatedAt:          timestamp(p.CreatedAt),
	}
}

func toAssignmentResponse(pe *model.ProjectEmployee) assignmentResponse {
	return assignmentResponse{
		ID:         pe.ID,
		ProjectID:  pe.ProjectID,
		EmployeeID: pe.EmployeeID,
		CreatedAt:  timestamp(pe.CreatedAt),
	}
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		ProfilePic: u.ProfilePic,
	}
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON はリクエストボディをdstにデコードする。
// 不正なJSON、型の不一致、サイズ超過は400として扱う。
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		// 空ボディは空オブジェクトとして扱い、必須フィールドの検証に任せる
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", model.NewValidationError(msgInvalidBody), err)
	}
	return nil
}

// parseID はパスパラメータを正の整数IDとして解析する。
// 数値でないIDは該当リソースが存在しないものとして404を返す。
func parseID(r *http.Request, key, resource string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewNotFoundError(resource)
	}
	return id, nil
}

// handleServiceError はサービス層から返されたエラーをレスポンスに変換する。
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	middleware.WriteAPIError(w, r, err)
}

// notFound はルートが存在しない場合の404ハンドラー。
func notFound(w http.ResponseWriter, r *http.Request) {
	middleware.WriteErrorResponse(w, http.StatusNotFound, &model.APIError{
		Code:     model.ErrCodeNotFound,
		Message:  "Not found",
		Category: "resource",
	})
}

// methodNotAllowed はメソッドが許可されていない場合の405ハンドラー。
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	middleware.WriteErrorResponse(w, http.StatusMethodNotAllowed, &model.APIError{
		Code:     "METHOD_NOT_ALLOWED",
		Message:  "Method not allowed",
		Category: "resource",
	})
}
