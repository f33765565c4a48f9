package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/orgman/internal/model"
)

// ProjectServiceInterface はプロジェクトハンドラーが必要とするサービスインターフェース。
type ProjectServiceInterface interface {
	CRUDService[model.Project, model.ProjectInput]
	Assign(ctx context.Context, projectID int64, in model.AssignInput) (*model.ProjectEmployee, bool, error)
	Unassign(ctx context.Context, projectID, employeeID int64) error
	ListAssignments(ctx context.Context, projectID int64) ([]*model.ProjectEmployee, error)
}

// ProjectHandler はプロジェクトと従業員アサインのHTTPハンドラー。
type ProjectHandler struct {
	*CRUDHandler[model.Project, model.ProjectInput]
	service ProjectServiceInterface
}

// NewProjectHandler はProjectHandlerを生成する。
func NewProjectHandler(service ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		CRUDHandler: &CRUDHandler[model.Project, model.ProjectInput]{
			service:    service,
			resource:   "Project",
			toResponse: toProjectResponse,
		},
		service: service,
	}
}

// Assign は従業員をプロジェクトにアサインする。
// POST /projects/{id}/assign
// 新規は201、既にアサイン済みの場合は既存IDを200で返す。
func (h *ProjectHandler) Assign(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseID(r, "id", "Project")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var in model.AssignInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleServiceError(w, r, err)
		return
	}

	pe, created, err := h.service.Assign(r.Context(), projectID, in)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if !created {
		writeJSON(w, http.StatusOK, alreadyAssignedResponse{Message: "Already assigned", ID: pe.ID})
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentResponse(pe))
}

// Unassign はプロジェクトから従業員を外す。
// DELETE /projects/{id}/remove/{employee_id}
func (h *ProjectHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseID(r, "id", "Project")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	employeeID, err := parseID(r, "employee_id", "Assignment")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.service.Unassign(r.Context(), projectID, employeeID); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Employee removed from project"})
}

// ListAssignments はプロジェクトのアサイン一覧を返す。
// GET /projects/{id}/employees
func (h *ProjectHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseID(r, "id", "Project")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	list, err := h.service.ListAssignments(r.Context(), projectID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := make([]assignmentResponse, len(list))
	for i, pe := range list {
		resp[i] = toAssignmentResponse(pe)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Routes はCRUDルートに加えてアサイン関連のルートを登録する。
func (h *ProjectHandler) Routes(r chi.Router, writeGate func(http.Handler) http.Handler) {
	h.CRUDHandler.Routes(r, writeGate)
	r.Get("/{id}/employees", h.ListAssignments)

	r.Group(func(r chi.Router) {
		r.Use(writeGate)
		r.Post("/{id}/assign", h.Assign)
		r.Delete("/{id}/remove/{employee_id}", h.Unassign)
	})
}
