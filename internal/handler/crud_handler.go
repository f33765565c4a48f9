package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/orgman/internal/model"
)

// CRUDService はエンティティの作成・取得・更新・削除を提供するサービスインターフェース。
// Eはエンティティ、Iは作成・更新リクエストの型。
type CRUDService[E any, I any] interface {
	List(ctx context.Context) ([]*E, error)
	Get(ctx context.Context, id int64) (*E, error)
	Create(ctx context.Context, in I) (*E, error)
	Update(ctx context.Context, id int64, in I) (*E, error)
	Delete(ctx context.Context, id int64) error
}

// DepartmentServiceInterface は部署ハンドラーが必要とするサービスインターフェース。
type DepartmentServiceInterface = CRUDService[model.Department, model.DepartmentInput]

// DesignationServiceInterface は職位ハンドラーが必要とするサービスインターフェース。
type DesignationServiceInterface = CRUDService[model.Designation, model.DesignationInput]

// EmployeeServiceInterface は従業員ハンドラーが必要とするサービスインターフェース。
type EmployeeServiceInterface = CRUDService[model.Employee, model.EmployeeInput]

// CRUDHandler は単一エンティティのCRUDハンドラー。
type CRUDHandler[E any, I any] struct {
	service    CRUDService[E, I]
	resource   string // "Employee" のような表示名
	toResponse func(*E) any
}

// NewDepartmentHandler は部署のCRUDハンドラーを生成する。
func NewDepartmentHandler(service DepartmentServiceInterface) *CRUDHandler[model.Department, model.DepartmentInput] {
	return &CRUDHandler[model.Department, model.DepartmentInput]{service: service, resource: "Department", toResponse: toDepartmentResponse}
}

// NewDesignationHandler は職位のCRUDハンドラーを生成する。
func NewDesignationHandler(service DesignationServiceInterface) *CRUDHandler[model.Designation, model.DesignationInput] {
	return &CRUDHandler[model.Designation, model.DesignationInput]{service: service, resource: "Designation", toResponse: toDesignationResponse}
}

// NewEmployeeHandler は従業員のCRUDハンドラーを生成する。
func NewEmployeeHandler(service EmployeeServiceInterface) *CRUDHandler[model.Employee, model.EmployeeInput] {
	return &CRUDHandler[model.Employee, model.EmployeeInput]{service: service, resource: "Employee", toResponse: toEmployeeResponse}
}

// List は全件を返す。
// GET /{resources}
func (h *CRUDHandler[E, I]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := make([]any, len(items))
	for i, item := range items {
		resp[i] = h.toResponse(item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get は1件を返す。
// GET /{resources}/{id}
func (h *CRUDHandler[E, I]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", h.resource)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(item))
}

// Create は新規作成し201を返す。
// POST /{resources}
func (h *CRUDHandler[E, I]) Create(w http.ResponseWriter, r *http.Request) {
	var in I
	if err := decodeJSON(w, r, &in); err != nil {
		handleServiceError(w, r, err)
		return
	}

	item, err := h.service.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toResponse(item))
}

// Update はペイロードに含まれるフィールドのみ更新する。
// PUT /{resources}/{id}
func (h *CRUDHandler[E, I]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", h.resource)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var in I
	if err := decodeJSON(w, r, &in); err != nil {
		handleServiceError(w, r, err)
		return
	}

	item, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(item))
}

// Delete は削除し確認メッセージを返す。
// DELETE /{resources}/{id}
func (h *CRUDHandler[E, I]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", h.resource)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("%s deleted", h.resource)})
}

// Routes は公開の読み取りルートと、writeGateで保護した書き込みルートを登録する。
func (h *CRUDHandler[E, I]) Routes(r chi.Router, writeGate func(http.Handler) http.Handler) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(writeGate)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
