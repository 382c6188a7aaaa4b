package employee

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/almatbakh/staff-api/internal/httputil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler serves the employee, attendance and advance endpoints. All of them
// sit behind the auth gate; the mutating ones additionally behind the admin
// gate (wired in main).
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Log        *zap.SugaredLogger
}

func NewHandler(db *gorm.DB, log *zap.SugaredLogger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Log: log}
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req addEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(req.Name) < 2 || len(req.Position) < 2 || len(req.Phone) < 8 || req.DailySalary < 1 {
		httputil.Error(w, http.StatusBadRequest, "Validation failed")
		return
	}

	e := Employee{
		Name:        req.Name,
		Position:    req.Position,
		Phone:       req.Phone,
		DailySalary: req.DailySalary,
	}
	if err := h.Repository.Save(h.DB, &e); err != nil {
		h.Log.Errorw("add employee", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"id":      e.ID,
		"message": "Employee added successfully",
		"success": true,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Repository.ListAll(h.DB)
	if err != nil {
		h.Log.Errorw("list employees", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	httputil.JSON(w, http.StatusOK, employees)
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	var req editEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.ID == "" || len(req.Name) < 2 || len(req.Position) < 2 || len(req.Phone) < 8 || req.DailySalary < 1 {
		httputil.Error(w, http.StatusBadRequest, "Validation failed")
		return
	}

	changed := Employee{
		Name:        req.Name,
		Position:    req.Position,
		Phone:       req.Phone,
		DailySalary: req.DailySalary,
	}
	if err := h.Repository.Update(h.DB, req.ID, &changed); err != nil {
		h.writeRepoError(w, "edit employee", err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Employee updated successfully",
		"success": true,
	})
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	var req removeEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		httputil.Error(w, http.StatusBadRequest, "Bad Request")
		return
	}
	if err := h.Repository.Delete(h.DB, req.ID); err != nil {
		h.Log.Errorw("remove employee", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "Employee removed successfully"})
}

func (h *Handler) ChangePresence(w http.ResponseWriter, r *http.Request) {
	var req changePresenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.ID == "" || req.Date == "" {
		httputil.Error(w, http.StatusBadRequest, "Validation failed")
		return
	}
	if err := h.Repository.SetPresence(h.DB, req.ID, req.Date, req.Presence); err != nil {
		h.writeRepoError(w, "change presence", err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Presence updated successfully",
	})
}

func (h *Handler) ModifyAdvance(w http.ResponseWriter, r *http.Request) {
	var req modifyAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.EmployeeID == "" || req.Date == "" || req.Advance < 0 {
		httputil.Error(w, http.StatusBadRequest, "Validation failed")
		return
	}
	if err := h.Repository.SetAdvance(h.DB, req.EmployeeID, req.Date, req.Advance); err != nil {
		h.writeRepoError(w, "modify advance", err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Advance added successfully",
	})
}

func (h *Handler) DeleteAdvance(w http.ResponseWriter, r *http.Request) {
	var req deleteAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.EmployeeID == "" || req.Date == "" {
		httputil.Error(w, http.StatusBadRequest, "Validation failed")
		return
	}
	if err := h.Repository.RemoveAdvance(h.DB, req.EmployeeID, req.Date); err != nil {
		h.writeRepoError(w, "delete advance", err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "Advance record deleted successfully"})
}

func (h *Handler) writeRepoError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrAdvanceNotFound) {
		httputil.Error(w, http.StatusNotFound, "Advance record not found for the specified date")
		return
	}
	if errors.Is(err, ErrNotFound) {
		httputil.Error(w, http.StatusNotFound, "Employee not found")
		return
	}
	h.Log.Errorw(op, "err", err)
	httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
}
