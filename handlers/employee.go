package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"otconsole/models"
	"otconsole/response"
)

type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

type employeeRequest struct {
	EmployeeNo   string `json:"employee_no"`
	EmployeeName string `json:"employee_name"`
}

func (req *employeeRequest) normalize() bool {
	req.EmployeeNo = strings.TrimSpace(req.EmployeeNo)
	req.EmployeeName = strings.TrimSpace(req.EmployeeName)
	return req.EmployeeNo != "" && req.EmployeeName != ""
}

// List returns the directory ordered by employee number. An employee_no
// query narrows it to one employee.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.db.WithContext(r.Context()).Order("employee_no asc")
	if no := strings.TrimSpace(r.URL.Query().Get("employee_no")); no != "" {
		q = q.Where("employee_no = ?", no)
	}

	var employees []models.Employee
	if err := q.Find(&employees).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	if !req.normalize() {
		response.BadRequest(w, "Fill required fields.", nil)
		return
	}

	employee := models.Employee{EmployeeNo: req.EmployeeNo, EmployeeName: req.EmployeeName}
	if err := h.db.WithContext(r.Context()).Create(&employee).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created", employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	if !req.normalize() {
		response.BadRequest(w, "Fill required fields.", nil)
		return
	}

	var employee models.Employee
	if err := h.db.WithContext(r.Context()).First(&employee, id).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	employee.EmployeeNo = req.EmployeeNo
	employee.EmployeeName = req.EmployeeName
	if err := h.db.WithContext(r.Context()).Save(&employee).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated", employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result := h.db.WithContext(r.Context()).Delete(&models.Employee{}, id)
	if result.Error != nil {
		response.HandleError(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(w, "Employee not found")
		return
	}
	response.SuccessWithMessage(w, "Employee deleted", nil)
}
