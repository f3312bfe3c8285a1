package employee_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeEmployeeService struct {
	CreateFn  func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn  func(ctx context.Context) ([]employee.EmployeeResponse, error)
	GetByIDFn func(ctx context.Context, id uint) (employee.EmployeeResponse, error)
	UpdateFn  func(ctx context.Context, id uint, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn  func(ctx context.Context, id uint) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id uint) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id uint, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id uint) error {
	return f.DeleteFn(ctx, id)
}

func setupRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	r := gin.New()
	employee.RegisterRoutes(r.Group("/api"), employee.NewHandler(svc, zap.NewNop()))
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Ada Lovelace", req.FullName)
				return employee.EmployeeResponse{ID: 1, FullName: req.FullName, Email: req.Email, Department: req.Department}, nil
			},
		}

		w := doRequest(setupRouter(svc), http.MethodPost, "/api/employees",
			`{"full_name":"Ada Lovelace","email":"ada@x.com","department":"Eng"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"full_name":"Ada Lovelace","email":"ada@x.com","department":"Eng"}`, w.Body.String())
	})

	t.Run("missing full name", func(t *testing.T) {
		w := doRequest(setupRouter(&fakeEmployeeService{}), http.MethodPost, "/api/employees", `{"email":"ada@x.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidInput)
		assert.Contains(t, w.Body.String(), "Full Name is required")
	})

	t.Run("blank full name", func(t *testing.T) {
		w := doRequest(setupRouter(&fakeEmployeeService{}), http.MethodPost, "/api/employees",
			`{"full_name":"   ","email":"ada@x.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Full Name is required")
	})

	t.Run("malformed email", func(t *testing.T) {
		w := doRequest(setupRouter(&fakeEmployeeService{}), http.MethodPost, "/api/employees",
			`{"full_name":"Ada","email":"not-an-email"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email is invalid")
	})

	t.Run("duplicate email returns 400 conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.EmailTaken(req.Email)
			},
		}

		w := doRequest(setupRouter(svc), http.MethodPost, "/api/employees", `{"full_name":"Ada","email":"ada@x.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
		assert.Contains(t, w.Body.String(), "ada@x.com")
	})

	t.Run("unexpected service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}

		w := doRequest(setupRouter(svc), http.MethodPost, "/api/employees", `{"full_name":"Ada","email":"ada@x.com"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
		assert.NotContains(t, w.Body.String(), "database connection failed")
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{ID: 1, FullName: "Andi", Email: "andi@comp.com", Department: "IT"},
				{ID: 2, FullName: "Budi", Email: "budi@comp.com", Department: "IT"},
			}, nil
		},
	}

	w := doRequest(setupRouter(svc), http.MethodGet, "/api/employees", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "["))
	assert.Contains(t, w.Body.String(), "Budi")
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id uint) (employee.EmployeeResponse, error) {
				assert.Equal(t, uint(7), id)
				return employee.EmployeeResponse{ID: 7, FullName: "Ada"}, nil
			},
		}

		w := doRequest(setupRouter(svc), http.MethodGet, "/api/employees/7", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":7`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id uint) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.NotFound(id)
			},
		}

		w := doRequest(setupRouter(svc), http.MethodGet, "/api/employees/42", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeNotFound)
	})

	t.Run("non numeric id", func(t *testing.T) {
		w := doRequest(setupRouter(&fakeEmployeeService{}), http.MethodGet, "/api/employees/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid employee ID")
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, id uint, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, uint(1), id)
				return employee.EmployeeResponse{ID: id, FullName: req.FullName, Email: req.Email, Department: req.Department}, nil
			},
		}

		w := doRequest(setupRouter(svc), http.MethodPut, "/api/employees/1",
			`{"full_name":"Ada King","email":"ada@x.com","department":"Math"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Ada King")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, id uint, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.NotFound(id)
			},
		}

		w := doRequest(setupRouter(svc), http.MethodPut, "/api/employees/9",
			`{"full_name":"Ada","email":"ada@x.com"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id uint) error { return nil },
		}

		w := doRequest(setupRouter(svc), http.MethodDelete, "/api/employees/1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Employee 1 deleted successfully"}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id uint) error { return employeeerrors.NotFound(id) },
		}

		w := doRequest(setupRouter(svc), http.MethodDelete, "/api/employees/1", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
