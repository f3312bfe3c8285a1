package employee

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeListKey = "employees:all"
	employeeListTTL = time.Hour
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo      Repository
	rdb       *redis.Client
	publisher kafka.Publisher
	sf        *singleflight.Group
	listGen   atomic.Uint64 // bumped by every write
	logger    *zap.Logger
}

// NewService builds the employee directory. rdb and publisher are optional;
// without them the list is read straight from the repository and no events
// are emitted.
func NewService(repo Repository, rdb *redis.Client, publisher kafka.Publisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:      repo,
		rdb:       rdb,
		publisher: publisher,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	empl, err := buildEmployee(req.FullName, req.Email, req.Department)
	if err != nil {
		return EmployeeResponse{}, err
	}

	existing, err := s.repo.FindByEmail(ctx, empl.Email)
	if err != nil && !errors.Is(mapRepositoryError(err), employeeerrors.ErrEmployeeNotFound) {
		s.logger.Error("create employee email lookup failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if existing != nil {
		s.logger.Warn("create employee email already taken",
			zap.String("request_id", rid),
			zap.String("email", empl.Email),
		)
		return EmployeeResponse{}, employeeerrors.EmailTaken(empl.Email)
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, employeeerrors.ErrEmployeeAlreadyExists) {
			// lost the race against a concurrent create
			return EmployeeResponse{}, employeeerrors.EmailTaken(empl.Email)
		}
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapped
	}

	s.invalidateList(ctx)
	s.publish(ctx, events.EmployeeCreated, *empl)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", empl.ID),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")

	if s.rdb == nil {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("get all employees failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}
		return mapToListResponse(empls), nil
	}

	if cached, err := s.rdb.Get(ctx, EmployeeListKey).Result(); err == nil {
		var resp []EmployeeResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			return resp, nil
		}
	}

	v, err, _ := s.sf.Do(EmployeeListKey, func() (interface{}, error) {
		gen := s.listGen.Load()

		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("get all employees failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)
		s.fillList(ctx, gen, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

// fillList caches resp unless a write happened since the snapshot was taken.
// The second generation check covers a write whose Del landed before our Set.
func (s *service) fillList(ctx context.Context, gen uint64, resp []EmployeeResponse) {
	if s.listGen.Load() != gen {
		return
	}
	jsonData, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, EmployeeListKey, jsonData, employeeListTTL).Err(); err != nil {
		s.logger.Warn("cache employee list failed", zap.Error(err))
		return
	}
	if s.listGen.Load() != gen {
		s.rdb.Del(ctx, EmployeeListKey)
	}
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Uint("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, s.lookupError(err, id)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	changes, err := buildEmployee(req.FullName, req.Email, req.Department)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, s.lookupError(err, id)
	}

	owner, err := s.repo.FindByEmail(ctx, changes.Email)
	if err != nil && !errors.Is(mapRepositoryError(err), employeeerrors.ErrEmployeeNotFound) {
		s.logger.Error("update employee email lookup failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if owner != nil && owner.ID != id {
		s.logger.Warn("update employee email already taken",
			zap.String("request_id", rid),
			zap.Uint("employee_id", id),
			zap.Uint("owner_id", owner.ID),
		)
		return EmployeeResponse{}, employeeerrors.EmailTaken(changes.Email)
	}

	empl.FullName = changes.FullName
	empl.Email = changes.Email
	empl.Department = changes.Department

	if err := s.repo.Update(ctx, empl); err != nil {
		mapped := mapRepositoryError(err)
		switch {
		case errors.Is(mapped, employeeerrors.ErrEmployeeAlreadyExists):
			return EmployeeResponse{}, employeeerrors.EmailTaken(empl.Email)
		case errors.Is(mapped, employeeerrors.ErrEmployeeNotFound):
			return EmployeeResponse{}, employeeerrors.NotFound(id)
		}
		s.logger.Error("update employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapped
	}

	s.invalidateList(ctx)
	s.publish(ctx, events.EmployeeUpdated, *empl)

	s.logger.Info("update employee success", zap.String("request_id", rid), zap.Uint("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.lookupError(err, id)
	}

	s.invalidateList(ctx)
	s.publish(ctx, events.EmployeeDeleted, Employee{ID: id})

	s.logger.Info("delete employee success", zap.String("request_id", rid), zap.Uint("employee_id", id))
	return nil
}

func (s *service) lookupError(err error, id uint) error {
	mapped := mapRepositoryError(err)
	if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
		s.logger.Debug("employee not found", zap.Uint("employee_id", id))
		return employeeerrors.NotFound(id)
	}
	s.logger.Error("employee lookup failed", zap.Uint("employee_id", id), zap.Error(err))
	return mapped
}

func (s *service) invalidateList(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	s.listGen.Add(1)
	s.sf.Forget(EmployeeListKey)
	if err := s.rdb.Del(ctx, EmployeeListKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", EmployeeListKey),
		)
	}
}

// publish is best effort: the write has already happened, so a broker
// failure is logged and not returned to the caller.
func (s *service) publish(ctx context.Context, eventType string, empl Employee) {
	if s.publisher == nil {
		return
	}

	rid := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		EmployeeID: empl.ID,
		Email:      empl.Email,
		Department: empl.Department,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal employee event failed", zap.String("request_id", rid), zap.Error(err))
		return
	}

	if err := s.publisher.Publish(ctx, kafka.Event{
		Topic:         events.EmployeeLifecycleTopic,
		EventType:     eventType,
		AggregateType: "employee",
		AggregateID:   strconv.FormatUint(uint64(empl.ID), 10),
		RequestID:     rid,
		Payload:       payload,
	}); err != nil {
		s.logger.Warn("publish employee event failed",
			zap.String("request_id", rid),
			zap.String("event_type", eventType),
			zap.Uint("employee_id", empl.ID),
			zap.Error(err),
		)
	}
}

func buildEmployee(fullName, email, department string) (*Employee, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, apperror.RequiredField("Full Name")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.RequiredField("Email")
	}
	department = strings.TrimSpace(department)
	if department == "" {
		department = DefaultDepartment
	}

	return &Employee{
		FullName:   fullName,
		Email:      email,
		Department: department,
	}, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         empl.ID,
		FullName:   empl.FullName,
		Email:      empl.Email,
		Department: empl.Department,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
