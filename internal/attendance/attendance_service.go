package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"go.uber.org/zap"
)

// UnknownEmployeeName is shown for records whose employee no longer resolves.
const UnknownEmployeeName = "Unknown"

// EmployeeDirectory is the slice of the employee service the ledger reads.
// Names are resolved through it on every response, never copied.
type EmployeeDirectory interface {
	GetByID(ctx context.Context, id uint) (employee.EmployeeResponse, error)
}

type Service interface {
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context) ([]AttendanceResponse, error)
	GetByID(ctx context.Context, id uint) (AttendanceResponse, error)
	Update(ctx context.Context, id uint, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id uint) error
	GetByEmployee(ctx context.Context, employeeID uint) ([]AttendanceResponse, error)
	GetByDate(ctx context.Context, date string) ([]AttendanceResponse, error)
}

type service struct {
	repo      Repository
	directory EmployeeDirectory
	publisher kafka.Publisher
	logger    *zap.Logger
}

func NewService(repo Repository, directory EmployeeDirectory, publisher kafka.Publisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		repo:      repo,
		directory: directory,
		publisher: publisher,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create attendance requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)

	row, err := buildAttendance(req.EmployeeID, req.Date, req.Status)
	if err != nil {
		return AttendanceResponse{}, err
	}

	empl, err := s.directory.GetByID(ctx, row.EmployeeID)
	if err != nil {
		s.logger.Warn("create attendance employee lookup failed",
			zap.String("request_id", rid),
			zap.Uint("employee_id", row.EmployeeID),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	existing, err := s.repo.FindByEmployeeAndDate(ctx, row.EmployeeID, row.Date)
	if err != nil && !errors.Is(mapRepositoryError(err), attendanceerrors.ErrAttendanceNotFound) {
		s.logger.Error("create attendance duplicate check failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if existing != nil {
		s.logger.Warn("create attendance already recorded",
			zap.String("request_id", rid),
			zap.Uint("employee_id", row.EmployeeID),
			zap.String("date", req.Date),
		)
		return AttendanceResponse{}, attendanceerrors.AlreadyExists(row.EmployeeID, row.Date.Format(DateLayout))
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, s.writeError(err, row)
	}

	s.publish(ctx, events.AttendanceCreated, *row)

	s.logger.Info("create attendance success",
		zap.String("request_id", rid),
		zap.Uint("attendance_id", row.ID),
	)
	return mapToResponse(*row, empl.FullName), nil
}

func (s *service) GetAll(ctx context.Context) ([]AttendanceResponse, error) {
	s.logger.Debug("get all attendance requested")

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return s.enrich(ctx, rows)
}

func (s *service) GetByID(ctx context.Context, id uint) (AttendanceResponse, error) {
	s.logger.Debug("get attendance by id requested", zap.Uint("attendance_id", id))

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, s.lookupError(err, id)
	}

	name, err := s.employeeName(ctx, row.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row, name), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update attendance requested",
		zap.String("request_id", rid),
		zap.Uint("attendance_id", id),
	)

	changes, err := buildAttendance(req.EmployeeID, req.Date, req.Status)
	if err != nil {
		return AttendanceResponse{}, err
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, s.lookupError(err, id)
	}

	empl, err := s.directory.GetByID(ctx, changes.EmployeeID)
	if err != nil {
		s.logger.Warn("update attendance employee lookup failed",
			zap.String("request_id", rid),
			zap.Uint("employee_id", changes.EmployeeID),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	holder, err := s.repo.FindByEmployeeAndDate(ctx, changes.EmployeeID, changes.Date)
	if err != nil && !errors.Is(mapRepositoryError(err), attendanceerrors.ErrAttendanceNotFound) {
		s.logger.Error("update attendance duplicate check failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if holder != nil && holder.ID != id {
		s.logger.Warn("update attendance would duplicate a day",
			zap.String("request_id", rid),
			zap.Uint("attendance_id", id),
			zap.Uint("holder_id", holder.ID),
		)
		return AttendanceResponse{}, attendanceerrors.AlreadyExists(changes.EmployeeID, changes.Date.Format(DateLayout))
	}

	row.EmployeeID = changes.EmployeeID
	row.Date = changes.Date
	row.Status = changes.Status

	if err := s.repo.Update(ctx, row); err != nil {
		mapped := s.writeError(err, row)
		if errors.Is(mapped, attendanceerrors.ErrAttendanceNotFound) {
			return AttendanceResponse{}, attendanceerrors.NotFound(id)
		}
		s.logger.Error("update attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapped
	}

	s.publish(ctx, events.AttendanceUpdated, *row)

	s.logger.Info("update attendance success", zap.String("request_id", rid), zap.Uint("attendance_id", id))
	return mapToResponse(*row, empl.FullName), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete attendance requested",
		zap.String("request_id", rid),
		zap.Uint("attendance_id", id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.lookupError(err, id)
	}

	s.publish(ctx, events.AttendanceDeleted, Attendance{ID: id})

	s.logger.Info("delete attendance success", zap.String("request_id", rid), zap.Uint("attendance_id", id))
	return nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID uint) ([]AttendanceResponse, error) {
	s.logger.Debug("get attendance by employee requested", zap.Uint("employee_id", employeeID))

	empl, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get attendance by employee failed", zap.Uint("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r, empl.FullName)
	}
	return res, nil
}

func (s *service) GetByDate(ctx context.Context, date string) ([]AttendanceResponse, error) {
	s.logger.Debug("get attendance by date requested", zap.String("date", date))

	day, err := ParseDate(date)
	if err != nil {
		return nil, attendanceerrors.InvalidDate(date)
	}

	rows, err := s.repo.FindAllByDate(ctx, day)
	if err != nil {
		s.logger.Error("get attendance by date failed", zap.String("date", date), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return s.enrich(ctx, rows)
}

// enrich resolves each distinct employee once per call.
func (s *service) enrich(ctx context.Context, rows []Attendance) ([]AttendanceResponse, error) {
	names := make(map[uint]string)
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		name, ok := names[r.EmployeeID]
		if !ok {
			var err error
			name, err = s.employeeName(ctx, r.EmployeeID)
			if err != nil {
				return nil, err
			}
			names[r.EmployeeID] = name
		}
		res[i] = mapToResponse(r, name)
	}
	return res, nil
}

func (s *service) employeeName(ctx context.Context, employeeID uint) (string, error) {
	empl, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return UnknownEmployeeName, nil
		}
		return "", err
	}
	return empl.FullName, nil
}

func (s *service) lookupError(err error, id uint) error {
	mapped := mapRepositoryError(err)
	if errors.Is(mapped, attendanceerrors.ErrAttendanceNotFound) {
		return attendanceerrors.NotFound(id)
	}
	s.logger.Error("attendance lookup failed", zap.Uint("attendance_id", id), zap.Error(err))
	return mapped
}

// writeError maps constraint violations raised by the store itself, which
// happen when a concurrent request wins between the check and the write.
func (s *service) writeError(err error, row *Attendance) error {
	mapped := mapRepositoryError(err)
	switch {
	case errors.Is(mapped, attendanceerrors.ErrAttendanceAlreadyExists):
		return attendanceerrors.AlreadyExists(row.EmployeeID, row.Date.Format(DateLayout))
	case errors.Is(mapped, employeeerrors.ErrEmployeeNotFound):
		return employeeerrors.NotFound(row.EmployeeID)
	}
	return mapped
}

func (s *service) publish(ctx context.Context, eventType string, row Attendance) {
	if s.publisher == nil {
		return
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.AttendanceRecordedEvent{
		EventType:    eventType,
		RequestID:    rid,
		AttendanceID: row.ID,
		EmployeeID:   row.EmployeeID,
		Status:       row.Status,
		OccurredAt:   time.Now().UTC(),
	}
	if !row.Date.IsZero() {
		event.Date = row.Date.Format(DateLayout)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal attendance event failed", zap.String("request_id", rid), zap.Error(err))
		return
	}

	if err := s.publisher.Publish(ctx, kafka.Event{
		Topic:         events.AttendanceRecordedTopic,
		EventType:     eventType,
		AggregateType: "attendance",
		AggregateID:   strconv.FormatUint(uint64(row.ID), 10),
		RequestID:     rid,
		Payload:       payload,
	}); err != nil {
		s.logger.Warn("publish attendance event failed",
			zap.String("request_id", rid),
			zap.String("event_type", eventType),
			zap.Uint("attendance_id", row.ID),
			zap.Error(err),
		)
	}
}

func buildAttendance(employeeID uint, date, status string) (*Attendance, error) {
	if employeeID == 0 {
		return nil, apperror.RequiredField("Employee Id")
	}
	day, err := ParseDate(strings.TrimSpace(date))
	if err != nil {
		return nil, attendanceerrors.InvalidDate(date)
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperror.RequiredField("Status")
	}

	return &Attendance{
		EmployeeID: employeeID,
		Date:       day,
		Status:     status,
	}, nil
}

func mapToResponse(a Attendance, employeeName string) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: employeeName,
		Date:         a.Date.Format(DateLayout),
		Status:       a.Status,
	}
}
