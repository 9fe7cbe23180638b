package serviceImp

import (
	"fmt"
	"time"

	"agroadvisor/entities"
	fieldrepo "agroadvisor/pkg/field/repository"
	repo "agroadvisor/pkg/schedule/repository"
	"agroadvisor/pkg/schedule/service"
)

var statuses = map[string]bool{"todo": true, "done": true, "skipped": true}

type schedSvc struct {
	r      repo.ScheduleRepository
	fields fieldrepo.FieldRepository
}

func NewScheduleService(r repo.ScheduleRepository, fields fieldrepo.FieldRepository) service.ScheduleService {
	return &schedSvc{r: r, fields: fields}
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", entities.ErrInvalidInput, s)
	}
	return d, nil
}

func (s *schedSvc) List(fieldID uint, uid string, from, to string) ([]entities.ScheduleTask, error) {
	if _, err := s.fields.FindByID(fieldID, uid); err != nil {
		return nil, err
	}
	f, err := parseDay(from)
	if err != nil {
		return nil, err
	}
	t, err := parseDay(to)
	if err != nil {
		return nil, err
	}
	if !t.IsZero() {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond) // inclusive end day
	}
	return s.r.List(fieldID, f, t)
}

func (s *schedSvc) Patch(taskID uint, uid string, status string, qty *float64) error {
	if status == "" {
		status = "done"
	}
	if !statuses[status] {
		return fmt.Errorf("%w: unknown status %q", entities.ErrInvalidInput, status)
	}
	return s.r.PatchStatus(taskID, uid, status, qty)
}
