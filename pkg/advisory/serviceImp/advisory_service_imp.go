package serviceImp

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"agroadvisor/entities"
	"agroadvisor/pkg/advisory/repository"
	"agroadvisor/pkg/advisory/service"
	"agroadvisor/pkg/agronomy"
	fieldrepo "agroadvisor/pkg/field/repository"
)

const maxArticles = 5

type articleFinder interface {
	Articles(query string, n int) ([]entities.ArticleRef, error)
}

type AdvisorySvc struct {
	engine *agronomy.Engine
	fields fieldrepo.FieldRepository
	repo   repository.AdvisoryRepository
	kb     articleFinder
	loc    *time.Location
	now    func() time.Time
	log    *zap.Logger
}

type Options struct {
	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger
}

// NewAdvisoryService wires the engine to storage. kb may be nil.
func NewAdvisoryService(engine *agronomy.Engine, fields fieldrepo.FieldRepository, ar repository.AdvisoryRepository,
	kb articleFinder, opts Options) *AdvisorySvc {
	s := &AdvisorySvc{engine: engine, fields: fields, repo: ar, kb: kb,
		loc: opts.Location, now: opts.Now, log: opts.Logger}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.Named("advisory")
	return s
}

var _ service.AdvisoryService = (*AdvisorySvc)(nil)

// today is the local calendar day at UTC midnight, the form schedule
// dates are stored and filtered in.
func (s *AdvisorySvc) today() time.Time {
	t := s.now().In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *AdvisorySvc) month(m *int) int {
	if m != nil {
		return *m
	}
	return int(s.now().In(s.loc).Month())
}

func (s *AdvisorySvc) ForField(fieldID uint, uid string, month *int) (*service.Result, error) {
	f, err := s.fields.FindByID(fieldID, uid)
	if err != nil {
		return nil, err
	}
	return s.Stateless(ToAgronomyField(f), month), nil
}

func (s *AdvisorySvc) Stateless(f agronomy.Field, month *int) *service.Result {
	rep := s.engine.Advise(f, s.month(month))
	s.log.Debug("advisory computed",
		zap.String("field_id", f.ID),
		zap.Int("month", rep.Month),
		zap.String("pattern", rep.RotationPattern.Pattern),
		zap.Int("actions", len(rep.Actions)))
	return &service.Result{Report: rep, Articles: s.articles(rep)}
}

// articles looks up KB documents for the report's problems. Lookup failures
// only cost the suggestions.
func (s *AdvisorySvc) articles(rep agronomy.AdvisoryReport) []entities.ArticleRef {
	if s.kb == nil {
		return []entities.ArticleRef{}
	}
	query := kbQuery(rep)
	if query == "" {
		return []entities.ArticleRef{}
	}
	refs, err := s.kb.Articles(query, maxArticles)
	if err != nil {
		s.log.Warn("kb lookup failed", zap.Error(err))
		return []entities.ArticleRef{}
	}
	return refs
}

func kbQuery(rep agronomy.AdvisoryReport) string {
	var parts []string
	for _, a := range rep.Actions {
		parts = append(parts, a.Title)
	}
	if rep.RotationPattern.Pattern == agronomy.PatternMonoculture {
		parts = append(parts, "crop rotation")
	}
	if len(rep.Suggestions.Suggested) > 0 {
		parts = append(parts, rep.Suggestions.Suggested[0].Name)
	}
	return strings.Join(parts, " ")
}

func (s *AdvisorySvc) Schedule(fieldID uint, uid string, month *int) (*entities.Advisory, []entities.ScheduleTask, error) {
	f, err := s.fields.FindByID(fieldID, uid)
	if err != nil {
		return nil, nil, err
	}
	res := s.Stateless(ToAgronomyField(f), month)

	a := &entities.Advisory{
		FieldID:           fieldID,
		Month:             res.Report.Month,
		ReferenceVersion:  res.Report.ReferenceVersion,
		Report:            res.Report,
		SuggestedArticles: res.Articles,
	}
	tasks := s.materializeActions(res.Report.Actions)
	if err := s.repo.CreateWithTasks(a, tasks); err != nil {
		s.log.Error("schedule failed", zap.Uint("field_id", fieldID), zap.Error(err))
		return nil, nil, err
	}
	s.log.Info("advisory scheduled",
		zap.Uint("field_id", fieldID),
		zap.Int("version", a.Version),
		zap.Int("tasks", len(tasks)))
	return a, tasks, nil
}

// materializeActions turns remediation items into dated tasks. High priority
// items start two days out, medium ones a week out; items of the same
// priority are spread one day apart in rank order. Field and advisory IDs
// are filled in when the tasks are stored.
func (s *AdvisorySvc) materializeActions(items []agronomy.RecommendationItem) []entities.ScheduleTask {
	base := s.today()
	offsets := map[agronomy.Priority]int{agronomy.PriorityHigh: 2, agronomy.PriorityMedium: 7}
	seen := map[agronomy.Priority]int{}
	tasks := make([]entities.ScheduleTask, 0, len(items))
	for _, it := range items {
		day := offsets[it.Priority] + seen[it.Priority]
		seen[it.Priority]++
		t := entities.ScheduleTask{
			Date:     base.AddDate(0, 0, day),
			Title:    it.Title,
			Type:     it.Kind,
			Priority: string(it.Priority),
			Notes:    it.ActionText,
			Status:   "todo",
		}
		if it.Dosage != nil {
			q := it.Dosage.Quantity
			t.Qty = &q
			t.Unit = it.Dosage.Unit
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func (s *AdvisorySvc) History(fieldID uint, uid string) ([]entities.Advisory, error) {
	if _, err := s.fields.FindByID(fieldID, uid); err != nil {
		return nil, err
	}
	return s.repo.ListByField(fieldID)
}
