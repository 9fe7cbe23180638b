package serviceImp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agroadvisor/database"
	"agroadvisor/entities"
	advrepo "agroadvisor/pkg/advisory/repositoryImp"
	"agroadvisor/pkg/agronomy"
	fieldrepo "agroadvisor/pkg/field/repositoryImp"
	kbrepo "agroadvisor/pkg/kb/repositoryImp"
	kbsvc "agroadvisor/pkg/kb/serviceImp"
)

type fixture struct {
	db    *gorm.DB
	svc   *AdvisorySvc
	field *entities.Field
	loc   *time.Location
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)

	fr := fieldrepo.New(db)
	f := &entities.Field{
		UserID: "u1", Name: "North", AreaHa: 2,
		Soil: entities.SoilHealth{Nitrogen: 20, Phosphorus: 40, Potassium: 50, PH: 5.0, OrganicMatter: 2.6},
	}
	require.NoError(t, fr.Create(f))

	kb := kbsvc.New(kbrepo.New(db))
	_, _, err = kb.UpsertDocument("Correcting acidic soil", "ph,lime",
		"Acidic soil responds to agricultural lime applied after harvest.", "https://kb.example/lime")
	require.NoError(t, err)

	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)
	svc := NewAdvisoryService(agronomy.NewEngine(nil), fr, advrepo.New(db), kb,
		Options{Location: loc, Now: func() time.Time { return now }})
	return fixture{db: db, svc: svc, field: f, loc: loc}
}

func TestForField_DefaultsToCurrentMonth(t *testing.T) {
	fx := newFixture(t)
	res, err := fx.svc.ForField(fx.field.FieldID, "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Report.Month)
	assert.Equal(t, "North", res.Report.FieldName)
	assert.Equal(t, agronomy.PatternInsufficientData, res.Report.RotationPattern.Pattern)
	require.NotEmpty(t, res.Articles)
	assert.Equal(t, "https://kb.example/lime", res.Articles[0].URL)

	m := 11
	res, err = fx.svc.ForField(fx.field.FieldID, "u1", &m)
	require.NoError(t, err)
	assert.Equal(t, 11, res.Report.Month)
}

func TestForField_OtherFarmer(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.svc.ForField(fx.field.FieldID, "u2", nil)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestStateless_WithoutKB(t *testing.T) {
	svc := NewAdvisoryService(agronomy.NewEngine(nil), nil, nil, nil, Options{})
	m := 3
	res := svc.Stateless(agronomy.Field{ID: "x", Area: 1}, &m)
	assert.Equal(t, 3, res.Report.Month)
	assert.Empty(t, res.Report.Actions)
	assert.NotNil(t, res.Articles)
}

func TestSchedule_MaterializesTasks(t *testing.T) {
	fx := newFixture(t)
	a, tasks, err := fx.svc.Schedule(fx.field.FieldID, "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Version)
	assert.NotZero(t, a.AdvisoryID)
	assert.Equal(t, agronomy.BuiltinVersion, a.ReferenceVersion)

	require.Len(t, tasks, 2)
	assert.Equal(t, agronomy.KindNitrogen, tasks[0].Type)
	assert.True(t, tasks[0].Date.Equal(time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, tasks[0].Qty)
	assert.Equal(t, 160.0, *tasks[0].Qty)
	assert.Equal(t, "kg", tasks[0].Unit)

	assert.Equal(t, agronomy.KindAcidicSoil, tasks[1].Type)
	assert.True(t, tasks[1].Date.Equal(time.Date(2024, 7, 18, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 150.0, *tasks[1].Qty)
	for _, tk := range tasks {
		assert.Equal(t, a.AdvisoryID, tk.AdvisoryID)
		assert.Equal(t, "todo", tk.Status)
		assert.NotZero(t, tk.TaskID)
	}
}

func TestSchedule_VersionsIncrease(t *testing.T) {
	fx := newFixture(t)
	_, _, err := fx.svc.Schedule(fx.field.FieldID, "u1", nil)
	require.NoError(t, err)
	m := 11
	a, _, err := fx.svc.Schedule(fx.field.FieldID, "u1", &m)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Version)

	hist, err := fx.svc.History(fx.field.FieldID, "u1")
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, 1, hist[0].Version)
	assert.Equal(t, 7, hist[0].Report.Month)
	assert.Equal(t, 11, hist[1].Report.Month)
	assert.Len(t, hist[1].Report.Actions, 2)

	_, err = fx.svc.History(fx.field.FieldID, "u2")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestSchedule_TaskFailureLeavesNoAdvisory(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.db.Migrator().DropTable(&entities.ScheduleTask{}))

	_, _, err := fx.svc.Schedule(fx.field.FieldID, "u1", nil)
	require.Error(t, err)

	hist, err := fx.svc.History(fx.field.FieldID, "u1")
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestSchedule_VersionLookupErrorIsReturned(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.db.Migrator().DropTable(&entities.Advisory{}))

	_, _, err := fx.svc.Schedule(fx.field.FieldID, "u1", nil)
	require.Error(t, err)

	var n int64
	require.NoError(t, fx.db.Model(&entities.ScheduleTask{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAdvisory_FieldVersionIsUnique(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.db.Create(&entities.Advisory{FieldID: fx.field.FieldID, Version: 1}).Error)
	assert.Error(t, fx.db.Create(&entities.Advisory{FieldID: fx.field.FieldID, Version: 1}).Error)
	assert.NoError(t, fx.db.Create(&entities.Advisory{FieldID: fx.field.FieldID + 1, Version: 1}).Error)
}

func TestMaterializeActions_MediumStartsAWeekOut(t *testing.T) {
	fx := newFixture(t)
	items := []agronomy.RecommendationItem{
		{Kind: agronomy.KindDiversification, Priority: agronomy.PriorityHigh, Title: "a"},
		{Kind: agronomy.KindOrganicMatter, Priority: agronomy.PriorityMedium, Title: "b"},
		{Kind: agronomy.KindPhosphorus, Priority: agronomy.PriorityMedium, Title: "c"},
	}
	tasks := fx.svc.materializeActions(items)
	base := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, tasks[0].Date.Equal(base.AddDate(0, 0, 2)))
	assert.True(t, tasks[1].Date.Equal(base.AddDate(0, 0, 7)))
	assert.True(t, tasks[2].Date.Equal(base.AddDate(0, 0, 8)))
	assert.Nil(t, tasks[1].Qty)
}

func TestToday_UsesConfiguredZone(t *testing.T) {
	fx := newFixture(t)
	fx.svc.now = func() time.Time { return time.Date(2024, 7, 15, 20, 0, 0, 0, time.UTC) }
	assert.Equal(t, time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC), fx.svc.today())
	assert.Equal(t, 7, fx.svc.month(nil))

	fx.svc.now = func() time.Time { return time.Date(2024, 12, 31, 19, 0, 0, 0, time.UTC) }
	assert.Equal(t, 1, fx.svc.month(nil))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, fx.loc).Month(), fx.svc.today().Month())
}
