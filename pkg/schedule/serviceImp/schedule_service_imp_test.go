package serviceImp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroadvisor/database"
	"agroadvisor/entities"
	fieldRepoImp "agroadvisor/pkg/field/repositoryImp"
	"agroadvisor/pkg/schedule/repositoryImp"
)

func TestScheduleListAndPatch(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	fields := fieldRepoImp.New(db)
	tasks := repositoryImp.New(db)
	svc := NewScheduleService(tasks, fields)

	f := &entities.Field{UserID: "u1", Name: "A", AreaHa: 1}
	require.NoError(t, fields.Create(f))
	day := func(d int) time.Time { return time.Date(2024, 7, d, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, db.Create(&[]entities.ScheduleTask{
		{FieldID: f.FieldID, Date: day(20), Title: "Apply lime", Type: "acidic-soil", Status: "todo"},
		{FieldID: f.FieldID, Date: day(17), Title: "Add vermicompost", Type: "nitrogen", Status: "todo"},
	}).Error)

	all, err := svc.List(f.FieldID, "u1", "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "nitrogen", all[0].Type)

	some, err := svc.List(f.FieldID, "u1", "2024-07-18", "2024-07-20")
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "acidic-soil", some[0].Type)

	_, err = svc.List(f.FieldID, "u1", "July", "")
	assert.ErrorIs(t, err, entities.ErrInvalidInput)
	_, err = svc.List(f.FieldID, "u2", "", "")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	require.NoError(t, svc.Patch(all[0].TaskID, "u1", "", nil))
	assert.ErrorIs(t, svc.Patch(all[0].TaskID, "u2", "done", nil), entities.ErrNotFound)
	assert.ErrorIs(t, svc.Patch(all[0].TaskID, "u1", "maybe", nil), entities.ErrInvalidInput)

	all, err = svc.List(f.FieldID, "u1", "", "")
	require.NoError(t, err)
	assert.Equal(t, "done", all[0].Status)
	assert.Equal(t, "todo", all[1].Status)
}
