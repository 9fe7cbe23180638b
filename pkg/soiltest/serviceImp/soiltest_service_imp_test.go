package serviceImp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroadvisor/database"
	"agroadvisor/entities"
	fieldRepoImp "agroadvisor/pkg/field/repositoryImp"
	"agroadvisor/pkg/soiltest/repositoryImp"
)

func TestHistory_NewestFirstAndOwned(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	fields := fieldRepoImp.New(db)
	tests := repositoryImp.New(db)

	f := &entities.Field{UserID: "u1", Name: "A", AreaHa: 1, Soil: entities.DefaultSoilHealth()}
	require.NoError(t, fields.Create(f))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, fields.UpdateSoil(f, entities.SoilHealth{Nitrogen: 35, PH: 6.4}, "first", base))
	require.NoError(t, tests.Create(&entities.SoilTest{FieldID: f.FieldID, Date: base.AddDate(0, 2, 0), Source: "lab", Soil: entities.SoilHealth{Nitrogen: 41, PH: 6.6}}))

	svc := NewSoilTestService(tests, fields)
	got, err := svc.History(f.FieldID, "u1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "lab", got[0].Source)
	assert.Equal(t, "manual", got[1].Source)
	assert.Equal(t, "first", got[1].Note)

	got, err = svc.History(f.FieldID, "u1", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.History(f.FieldID, "u2", 10)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
