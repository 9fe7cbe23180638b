package serviceImp

import (
	"agroadvisor/entities"
	fieldrepo "agroadvisor/pkg/field/repository"
	repo "agroadvisor/pkg/soiltest/repository"
	"agroadvisor/pkg/soiltest/service"
)

type soilTestSvc struct {
	r      repo.SoilTestRepository
	fields fieldrepo.FieldRepository
}

func NewSoilTestService(r repo.SoilTestRepository, fields fieldrepo.FieldRepository) service.SoilTestService {
	return &soilTestSvc{r: r, fields: fields}
}

// History lists soil updates of a field the caller owns.
func (s *soilTestSvc) History(fieldID uint, uid string, limit int) ([]entities.SoilTest, error) {
	if _, err := s.fields.FindByID(fieldID, uid); err != nil {
		return nil, err
	}
	out, err := s.r.ListByField(fieldID, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entities.SoilTest{}
	}
	return out, nil
}
