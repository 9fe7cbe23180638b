package repositoryImp

import (
	"gorm.io/gorm"

	"agroadvisor/entities"
	"agroadvisor/pkg/kb/repository"
)

type kbRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.KBRepository { return &kbRepo{db} }

func (r *kbRepo) SaveDocument(d *entities.KBDocument, chunks []entities.KBChunk) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		for i := range chunks {
			chunks[i].DocID = d.DocID
		}
		return tx.Create(&chunks).Error
	})
}

func (r *kbRepo) ListDocs() ([]entities.KBDocument, error) {
	ds := []entities.KBDocument{}
	if err := r.db.Order("doc_id DESC").Find(&ds).Error; err != nil {
		return nil, err
	}
	return ds, nil
}

// ChunksContaining matches on LOWER(text); SQLite folds ASCII only, so
// non-ASCII terms match case-sensitively.
func (r *kbRepo) ChunksContaining(terms []string) ([]entities.KBChunk, error) {
	cs := []entities.KBChunk{}
	if len(terms) == 0 {
		return cs, nil
	}
	cond := r.db.Where("LOWER(text) LIKE ?", "%"+terms[0]+"%")
	for _, t := range terms[1:] {
		cond = cond.Or("LOWER(text) LIKE ?", "%"+t+"%")
	}
	if err := r.db.Where(cond).Order("doc_id ASC, ord ASC").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *kbRepo) DocsByIDs(ids []uint) (map[uint]entities.KBDocument, error) {
	m := map[uint]entities.KBDocument{}
	if len(ids) == 0 {
		return m, nil
	}
	var ds []entities.KBDocument
	if err := r.db.Where("doc_id IN ?", ids).Find(&ds).Error; err != nil {
		return nil, err
	}
	for _, d := range ds {
		m[d.DocID] = d
	}
	return m, nil
}
