package repository

import "agroadvisor/entities"

type KBRepository interface {
	// SaveDocument inserts d and its chunks atomically; chunk DocIDs are set
	// from the new document.
	SaveDocument(d *entities.KBDocument, chunks []entities.KBChunk) error
	ListDocs() ([]entities.KBDocument, error)
	// ChunksContaining returns chunks whose text contains at least one of
	// terms, in document order.
	ChunksContaining(terms []string) ([]entities.KBChunk, error)
	DocsByIDs(ids []uint) (map[uint]entities.KBDocument, error)
}
