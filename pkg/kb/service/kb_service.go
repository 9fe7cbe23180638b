package service

import "agroadvisor/entities"

type KBService interface {
	UpsertDocument(title, tags, text, sourceURL string) (*entities.KBDocument, int, error)
	Search(query string, k int) ([]entities.KBChunk, error)
	ListDocs() ([]entities.KBDocument, error)
	DocsMeta(ids []uint) (map[uint]entities.KBDocument, error)
	// Articles returns up to n distinct documents matching query, best first.
	Articles(query string, n int) ([]entities.ArticleRef, error)
}
