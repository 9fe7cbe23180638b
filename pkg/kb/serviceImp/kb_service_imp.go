package serviceImp

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"agroadvisor/entities"
	"agroadvisor/pkg/kb/repository"
)

const chunkRunes = 1000

type Svc struct{ r repository.KBRepository }

func New(r repository.KBRepository) *Svc { return &Svc{r: r} }

// chunkText splits on line breaks once a chunk reaches maxRunes.
func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = chunkRunes
	}
	parts := []string{}
	cur := strings.Builder{}
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		parts = append(parts, cur.String())
	}
	return parts
}

func (s *Svc) UpsertDocument(title, tags, text, sourceURL string) (*entities.KBDocument, int, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(text) == "" {
		return nil, 0, fmt.Errorf("%w: title and text are required", entities.ErrInvalidInput)
	}
	d := &entities.KBDocument{Title: title, Tags: tags, SourceURL: sourceURL}
	chs := chunkText(text, chunkRunes)
	rows := make([]entities.KBChunk, len(chs))
	for i := range chs {
		rows[i] = entities.KBChunk{Ord: i, Text: chs[i]}
	}
	if err := s.r.SaveDocument(d, rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

func terms(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := map[string]bool{}
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 3 || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// Search ranks chunks by the share of query terms they contain; a chunk that
// contains the whole query phrase gets a bonus. Chunks with no match are
// dropped.
func (s *Svc) Search(query string, k int) ([]entities.KBChunk, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	qt := terms(q)
	if q == "" || k <= 0 || len(qt) == 0 {
		return nil, nil
	}
	chunks, err := s.r.ChunksContaining(qt)
	if err != nil {
		return nil, err
	}

	type scored struct {
		ch entities.KBChunk
		sc float64
	}
	var list []scored
	for _, ch := range chunks {
		text := strings.ToLower(ch.Text)
		hits := 0
		for _, t := range qt {
			if strings.Contains(text, t) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		sc := float64(hits) / float64(len(qt))
		if strings.Contains(text, q) {
			sc += 1
		}
		list = append(list, scored{ch: ch, sc: sc})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].sc > list[j].sc })

	if k > len(list) {
		k = len(list)
	}
	out := make([]entities.KBChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, list[i].ch)
	}
	return out, nil
}

func (s *Svc) DocsMeta(ids []uint) (map[uint]entities.KBDocument, error) {
	return s.r.DocsByIDs(ids)
}

func (s *Svc) Articles(query string, n int) ([]entities.ArticleRef, error) {
	chunks, err := s.Search(query, n*4)
	if err != nil || len(chunks) == 0 {
		return []entities.ArticleRef{}, err
	}
	seen := map[uint]struct{}{}
	ids := make([]uint, 0, n)
	for _, ch := range chunks {
		if _, ok := seen[ch.DocID]; ok {
			continue
		}
		seen[ch.DocID] = struct{}{}
		ids = append(ids, ch.DocID)
		if len(ids) == n {
			break
		}
	}
	meta, err := s.r.DocsByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make([]entities.ArticleRef, 0, len(ids))
	for _, id := range ids {
		if d, ok := meta[id]; ok {
			out = append(out, entities.ArticleRef{Title: d.Title, URL: d.SourceURL})
		}
	}
	return out, nil
}

func (s *Svc) ListDocs() ([]entities.KBDocument, error) {
	ds, err := s.r.ListDocs()
	if ds == nil && err == nil {
		ds = []entities.KBDocument{}
	}
	return ds, err
}
