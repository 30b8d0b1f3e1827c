// Package dedup implements the Duplicate Store: classification of new
// articles against a growing set of historical embeddings, and the
// storage of that set as a single atomically-replaced JSON file.
package dedup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/Gyro1978/Dacoola-sub001/pkg/fsutil"
)

// Entry is one historical embedding record.
type Entry struct {
	ArticleID    string    `json:"article_id"`
	Embedding    []float32 `json:"embedding"`
	TitleExcerpt string    `json:"title"`
	DateAddedUTC time.Time `json:"date_added_utc"`
}

// TitleExcerptMaxLen is the stored title length, pinned from the
// predecessor's title[:150] truncation.
const TitleExcerptMaxLen = 150

// Embedder is the subset of embedding.Service the store depends on.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Thresholds holds the two similarity bands from spec §4.3.
type Thresholds struct {
	Duplicate   float64
	NearDup     float64
	MinTextLen  int
	MaxSnippet  int
}

// Verdict is the result of classifying one article against the store.
type Verdict struct {
	IsDuplicate         bool
	IsNearDuplicate     bool
	HighestSimilarity   float64
	HighestSimilarID    string
	NearDuplicatesFound []string
	Skipped             bool // true when input text was too short to classify
}

// Store is the Duplicate Store. classify+insert is serialized under mu as
// one critical section per spec §5, so two concurrent workers can never
// both decide "unique" for near-identical articles and both insert.
type Store struct {
	mu       sync.Mutex
	path     string
	entries  []Entry
	embedder Embedder
	th       Thresholds
}

// Load reads path (if present) into a new Store. A missing file starts an
// empty store.
func Load(path string, embedder Embedder, th Thresholds) (*Store, error) {
	s := &Store{path: path, embedder: embedder, th: th}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading duplicate store %s: %w", path, err)
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding duplicate store %s: %w", path, err)
	}
	s.entries = entries
	return s, nil
}

// decodeEntries accepts both the current array of {article_id, embedding,
// title, date_added_utc} entries and a legacy object mapping article ID to
// a bare vector, always normalizing to Entry, per SPEC_FULL's
// backward-compatibility note. A legacy object whose values are entry
// objects rather than bare vectors is not accepted.
func decodeEntries(raw []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries, nil
	}

	var legacy map[string][]float32
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(legacy))
	for id, vec := range legacy {
		out = append(out, Entry{ArticleID: id, Embedding: vec})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArticleID < out[j].ArticleID })
	return out, nil
}

// Classify implements the six-step algorithm from spec §4.3: build
// classification text, clean it, gate on minimum length, embed, and
// compare against every stored entry. On a non-duplicate result the new
// entry is inserted into the store and the store file is rewritten
// atomically, all while holding the store's lock.
func (s *Store) Classify(ctx context.Context, articleID, title, summary, rawText string) (Verdict, error) {
	text := BuildClassificationText(title, summary, rawText, s.th.MaxSnippet)
	if len(text) < s.th.MinTextLen {
		return Verdict{Skipped: true}, nil
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return Verdict{}, fmt.Errorf("embedding article %s for dedup: %w", articleID, err)
	}
	if vec == nil {
		return Verdict{Skipped: true}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		s.insertLocked(articleID, title, vec)
		if err := s.persistLocked(); err != nil {
			return Verdict{}, err
		}
		return Verdict{}, nil
	}

	type scored struct {
		id  string
		sim float64
	}
	scoredAll := make([]scored, 0, len(s.entries))
	highestSim := -1.0
	highestID := ""
	for _, e := range s.entries {
		if e.ArticleID == articleID {
			continue
		}
		sim := CosineSimilarity(vec, e.Embedding)
		scoredAll = append(scoredAll, scored{id: e.ArticleID, sim: sim})
		if sim > highestSim {
			highestSim = sim
			highestID = e.ArticleID
		}
	}

	verdict := Verdict{HighestSimilarity: highestSim, HighestSimilarID: highestID}
	if highestSim >= s.th.Duplicate {
		verdict.IsDuplicate = true
	} else if highestSim >= s.th.NearDup {
		verdict.IsNearDuplicate = true
	}

	sort.Slice(scoredAll, func(i, j int) bool { return scoredAll[i].sim > scoredAll[j].sim })
	for _, sc := range scoredAll {
		if verdict.IsDuplicate && sc.id == highestID {
			continue
		}
		if sc.sim < s.th.NearDup {
			break
		}
		verdict.NearDuplicatesFound = append(verdict.NearDuplicatesFound, sc.id)
		if len(verdict.NearDuplicatesFound) == 3 {
			break
		}
	}

	if !verdict.IsDuplicate {
		s.insertLocked(articleID, title, vec)
		if err := s.persistLocked(); err != nil {
			return Verdict{}, err
		}
	}
	return verdict, nil
}

func (s *Store) insertLocked(articleID, title string, vec []float32) {
	excerpt := title
	if len(excerpt) > TitleExcerptMaxLen {
		excerpt = excerpt[:TitleExcerptMaxLen]
	}
	s.entries = append(s.entries, Entry{
		ArticleID:    articleID,
		Embedding:    vec,
		TitleExcerpt: excerpt,
		DateAddedUTC: time.Now().UTC(),
	})
}

func (s *Store) persistLocked() error {
	return fsutil.WriteJSONAtomic(s.path, s.entries, 0o644)
}
