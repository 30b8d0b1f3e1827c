package publisher

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Gyro1978/Dacoola-sub001/pkg/fsutil"
)

// fallbackEpoch is used to sort master-index entries whose published date
// cannot be parsed, so the ordering comparator stays total.
var fallbackEpoch = time.Unix(0, 0).UTC()

// ArticleSummary is the projection stored per entry in the master index.
type ArticleSummary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Link          string   `json:"link"`
	PublishedISO  string   `json:"published_iso,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	PrimaryTopic  string   `json:"primary_topic,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

// MasterIndex is the on-disk shape of public/all_articles.json.
type MasterIndex struct {
	Articles []ArticleSummary `json:"articles"`
}

// LoadMasterIndex reads the master index, returning an empty index if the
// file does not yet exist.
func LoadMasterIndex(path string) (*MasterIndex, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &MasterIndex{Articles: []ArticleSummary{}}, nil
	}
	if err != nil {
		return nil, err
	}
	var idx MasterIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	if idx.Articles == nil {
		idx.Articles = []ArticleSummary{}
	}
	return &idx, nil
}

// Upsert inserts summary or replaces the existing entry with the same ID,
// then re-sorts the index descending by published date (entries with an
// unparseable or missing date sort as if published at the Unix epoch).
func (idx *MasterIndex) Upsert(summary ArticleSummary) {
	for i, existing := range idx.Articles {
		if existing.ID == summary.ID {
			idx.Articles[i] = summary
			idx.sort()
			return
		}
	}
	idx.Articles = append(idx.Articles, summary)
	idx.sort()
}

// RemoveFirstByID removes only the first entry matching id, returning
// whether an entry was removed. Conservative by design: callers that must
// remove every entry sharing a link should scan Articles themselves.
func (idx *MasterIndex) RemoveFirstByID(id string) bool {
	for i, existing := range idx.Articles {
		if existing.ID == id {
			idx.Articles = append(idx.Articles[:i], idx.Articles[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveFirstByLink removes only the first entry whose Link matches link
// (case-insensitively), per the source tool's documented conservative
// behavior when entries share a link path.
func (idx *MasterIndex) RemoveFirstByLink(link string) (string, bool) {
	for i, existing := range idx.Articles {
		if strings.EqualFold(existing.Link, link) {
			id := existing.ID
			idx.Articles = append(idx.Articles[:i], idx.Articles[i+1:]...)
			return id, true
		}
	}
	return "", false
}

func (idx *MasterIndex) sort() {
	sort.SliceStable(idx.Articles, func(i, j int) bool {
		return publishedAt(idx.Articles[i]).After(publishedAt(idx.Articles[j]))
	})
}

func publishedAt(a ArticleSummary) time.Time {
	if a.PublishedISO == "" {
		return fallbackEpoch
	}
	if t, err := time.Parse(time.RFC3339, a.PublishedISO); err == nil {
		return t
	}
	return fallbackEpoch
}

// Save persists the index atomically.
func (idx *MasterIndex) Save(path string) error {
	return fsutil.WriteJSONAtomic(path, idx, 0o644)
}
