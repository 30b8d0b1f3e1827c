package publisher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
)

// DeleteTool removes a published article's HTML page, its processed JSON
// record, and its master-index entry. Deletion is restricted to the
// articles and processed-JSON roots: any path that would resolve outside
// either is refused rather than silently widened.
type DeleteTool struct {
	articlesDir      string
	processedJSONDir string
	masterIndexPath  string
}

// NewDeleteTool constructs a DeleteTool scoped to the given roots.
func NewDeleteTool(paths config.Paths) *DeleteTool {
	return &DeleteTool{
		articlesDir:      paths.ArticlesDir,
		processedJSONDir: paths.ProcessedJSONDir,
		masterIndexPath:  paths.MasterIndexPath,
	}
}

// DeleteByID removes the article with the given ID: its master-index
// entry (first match only), its HTML page (path taken from that entry's
// link, if present and within the articles root), and its processed JSON.
func (d *DeleteTool) DeleteByID(id string) error {
	idx, err := LoadMasterIndex(d.masterIndexPath)
	if err != nil {
		return fmt.Errorf("loading master index: %w", err)
	}

	var link string
	for _, a := range idx.Articles {
		if a.ID == id {
			link = a.Link
			break
		}
	}

	if link != "" && strings.HasPrefix(link, "articles/") {
		if err := d.removeUnderRoot(filepath.Join(d.articlesDir, strings.TrimPrefix(link, "articles/")), d.articlesDir); err != nil {
			return err
		}
	}

	processedJSONPath := filepath.Join(d.processedJSONDir, id+".json")
	if err := d.removeUnderRoot(processedJSONPath, d.processedJSONDir); err != nil {
		return err
	}

	if idx.RemoveFirstByID(id) {
		if err := idx.Save(d.masterIndexPath); err != nil {
			return fmt.Errorf("saving master index: %w", err)
		}
	}
	return nil
}

// DeleteByLink removes the first master-index entry matching link,
// deliberately conservative when multiple entries share a link path
// (retained from the source tool: only the first match is acted on).
func (d *DeleteTool) DeleteByLink(link string) error {
	idx, err := LoadMasterIndex(d.masterIndexPath)
	if err != nil {
		return fmt.Errorf("loading master index: %w", err)
	}

	id, found := idx.RemoveFirstByLink(link)
	if !found {
		return nil
	}

	if strings.HasPrefix(link, "articles/") {
		if err := d.removeUnderRoot(filepath.Join(d.articlesDir, strings.TrimPrefix(link, "articles/")), d.articlesDir); err != nil {
			return err
		}
	}
	if id != "" {
		processedJSONPath := filepath.Join(d.processedJSONDir, id+".json")
		if err := d.removeUnderRoot(processedJSONPath, d.processedJSONDir); err != nil {
			return err
		}
	}
	return idx.Save(d.masterIndexPath)
}

// removeUnderRoot deletes path if it exists, refusing when path does not
// resolve inside root. A path not existing is not an error: deletion is
// idempotent.
func (d *DeleteTool) removeUnderRoot(path, root string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("refusing to delete %s: outside allowed root %s", path, root)
	}

	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %s: %w", absPath, err)
	}
	return nil
}
