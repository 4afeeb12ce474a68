package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// remove is swapped in tests to simulate undeletable archives.
var remove = os.Remove

// ArchiveStampLayout is the timestamp embedded in archive file names.
const ArchiveStampLayout = "20060102_150405"

// Archive is a timestamped snapshot file in the history directory.
type Archive struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
	// Stamp is the save time encoded in the file name; zero if the name
	// does not follow the prefix + stamp + extension layout.
	Stamp time.Time `json:"stamp"`
}

// archiveName returns the file name for a snapshot saved at t.
func (e *Engine) archiveName(t time.Time) string {
	return e.config.ArchivePrefix + t.Local().Format(ArchiveStampLayout) + e.config.ArchiveExt
}

func (e *Engine) parseStamp(name string) time.Time {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, e.config.ArchivePrefix), e.config.ArchiveExt)
	t, err := time.ParseInLocation(ArchiveStampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// isArchive reports whether a history directory entry name belongs to the archive set.
func (e *Engine) isArchive(name string) bool {
	if strings.HasPrefix(name, TempFilePrefix) {
		return false
	}
	ok, err := doublestar.Match(e.config.ArchivePattern, name)
	return err == nil && ok
}

// listArchives returns the archives in the history directory, newest first.
// A missing history directory is an empty history.
func (e *Engine) listArchives() ([]Archive, error) {
	entries, err := os.ReadDir(e.config.HistoryDir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	archives := make([]Archive, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !e.isArchive(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}
		archives = append(archives, Archive{
			Name:    entry.Name(),
			Path:    filepath.Join(e.config.HistoryDir, entry.Name()),
			ModTime: info.ModTime(),
			Stamp:   e.parseStamp(entry.Name()),
		})
	}

	sortArchives(archives)
	return archives, nil
}

// sortArchives orders by modification time, newest first. Equal times fall
// back to the file name, which embeds the save stamp, descending.
func sortArchives(archives []Archive) {
	sort.SliceStable(archives, func(i, j int) bool {
		a, b := archives[i], archives[j]
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
		return a.Name > b.Name
	})
}

// Prune deletes every archive beyond the retention count and returns the
// removed paths. Failures are logged and otherwise ignored.
func (e *Engine) Prune(ctx context.Context) []string {
	archives, err := e.listArchives()
	if err != nil {
		e.logger.WarnContext(ctx, "failed to list history for pruning", "dir", e.config.HistoryDir, "error", err)
		return nil
	}
	if len(archives) <= e.config.RetentionCount {
		return nil
	}

	var removed []string
	for _, a := range archives[e.config.RetentionCount:] {
		if err := remove(a.Path); err != nil {
			e.logger.WarnContext(ctx, "failed to prune archive", "path", a.Path, "error", err)
			continue
		}
		removed = append(removed, a.Path)
	}

	e.mu.Lock()
	e.lastPruned = len(removed)
	e.mu.Unlock()

	if len(removed) > 0 {
		e.logger.DebugContext(ctx, "pruned history", "removed", len(removed), "kept", e.config.RetentionCount)
	}
	return removed
}

// History lists the archives, newest first, in the same order pruning uses.
func (e *Engine) History(ctx context.Context) ([]Archive, error) {
	return e.listArchives()
}
