package store

import "github.com/DeusData/codesym/internal/scan"

// ReportCache serves one scan root from a Store.
type ReportCache struct {
	store *Store
	root  string
}

var _ scan.ReportCache = (*ReportCache)(nil)

// NewReportCache adapts s to scan.ReportCache for reports under root.
func NewReportCache(s *Store, root string) *ReportCache {
	return &ReportCache{store: s, root: root}
}

func (c *ReportCache) Hash(path string) (string, error) {
	return HashFile(path)
}

func (c *ReportCache) Lookup(rel, hash, optionsKey string) (scan.FileReport, bool, error) {
	return c.store.Lookup(c.root, rel, hash, optionsKey)
}

func (c *ReportCache) Save(rel, hash, optionsKey string, report scan.FileReport) error {
	report.Path = rel
	return c.store.Save(c.root, report, hash, optionsKey)
}
