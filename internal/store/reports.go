package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DeusData/codesym/internal/lang"
	"github.com/DeusData/codesym/internal/scan"
	"github.com/DeusData/codesym/internal/symbols"
)

// Lookup returns the report stored for (root, rel) when it was built from
// content with the given hash and options. ok is false on any mismatch.
func (s *Store) Lookup(root, rel, hash, optionsKey string) (report scan.FileReport, ok bool, err error) {
	var language, symsJSON, errMsg string
	err = s.db.QueryRow(`
		SELECT language, symbols_json, error FROM file_reports
		WHERE root=? AND rel_path=? AND content_hash=? AND options_key=?`,
		root, rel, hash, optionsKey).Scan(&language, &symsJSON, &errMsg)
	if errors.Is(err, sql.ErrNoRows) {
		return scan.FileReport{}, false, nil
	}
	if err != nil {
		return scan.FileReport{}, false, fmt.Errorf("lookup report: %w", err)
	}
	syms, err := unmarshalSymbols(symsJSON)
	if err != nil {
		return scan.FileReport{}, false, err
	}
	return scan.FileReport{Path: rel, Language: lang.Language(language), Symbols: syms, Error: errMsg}, true, nil
}

// Save stores report for (root, report.Path), replacing any previous entry.
func (s *Store) Save(root string, report scan.FileReport, hash, optionsKey string) error {
	syms := report.Symbols
	if syms == nil {
		syms = []symbols.Symbol{}
	}
	b, err := json.Marshal(syms)
	if err != nil {
		return fmt.Errorf("marshal symbols: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO file_reports (root, rel_path, content_hash, options_key, language, symbols_json, error, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(root, rel_path) DO UPDATE SET
			content_hash=excluded.content_hash, options_key=excluded.options_key,
			language=excluded.language, symbols_json=excluded.symbols_json,
			error=excluded.error, scanned_at=excluded.scanned_at`,
		root, report.Path, hash, optionsKey, string(report.Language), string(b), report.Error, Now())
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// Reports returns every stored report under root, ordered by path.
func (s *Store) Reports(root string) ([]scan.FileReport, error) {
	rows, err := s.db.Query(`
		SELECT rel_path, language, symbols_json, error FROM file_reports
		WHERE root=? ORDER BY rel_path`, root)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var result []scan.FileReport
	for rows.Next() {
		var rel, language, symsJSON, errMsg string
		if err := rows.Scan(&rel, &language, &symsJSON, &errMsg); err != nil {
			return nil, err
		}
		syms, err := unmarshalSymbols(symsJSON)
		if err != nil {
			return nil, err
		}
		result = append(result, scan.FileReport{Path: rel, Language: lang.Language(language), Symbols: syms, Error: errMsg})
	}
	return result, rows.Err()
}

// DeleteRoot removes every report stored under root.
func (s *Store) DeleteRoot(root string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM file_reports WHERE root=?", root)
	if err != nil {
		return 0, fmt.Errorf("delete root: %w", err)
	}
	return res.RowsAffected()
}

func unmarshalSymbols(data string) ([]symbols.Symbol, error) {
	syms := []symbols.Symbol{}
	if data == "" {
		return syms, nil
	}
	if err := json.Unmarshal([]byte(data), &syms); err != nil {
		return nil, fmt.Errorf("decode symbols: %w", err)
	}
	return syms, nil
}
