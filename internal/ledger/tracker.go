package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// LoadTrackerURLs reads every non-empty url from the jobs table of a job
// tracker SQLite database. The database is opened read-only.
func LoadTrackerURLs(ctx context.Context, path string) (URLSet, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("tracker database: %w", err)
	}

	db, err := sql.Open("sqlite", trackerDSN(path, "ro"))
	if err != nil {
		return nil, fmt.Errorf("tracker: open db: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT url FROM jobs WHERE url IS NOT NULL AND url != ''`)
	if err != nil {
		return nil, fmt.Errorf("tracker: query urls: %w", err)
	}
	defer rows.Close()

	set := make(URLSet)
	for rows.Next() {
		var jobURL string
		if err := rows.Scan(&jobURL); err != nil {
			return nil, fmt.Errorf("tracker: scan url: %w", err)
		}
		set[jobURL] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tracker: iterate urls: %w", err)
	}

	return set, nil
}

// trackerDSN builds a SQLite URI for path. The path is escaped so that '?'
// and '#' in file names stay part of the name.
func trackerDSN(path, mode string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: "mode=" + mode}
	return u.String()
}
