package storage

import (
	"fmt"
	"path"
	"regexp"
	"time"
)

var pathComponentPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,127}$`)

// BuildArchivePath places audit archives under a date partition so object
// listings stay cheap as the archive grows.
func BuildArchivePath(service string, archivedAt time.Time, sequence int) (string, error) {
	if err := validatePathComponent(service, "service"); err != nil {
		return "", err
	}
	if sequence < 0 {
		return "", fmt.Errorf("sequence must be >= 0")
	}

	ts := archivedAt.UTC()
	return path.Join(
		service,
		fmt.Sprintf("date=%04d-%02d-%02d", ts.Year(), ts.Month(), ts.Day()),
		fmt.Sprintf("ask-audit-%d-%05d.parquet", ts.Unix(), sequence),
	), nil
}

func validatePathComponent(value, field string) error {
	if !pathComponentPattern.MatchString(value) {
		return fmt.Errorf("invalid %s: %q", field, value)
	}
	return nil
}
