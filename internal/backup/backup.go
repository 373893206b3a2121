// Package backup archives the JSON data files into compressed tar
// archives and restores them. Archives contain only the data files that
// exist at backup time, stored by base name.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cleantrack/internal/store"
)

// ErrNothingToBackUp is returned when no data files exist.
var ErrNothingToBackUp = errors.New("nothing to back up")

// Create writes backup_<YYYYMMDD_HHMMSS>.tar.gz under backupsDir and
// returns its path. When no data files exist, no archive is created.
func Create(dataDir, backupsDir string, now time.Time) (string, error) {
	var present []string
	for _, name := range store.DataFiles {
		if _, err := os.Stat(filepath.Join(dataDir, name)); err == nil {
			present = append(present, name)
		}
	}
	if len(present) == 0 {
		return "", ErrNothingToBackUp
	}

	if err := os.MkdirAll(backupsDir, 0o755); err != nil {
		return "", fmt.Errorf("create backups directory: %w", err)
	}
	path := filepath.Join(backupsDir, now.Format("backup_20060102_150405")+".tar.gz")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, name := range present {
		if err := addFile(tw, filepath.Join(dataDir, name), name); err != nil {
			tw.Close()
			gz.Close()
			os.Remove(path)
			return "", err
		}
	}
	if err := tw.Close(); err != nil {
		return "", fmt.Errorf("finish archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("finish archive: %w", err)
	}
	return path, nil
}

// Restore extracts a backup archive over the data directory, overwriting
// same-named files. A missing archive leaves existing data untouched.
// The restored file names are returned.
func Restore(archivePath, dataDir string) ([]string, error) {
	f, err := os.Open(archivePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("backup archive %s: file not found", archivePath)
	}
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	defer gz.Close()

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	var restored []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return restored, fmt.Errorf("read archive: %w", err)
		}
		name := filepath.Base(hdr.Name)
		// Only plain JSON files by base name; anything else in the
		// archive is skipped rather than written outside dataDir.
		if hdr.Typeflag != tar.TypeReg || !strings.HasSuffix(name, ".json") {
			continue
		}
		if err := extractFile(tr, filepath.Join(dataDir, name)); err != nil {
			return restored, err
		}
		restored = append(restored, name)
	}
	if len(restored) == 0 {
		return nil, fmt.Errorf("archive %s contains no data files", archivePath)
	}
	return restored, nil
}

// List returns the backup archives under backupsDir, newest first.
func List(backupsDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(backupsDir, "backup_*.tar.gz"))
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches, nil
}

func addFile(tw *tar.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("archive header for %s: %w", name, err)
	}
	hdr.Name = name
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header for %s: %w", name, err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	return nil
}

func extractFile(r io.Reader, path string) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("restore %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("restore %s: %w", path, err)
	}
	return os.Rename(tmp, path)
}
