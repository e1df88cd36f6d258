// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive packages and verifies downloaded PDF files on disk.
// The tool never downloads anything itself; it only looks for
// {key}.pdf files the user saved by hand.
// See docs/ARCHITECTURE.md § Archive & Verification.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Report holds the outcome of packing an archive.
type Report struct {
	// ArchivePath is the full path of the written archive.
	ArchivePath string

	// Included lists the filenames added to the archive.
	Included []string

	// Missing lists the expected filenames not found in the directory.
	Missing []string

	// Bytes is the final archive size.
	Bytes int64
}

// HasMissing reports whether any expected file was absent.
func (r Report) HasMissing() bool {
	return len(r.Missing) > 0
}

// Pack writes a deflate-compressed ZIP named archiveName into dir,
// containing {key}.pdf for every key whose file exists there. Missing
// files are recorded, never an error; only an unreadable directory or a
// failed archive write errors, and in-memory state is never touched.
// The archive is written through a temp file and renamed on success.
func Pack(dir, archiveName string, keys []string, w io.Writer) (Report, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Report{}, fmt.Errorf("directory %s does not exist", dir)
	}

	destPath := filepath.Join(dir, archiveName)
	tmpFile, err := os.CreateTemp(dir, ".archive-*.tmp")
	if err != nil {
		return Report{}, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	report := Report{ArchivePath: destPath}
	sorted := append([]string{}, keys...)
	sort.Strings(sorted)

	zw := zip.NewWriter(tmpFile)
	for _, key := range sorted {
		name := key + ".pdf"
		srcPath := filepath.Join(dir, name)

		src, err := os.Open(srcPath)
		if err != nil {
			report.Missing = append(report.Missing, name)
			continue
		}

		dst, err := zw.Create(name)
		if err == nil {
			_, err = io.Copy(dst, src)
		}
		src.Close()
		if err != nil {
			zw.Close()
			tmpFile.Close()
			os.Remove(tmpPath)
			return Report{}, fmt.Errorf("adding %s: %w", name, err)
		}

		report.Included = append(report.Included, name)
		fmt.Fprintf(w, "added   %s\n", name)
	}

	if err := zw.Close(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return Report{}, fmt.Errorf("finalizing archive: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return Report{}, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return Report{}, fmt.Errorf("renaming archive: %w", err)
	}

	if info, err := os.Stat(destPath); err == nil {
		report.Bytes = info.Size()
	}

	fmt.Fprintf(w, "\narchive %s: %d files added, %d missing\n",
		destPath, len(report.Included), len(report.Missing))
	return report, nil
}
