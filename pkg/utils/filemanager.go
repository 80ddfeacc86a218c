// =============================================================================
// Backer CSV to Shopify Orders - File Manager Utility
// =============================================================================
//
// File handling around the import pipeline:
//   - Discovery of export files in the input directory
//   - Archival of fully imported exports
//   - Failed-order log generation
//
// ARCHIVAL STRATEGY:
//   - An export file is moved to the archive only when every pending order
//     in it uploaded successfully
//   - Exports with any failed order stay in the input directory so the run
//     can be repeated (the ledger prevents re-uploading the successes)
//   - Failed-order logs are created in the output directory
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileManager handles file operations for the importer.
type FileManager struct {
	// InputDir is the directory where export files are placed.
	InputDir string

	// OutputDir is the directory for failed-order logs.
	OutputDir string

	// ArchiveDir is the directory for imported export files.
	ArchiveDir string
}

// NewFileManager creates a FileManager over the configured directories.
func NewFileManager(inputDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates all managed directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.ArchiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DiscoverInputFiles returns the export files in the input directory.
// Both .csv and .xlsx exports are picked up.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	var files []string

	for _, pattern := range []string{"*.csv", "*.xlsx"} {
		matches, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan input directory: %w", err)
		}
		for _, file := range matches {
			info, err := os.Stat(file)
			if err != nil || info.IsDir() {
				continue
			}
			files = append(files, file)
		}
	}

	return files, nil
}

// ArchiveInputFile moves an export file to the archive directory and
// returns the archived path.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(filePath))

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// FailedOrder is one failed upload for the failed-order log.
type FailedOrder struct {
	Key   string
	Email string
	Err   error
}

// WriteFailedOrderLog writes the failures of one run to a uniquely named
// text file in the output directory and returns its path. With no failures
// it writes nothing.
func (fm *FileManager) WriteFailedOrderLog(sourceFile string, failures []FailedOrder) (string, error) {
	if len(failures) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("failed_orders_%s_%s.txt",
		time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	logPath := filepath.Join(fm.OutputDir, name)

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create failed-order log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Failed orders for %s\n", sourceFile)
	fmt.Fprintf(writer, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "Total failures: %d\n\n", len(failures))

	for i, f := range failures {
		fmt.Fprintf(writer, "Failure #%d\n", i+1)
		fmt.Fprintf(writer, "  Key:   %s\n", f.Key)
		fmt.Fprintf(writer, "  Email: %s\n", f.Email)
		fmt.Fprintf(writer, "  Error: %v\n\n", f.Err)
	}

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush failed-order log: %w", err)
	}

	return logPath, nil
}

// HasExtension reports whether the path has the extension, ignoring case.
func HasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
