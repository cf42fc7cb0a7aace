package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMaxBackups caps the archives kept per game when no
// per-game override is configured.
const DefaultMaxBackups = 20

// Info describes one completed backup archive.
type Info struct {
	FileName   string `json:"file_name"`
	BackupTime int64  `json:"backup_time"` // unix seconds
	FileSize   int64  `json:"file_size"`
	Path       string `json:"path"`
}

// Manager archives game save directories under a common backup
// root, one subdirectory per game, pruning the oldest archives
// beyond the configured cap.
type Manager struct {
	root       string
	maxBackups int
	logger     zerolog.Logger
}

// NewManager creates a backup manager rooted at root.
func NewManager(root string, maxBackups int, logger zerolog.Logger) *Manager {
	if maxBackups < 1 {
		maxBackups = DefaultMaxBackups
	}
	return &Manager{root: root, maxBackups: maxBackups, logger: logger}
}

// gameDir returns the per-game backup directory.
func (m *Manager) gameDir(gameID uint) string {
	return filepath.Join(m.root, fmt.Sprintf("game_%d", gameID))
}

// Backup archives the save directory for a game. With silent set,
// only debug-level logging is emitted; the lifecycle listener uses
// this form so background backups stay quiet.
func (m *Manager) Backup(gameID uint, sourcePath string, silent bool) error {
	_, err := m.Create(gameID, sourcePath, silent)
	return err
}

// Create archives sourcePath into the game's backup directory and
// returns information about the new archive.
func (m *Manager) Create(gameID uint, sourcePath string, silent bool) (*Info, error) {
	src, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("save directory does not exist: %w", err)
	}
	if !src.IsDir() {
		return nil, fmt.Errorf("save path %s is not a directory", sourcePath)
	}

	dir := m.gameDir(gameID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Prune before writing so the new archive fits under the cap.
	if err := m.pruneOld(gameID); err != nil {
		return nil, err
	}

	now := time.Now()
	fileName := fmt.Sprintf("savedata_%d_%s.zip", gameID, now.Format("20060102_150405"))
	archivePath := filepath.Join(dir, fileName)

	size, err := createZipArchive(sourcePath, archivePath)
	if err != nil {
		os.Remove(archivePath)
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	info := &Info{
		FileName:   fileName,
		BackupTime: now.Unix(),
		FileSize:   size,
		Path:       archivePath,
	}

	ev := m.logger.Info()
	if silent {
		ev = m.logger.Debug()
	}
	ev.Uint("game_id", gameID).
		Str("archive", fileName).
		Int64("size", size).
		Msg("save-data backup created")

	return info, nil
}

// List returns a game's existing backups, newest first.
func (m *Manager) List(gameID uint) ([]Info, error) {
	dir := m.gameDir(gameID)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, err
	}

	backups := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".zip") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			FileName:   entry.Name(),
			BackupTime: fi.ModTime().Unix(),
			FileSize:   fi.Size(),
			Path:       filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].BackupTime > backups[j].BackupTime
	})

	return backups, nil
}

// pruneOld removes the oldest archives so that after one more
// backup the game stays at or under the cap.
func (m *Manager) pruneOld(gameID uint) error {
	backups, err := m.List(gameID)
	if err != nil {
		return fmt.Errorf("failed to list existing backups: %w", err)
	}

	for i := m.maxBackups - 1; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].FileName, err)
		}
		m.logger.Debug().
			Uint("game_id", gameID).
			Str("archive", backups[i].FileName).
			Msg("pruned old backup")
	}

	return nil
}

// createZipArchive writes a zip of the source directory and
// returns the archive size in bytes.
func createZipArchive(sourceDir, archivePath string) (int64, error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	err = filepath.Walk(sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		header.Method = zip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		return 0, err
	}

	if err := zw.Close(); err != nil {
		return 0, err
	}

	fi, err := out.Stat()
	if err != nil {
		return 0, err
	}

	return fi.Size(), nil
}
