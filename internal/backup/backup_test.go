package backup

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSaveDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slot1.sav"), []byte("save one"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "profiles"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profiles", "main.cfg"), []byte("settings"), 0644))
	return dir
}

// seedArchive drops a fake archive file with a controlled mod time
// so prune ordering is deterministic.
func seedArchive(t *testing.T, m *Manager, gameID uint, name string, modTime time.Time) string {
	t.Helper()

	dir := m.gameDir(gameID)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("zip"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestCreate_ArchivesSaveDirectory(t *testing.T) {
	saveDir := writeSaveDir(t)
	m := NewManager(t.TempDir(), 20, zerolog.Nop())

	info, err := m.Create(1, saveDir, false)
	require.NoError(t, err)

	assert.FileExists(t, info.Path)
	assert.Positive(t, info.FileSize)
	assert.Contains(t, info.FileName, "savedata_1_")

	zr, err := zip.OpenReader(info.Path)
	require.NoError(t, err)
	defer zr.Close()

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["slot1.sav"])
	assert.True(t, names["profiles/main.cfg"])
}

func TestCreate_RejectsBadSource(t *testing.T) {
	m := NewManager(t.TempDir(), 20, zerolog.Nop())

	_, err := m.Create(1, filepath.Join(t.TempDir(), "missing"), false)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = m.Create(1, file, false)
	assert.Error(t, err)
}

func TestList_NewestFirst(t *testing.T) {
	m := NewManager(t.TempDir(), 20, zerolog.Nop())
	base := time.Date(2024, time.June, 16, 12, 0, 0, 0, time.UTC)

	seedArchive(t, m, 1, "savedata_1_20240616_120000.zip", base)
	seedArchive(t, m, 1, "savedata_1_20240616_130000.zip", base.Add(time.Hour))
	seedArchive(t, m, 1, "notes.txt", base.Add(2*time.Hour)) // ignored

	backups, err := m.List(1)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, "savedata_1_20240616_130000.zip", backups[0].FileName)
	assert.Equal(t, "savedata_1_20240616_120000.zip", backups[1].FileName)
}

func TestList_NoBackupDirectory(t *testing.T) {
	m := NewManager(t.TempDir(), 20, zerolog.Nop())

	backups, err := m.List(9)
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestCreate_PrunesBeyondCap(t *testing.T) {
	saveDir := writeSaveDir(t)
	m := NewManager(t.TempDir(), 3, zerolog.Nop())

	base := time.Date(2024, time.June, 16, 12, 0, 0, 0, time.UTC)
	var seeded []string
	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("savedata_1_20240616_1200%02d.zip", i)
		seeded = append(seeded, seedArchive(t, m, 1, name, base.Add(time.Duration(i)*time.Minute)))
	}

	_, err := m.Create(1, saveDir, true)
	require.NoError(t, err)

	backups, err := m.List(1)
	require.NoError(t, err)
	assert.Len(t, backups, 3, "cap applies counting the new archive")

	// The two oldest seeded archives are gone, the two newest remain.
	assert.NoFileExists(t, seeded[0])
	assert.NoFileExists(t, seeded[1])
	assert.FileExists(t, seeded[2])
	assert.FileExists(t, seeded[3])
}

func TestNewManager_CapFloor(t *testing.T) {
	m := NewManager(t.TempDir(), 0, zerolog.Nop())
	assert.Equal(t, DefaultMaxBackups, m.maxBackups)
}
