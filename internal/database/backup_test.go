package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shareit/internal/config"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupService(t *testing.T) {
	tempDir := t.TempDir()
	logger := zerolog.Nop()

	db, err := NewDB(filepath.Join(tempDir, "source.db"), &logger)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.CreateUser(context.Background(), &models.User{Name: "U", Email: "u@example.com"}))

	storagePath := filepath.Join(tempDir, "backups")
	s := NewBackupService(db, config.BackupConfig{
		Enabled:       true,
		StoragePath:   storagePath,
		RetentionDays: 1,
	}, &logger)

	path, err := s.PerformBackup(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, path)

	// backup is a usable database
	restored, err := NewDB(path, &logger)
	require.NoError(t, err)
	defer restored.Close()
	user, err := restored.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", user.Email)

	t.Run("CleanupOldBackups", func(t *testing.T) {
		old := filepath.Join(storagePath, backupFilePrefix+"old.db")
		require.NoError(t, os.WriteFile(old, []byte("x"), 0o644))
		stale := time.Now().AddDate(0, 0, -3)
		require.NoError(t, os.Chtimes(old, stale, stale))

		foreign := filepath.Join(storagePath, "keep.txt")
		require.NoError(t, os.WriteFile(foreign, []byte("x"), 0o644))
		require.NoError(t, os.Chtimes(foreign, stale, stale))

		assert.Equal(t, 1, s.CleanupOldBackups(time.Now()))
		assert.NoFileExists(t, old)
		assert.FileExists(t, foreign)
		assert.FileExists(t, path)
	})
}

func TestBackupServiceDisabled(t *testing.T) {
	db := setupTestDB(t)
	logger := zerolog.Nop()
	s := NewBackupService(db, config.BackupConfig{}, &logger)

	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled backup service should return immediately")
	}
}
