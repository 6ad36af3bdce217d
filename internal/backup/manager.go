package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	archivePrefix    = "guesthouse_backup_"
	archiveSuffix    = ".db"
	archiveTimestamp = "20060102_150405"
)

// Archive describes one backup file on disk.
type Archive struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager snapshots the database file into the backup directory and keeps
// the newest N archives. Backups are mutually exclusive with each other but
// never block live reads or writes.
type Manager interface {
	Create(ctx context.Context) (Archive, error)
	List(ctx context.Context) ([]Archive, error)
	Prune(ctx context.Context) (int, error)
}

type managerImpl struct {
	dbPath string
	cfg    *config.Config
	otel   otel.Otel
	mu     sync.Mutex
}

func NewManager(cfg *config.Config, otl otel.Otel) Manager {
	return &managerImpl{
		dbPath: cfg.DB.SQLite.Path,
		cfg:    cfg,
		otel:   otl,
	}
}

// Create copies the database file to a timestamped archive, writing a .tmp
// file first and renaming on success, then prunes old archives. A failed
// copy never replaces an existing archive.
func (m *managerImpl) Create(ctx context.Context) (archive Archive, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelBackupScopeName, constant.OtelBackupScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	m.mu.Lock()
	defer m.mu.Unlock()

	dir := m.cfg.Backup.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return archive, failure.IO(fmt.Errorf("failed to create backup directory: %w", err)) // nolint:wrapcheck
	}

	stamp := timezone.Now().Format(archiveTimestamp)

	name := archivePrefix + stamp + archiveSuffix
	target := filepath.Join(dir, name)

	// Archive names resolve to one second; a second create within the same
	// second gets a sequence suffix instead of replacing the previous
	// archive.
	for seq := 2; ; seq++ {
		if _, statErr := os.Stat(target); statErr != nil {
			break
		}

		name = fmt.Sprintf("%s%s_%02d%s", archivePrefix, stamp, seq, archiveSuffix)
		target = filepath.Join(dir, name)
	}

	tmp := target + ".tmp"

	if err := copyFile(m.dbPath, tmp); err != nil {
		_ = os.Remove(tmp)

		return archive, failure.IO(fmt.Errorf("failed to copy database file: %w", err)) // nolint:wrapcheck
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)

		return archive, failure.IO(fmt.Errorf("failed to finalize backup: %w", err)) // nolint:wrapcheck
	}

	info, err := os.Stat(target)
	if err != nil {
		return archive, failure.IO(fmt.Errorf("failed to stat backup: %w", err)) // nolint:wrapcheck
	}

	archive = Archive{
		Name:      name,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}

	log.Info().Str("archive", name).Int64("size", archive.Size).Msg("created backup")

	if pruned, err := m.prune(ctx); err != nil {
		log.Error().Err(err).Msg("failed to prune backups")
	} else if pruned > 0 {
		log.Info().Int("pruned", pruned).Msg("pruned old backups")
	}

	return archive, nil
}

func (m *managerImpl) List(ctx context.Context) (archives []Archive, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelBackupScopeName, constant.OtelBackupScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	return m.list()
}

// Prune removes all but the newest N archives, reading N from config so a
// changed retention applies without a restart.
func (m *managerImpl) Prune(ctx context.Context) (pruned int, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelBackupScopeName, constant.OtelBackupScopeName+".Prune")
	defer scope.End()
	defer scope.TraceIfError(err)

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.prune(ctx)
}

func (m *managerImpl) prune(_ context.Context) (int, error) {
	archives, err := m.list()
	if err != nil {
		return 0, err
	}

	retention := m.cfg.Backup.Retention
	if retention <= 0 || len(archives) <= retention {
		return 0, nil
	}

	pruned := 0
	for _, archive := range archives[retention:] {
		if err := os.Remove(filepath.Join(m.cfg.Backup.Dir, archive.Name)); err != nil {
			return pruned, failure.IO(fmt.Errorf("failed to remove backup %s: %w", archive.Name, err)) // nolint:wrapcheck
		}
		pruned++
	}

	return pruned, nil
}

// list returns archives newest-first.
func (m *managerImpl) list() ([]Archive, error) {
	entries, err := os.ReadDir(m.cfg.Backup.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, failure.IO(fmt.Errorf("failed to read backup directory: %w", err)) // nolint:wrapcheck
	}

	archives := make([]Archive, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, archivePrefix) || !strings.HasSuffix(name, archiveSuffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, failure.IO(fmt.Errorf("failed to stat backup %s: %w", name, err)) // nolint:wrapcheck
		}

		archives = append(archives, Archive{
			Name:      name,
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	// Archive names embed their creation timestamp, so descending name
	// order is newest-first.
	sort.Slice(archives, func(i, j int) bool {
		return archives[i].Name > archives[j].Name
	})

	return archives, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()

		return fmt.Errorf("failed to copy to %s: %w", dst, err)
	}

	if err := out.Sync(); err != nil {
		_ = out.Close()

		return fmt.Errorf("failed to sync %s: %w", dst, err)
	}

	return out.Close()
}
