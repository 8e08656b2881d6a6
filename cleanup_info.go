package maintagent

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const duProbeTimeout = 30 * time.Second

// CleanupInfo sizes the reclaimable space behind the cleanup tasks, in
// bytes. Probes that fail (missing path, no du) report zero.
type CleanupInfo struct {
	PackageCacheSize int64
	TempFilesSize    int64
	LogFilesSize     int64
	BrowserCacheSize int64
	TotalCleanupSize int64
}

// GetSystemCleanupInfo measures cleanup opportunities with `du -sh`.
func (m *Manager) GetSystemCleanupInfo(ctx context.Context) CleanupInfo {
	info := CleanupInfo{
		PackageCacheSize: m.probeDirSize(ctx, "/var/cache/apt/archives"),
		TempFilesSize:    m.probeDirSize(ctx, "/tmp"),
		LogFilesSize:     m.probeDirSize(ctx, "/var/log"),
	}
	for _, dir := range browserCacheDirs() {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		info.BrowserCacheSize += m.probeDirSize(ctx, dir)
	}
	info.TotalCleanupSize = info.PackageCacheSize + info.TempFilesSize +
		info.LogFilesSize + info.BrowserCacheSize
	return info
}

func browserCacheDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".cache", "mozilla", "firefox"),
		filepath.Join(home, ".cache", "google-chrome"),
		filepath.Join(home, ".cache", "chromium"),
		filepath.Join(home, ".cache", "brave"),
	}
}

func (m *Manager) probeDirSize(ctx context.Context, dir string) int64 {
	res, err := m.runner.Run(ctx, "du -sh "+dir, false, duProbeTimeout)
	if err != nil || res.ExitCode != 0 {
		log.Debug().Err(err).Str("dir", dir).Msg("could not probe directory size")
		return 0
	}
	fields := strings.Fields(res.Stdout)
	if len(fields) == 0 {
		return 0
	}
	return parseSize(fields[0])
}

// parseSize converts a du-style size ("1.2G", "500M", "16K", "123") to bytes.
func parseSize(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	unit := int64(1)
	switch s[len(s)-1] {
	case 'G':
		unit = 1 << 30
		s = s[:len(s)-1]
	case 'M':
		unit = 1 << 20
		s = s[:len(s)-1]
	case 'K':
		unit = 1 << 10
		s = s[:len(s)-1]
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(value * float64(unit))
}
