// Package attachment persists notification attachments flagged for backup.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"notify-svc/internal/domain/entity"
)

// maxCollisionSuffix bounds the name_N probe.
const maxCollisionSuffix = 10000

// Archiver writes attachments under Root/<topic>/.
type Archiver struct {
	Root string
}

// NewArchiver returns an Archiver rooted at root.
func NewArchiver(root string) *Archiver {
	return &Archiver{Root: root}
}

// Archive writes every attachment with Backup set, in order, and returns the
// final file names. Existing files are never overwritten; a clash is resolved
// as name_1.ext, name_2.ext and so on. Files written before a failure are kept.
func (a *Archiver) Archive(ctx context.Context, topic string, atts []entity.Attachment) ([]string, error) {
	topic = entity.NormalizeTopic(topic)
	if err := entity.ValidateTopic(topic); err != nil {
		return nil, entity.Internal("invalid attachment directory", err)
	}

	dir := filepath.Join(a.Root, topic)
	names := make([]string, 0, len(atts))
	for _, att := range atts {
		if !att.Backup {
			continue
		}
		if err := ctx.Err(); err != nil {
			return names, entity.Internal("attachment archiving interrupted", err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return names, entity.Internal("failed to create attachment directory", err)
		}

		base := filepath.Base(att.Filename)
		if base == "." || base == ".." || base == string(filepath.Separator) {
			return names, entity.Internal(fmt.Sprintf("invalid attachment filename %q", att.Filename), nil)
		}
		data, err := att.Decode()
		if err != nil {
			return names, entity.Internal(fmt.Sprintf("failed to decode attachment %q", base), err)
		}

		name, err := writeUnique(dir, base, data)
		if err != nil {
			return names, entity.Internal(fmt.Sprintf("failed to write attachment %q", base), err)
		}
		slog.Debug("attachment archived",
			slog.String("topic", topic),
			slog.String("file", name),
			slog.Int("bytes", len(data)))
		names = append(names, name)
	}
	return names, nil
}

// writeUnique creates dir/base, or the first free name_N variant, with
// O_EXCL so the existence check and the creation are one operation.
func writeUnique(dir, base string, data []byte) (string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 0; n <= maxCollisionSuffix; n++ {
		name := base
		if n > 0 {
			name = fmt.Sprintf("%s_%d%s", stem, n, ext)
		}
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", err
		}
		return name, nil
	}
	return "", fmt.Errorf("no free name for %s after %d attempts", base, maxCollisionSuffix)
}
