package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/num311/news-reader/internal/news"
)

// maxNotifiedPerFeed ограничивает историю уведомлений по одной ленте.
// При сохранении старые идентификаторы отбрасываются первыми.
const maxNotifiedPerFeed = 500

// FileStore хранит состояние дедупликации в JSON-файле.
type FileStore struct {
	path string
}

// NewFileStore создаёт новый файловый стор.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load читает состояние из файла. Отсутствующий или повреждённый файл
// не прерывает запуск: возвращается пустое состояние, а проблема
// фиксируется в логе. Повреждённый файл переименовывается в .broken
// для диагностики.
func (s *FileStore) Load(ctx context.Context) news.DedupState {
	empty := news.DedupState{Notified: make(map[string][]string)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: cannot read dedup state file %s: %v (starting with empty state)", s.path, err)
		}
		return empty
	}

	var loaded news.DedupState
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Printf("Warning: dedup state file %s is corrupted: %v (starting with empty state)", s.path, err)
		brokenPath := s.path + ".broken"
		_ = os.WriteFile(brokenPath, data, 0644) // сохраняем повреждённый файл для анализа
		return empty
	}

	if loaded.Notified == nil {
		loaded.Notified = make(map[string][]string)
	}
	return loaded
}

// Save записывает состояние в файл атомарно (через временный файл).
// Перед записью история каждой ленты усекается до maxNotifiedPerFeed
// последних идентификаторов.
func (s *FileStore) Save(ctx context.Context, st news.DedupState) error {
	for feedKey, ids := range st.Notified {
		if len(ids) > maxNotifiedPerFeed {
			st.Notified[feedKey] = ids[len(ids)-maxNotifiedPerFeed:]
		}
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dedup state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp state file: %w", err)
	}

	// Переименование атомарно на большинстве файловых систем
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp state file: %w", err)
	}

	return nil
}
