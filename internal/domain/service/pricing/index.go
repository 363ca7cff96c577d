package pricing

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"ebay_pricer/internal/domain/entity"
)

type cachedIndex struct {
	modTime time.Time
	index   *entity.MarketIndex
}

// IndexStore кэширует снапшот рыночного индекса по mtime файла.
//
// При изменении файла снапшот перечитывается целиком и подменяется одним
// атомарным свопом: читатель видит либо старый, либо новый снапшот, но
// никогда их смесь. Гонка двух одновременных перезагрузок допустима —
// обе собирают снапшот из одной и той же версии файла.
type IndexStore struct {
	path   string
	cached atomic.Pointer[cachedIndex]
}

func NewIndexStore(path string) *IndexStore {
	return &IndexStore{path: path}
}

// Snapshot возвращает актуальный снапшот или nil, если индекс ещё ни разу
// не загружался. Пропавший или нечитаемый файл возвращает предыдущий кэш.
func (s *IndexStore) Snapshot(ctx context.Context) *entity.MarketIndex {
	stat, err := os.Stat(s.path)
	if err != nil {
		return s.lastLoaded()
	}

	if cached := s.cached.Load(); cached != nil && cached.modTime.Equal(stat.ModTime()) {
		return cached.index
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		logger(ctx).Warn("market index unreadable", "path", s.path, "error", err)

		return s.lastLoaded()
	}

	var index entity.MarketIndex

	if err := json.Unmarshal(data, &index); err != nil {
		logger(ctx).Warn("market index malformed", "path", s.path, "error", err)

		return s.lastLoaded()
	}

	s.cached.Store(&cachedIndex{modTime: stat.ModTime(), index: &index})

	return &index
}

func (s *IndexStore) lastLoaded() *entity.MarketIndex {
	if cached := s.cached.Load(); cached != nil {
		return cached.index
	}

	return nil
}
