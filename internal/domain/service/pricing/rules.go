package pricing

import (
	"context"
	"os"

	jsoniter "github.com/json-iterator/go"

	"ebay_pricer/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// RuleStore читает календарные правила из JSON-файла.
//
// Файл правит оператор руками, поэтому правила перечитываются при каждом
// обращении: долгоживущий процесс не должен застрять на старом наборе.
// Отсутствующий или битый файл — не ошибка, просто пустой набор.
type RuleStore struct {
	path string
}

func NewRuleStore(path string) *RuleStore {
	return &RuleStore{path: path}
}

// Rules возвращает правила в порядке следования в файле.
func (s *RuleStore) Rules(ctx context.Context) []entity.CalendarRule {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger(ctx).Warn("pricing rules unreadable", "path", s.path, "error", err)
		}

		return nil
	}

	var rules []entity.CalendarRule

	if err := json.Unmarshal(data, &rules); err != nil {
		logger(ctx).Warn("pricing rules malformed", "path", s.path, "error", err)

		return nil
	}

	return rules
}
