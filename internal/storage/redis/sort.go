package redis

import (
	"sort"

	"github.com/tilematch/backend/internal/model"
)

// Set members come back in arbitrary order; callers expect stable listings.

func sortProgressByLevel(rows []*model.LevelProgress) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].LevelNumber < rows[j].LevelNumber
	})
}

func sortThemesByName(themes []*model.Theme) {
	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Name < themes[j].Name
	})
}
