package budget

import "github.com/MsVron/budget/internal/core"

// FallbackColor is the neutral gray used when no other color source applies.
const FallbackColor = "#95A5A6"

// Directory is the category lookup consumed by the aggregators. It is
// satisfied by *category.Service.
type Directory interface {
	ByName(name string, t core.TransactionType) (core.Category, bool)
}

// resolveColor walks the color sources in priority order: the explicit
// colors carried by the entries themselves, then the category directory,
// then the gray fallback. The chain is kept as one ordered function so the
// priority stays auditable.
func resolveColor(dir Directory, name string, t core.TransactionType, explicit ...string) string {
	for _, c := range explicit {
		if c != "" {
			return c
		}
	}
	if dir != nil {
		if cat, ok := dir.ByName(name, t); ok && cat.Color != "" {
			return cat.Color
		}
	}
	return FallbackColor
}
