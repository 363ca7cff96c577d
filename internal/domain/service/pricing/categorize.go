package pricing

import (
	"strings"

	"github.com/samber/lo"
)

// Канонические ключи категорий рыночного индекса.
const (
	CategoryKAWSBearbrick1000 = "KAWS - Bearbrick 1000%"
	CategoryKAWSBearbrick400  = "KAWS - Bearbrick 400%"
	CategoryKAWSBearbrick100  = "KAWS - Bearbrick 100%"
	CategoryKAWSBearbrick     = "KAWS - Bearbrick"
	CategoryKAWSCompanion     = "KAWS - Companion"
	CategoryKAWSChum          = "KAWS - Chum"
	CategoryKAWSBFF           = "KAWS - BFF"
	CategoryKAWSOther         = "KAWS - Other"
	CategoryBearbrick1000     = "Bearbrick - 1000%"
	CategoryBearbrick400      = "Bearbrick - 400%"
	CategoryBearbrick100      = "Bearbrick - 100%"
	CategoryBearbrickBasquiat = "Bearbrick - Basquiat"
	CategoryBearbrickOther    = "Bearbrick - Other"
	CategoryFaireyHope        = "Shepard Fairey - Hope"
	CategoryFaireyMakeArt     = "Shepard Fairey - Make Art Not War"
	CategoryFaireyPeace       = "Shepard Fairey - Peace"
	CategoryFaireyPrint       = "Shepard Fairey - Print"
	CategoryDeathNYCPrint     = "Death NYC - Print"
	CategoryBanksyPrint       = "Banksy - Print"
)

// CategorizeTitle сопоставляет заголовок лота канонической категории
// индекса. Ветки проверяются по порядку, первая подошедшая выигрывает:
// бренд определяется раньше вариации, поэтому "KAWS Bearbrick 1000%"
// уходит в ветку KAWS, а не в общий Bearbrick. Все проверки — поиск
// подстроки без учёта регистра.
func CategorizeTitle(title string) (string, bool) {
	t := strings.ToLower(title)

	switch {
	case strings.Contains(t, "kaws"):
		return categorizeKAWS(t), true
	case containsAny(t, "bearbrick", "be@rbrick"):
		return categorizeBearbrick(t), true
	case containsAny(t, "shepard fairey", "obey giant"):
		return categorizeFairey(t), true
	case strings.Contains(t, "death nyc"):
		return CategoryDeathNYCPrint, true
	case strings.Contains(t, "banksy"):
		return CategoryBanksyPrint, true
	default:
		return "", false
	}
}

func categorizeKAWS(t string) string {
	switch {
	case containsAny(t, "1000%", "1000 %"):
		return CategoryKAWSBearbrick1000
	case containsAny(t, "bearbrick", "be@rbrick"):
		switch {
		case strings.Contains(t, "400%"):
			return CategoryKAWSBearbrick400
		case strings.Contains(t, "100%"):
			return CategoryKAWSBearbrick100
		default:
			return CategoryKAWSBearbrick
		}
	case strings.Contains(t, "companion"):
		return CategoryKAWSCompanion
	case strings.Contains(t, "chum"):
		return CategoryKAWSChum
	case strings.Contains(t, "bff"):
		return CategoryKAWSBFF
	default:
		return CategoryKAWSOther
	}
}

func categorizeBearbrick(t string) string {
	switch {
	case strings.Contains(t, "1000%"):
		return CategoryBearbrick1000
	case strings.Contains(t, "400%"):
		return CategoryBearbrick400
	case strings.Contains(t, "100%"):
		return CategoryBearbrick100
	case strings.Contains(t, "basquiat"):
		return CategoryBearbrickBasquiat
	default:
		return CategoryBearbrickOther
	}
}

func categorizeFairey(t string) string {
	switch {
	case strings.Contains(t, "hope"):
		return CategoryFaireyHope
	case strings.Contains(t, "make art not war"):
		return CategoryFaireyMakeArt
	case strings.Contains(t, "peace"):
		return CategoryFaireyPeace
	default:
		return CategoryFaireyPrint
	}
}

func containsAny(s string, subs ...string) bool {
	return lo.SomeBy(subs, func(sub string) bool {
		return strings.Contains(s, sub)
	})
}
