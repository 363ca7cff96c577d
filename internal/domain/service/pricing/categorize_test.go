package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ebay_pricer/internal/domain/service/pricing"
)

func TestCategorizeTitle(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		title    string
		category string
		found    bool
	}{
		{
			// Бренд важнее вариации: ветка KAWS выигрывает у общего Bearbrick.
			name:     "KAWS brand wins over generic Bearbrick",
			title:    "KAWS Bearbrick 1000% Grey",
			category: pricing.CategoryKAWSBearbrick1000,
			found:    true,
		},
		{
			name:     "KAWS 1000 percent with space",
			title:    "KAWS BE@RBRICK 1000 % Chompers",
			category: pricing.CategoryKAWSBearbrick1000,
			found:    true,
		},
		{
			name:     "KAWS Bearbrick 400",
			title:    "Kaws Be@rbrick 400% Flayed",
			category: pricing.CategoryKAWSBearbrick400,
			found:    true,
		},
		{
			name:     "KAWS Bearbrick 100",
			title:    "KAWS bearbrick 100% set",
			category: pricing.CategoryKAWSBearbrick100,
			found:    true,
		},
		{
			name:     "KAWS Bearbrick without size",
			title:    "KAWS Bearbrick Dissected",
			category: pricing.CategoryKAWSBearbrick,
			found:    true,
		},
		{
			name:     "KAWS Companion",
			title:    "KAWS Companion Open Edition",
			category: pricing.CategoryKAWSCompanion,
			found:    true,
		},
		{
			name:     "KAWS Chum",
			title:    "KAWS CHUM red",
			category: pricing.CategoryKAWSChum,
			found:    true,
		},
		{
			name:     "KAWS BFF",
			title:    "KAWS BFF plush black",
			category: pricing.CategoryKAWSBFF,
			found:    true,
		},
		{
			name:     "KAWS fallback",
			title:    "KAWS Tokyo First poster",
			category: pricing.CategoryKAWSOther,
			found:    true,
		},
		{
			name:     "Bearbrick 1000 without KAWS",
			title:    "Medicom Be@rbrick 1000% Daft Punk",
			category: pricing.CategoryBearbrick1000,
			found:    true,
		},
		{
			name:     "Bearbrick 400",
			title:    "Bearbrick 400% Keith Haring",
			category: pricing.CategoryBearbrick400,
			found:    true,
		},
		{
			name:     "Bearbrick 100",
			title:    "bearbrick 100% series 42",
			category: pricing.CategoryBearbrick100,
			found:    true,
		},
		{
			name:     "Bearbrick Basquiat",
			title:    "Be@rbrick Jean-Michel Basquiat v7",
			category: pricing.CategoryBearbrickBasquiat,
			found:    true,
		},
		{
			name:     "Bearbrick fallback",
			title:    "Bearbrick keychain series",
			category: pricing.CategoryBearbrickOther,
			found:    true,
		},
		{
			name:     "Shepard Fairey Hope",
			title:    "Shepard Fairey HOPE offset print",
			category: pricing.CategoryFaireyHope,
			found:    true,
		},
		{
			name:     "Obey Giant maps to Fairey",
			title:    "OBEY GIANT Make Art Not War signed",
			category: pricing.CategoryFaireyMakeArt,
			found:    true,
		},
		{
			name:     "Shepard Fairey Peace",
			title:    "Shepard Fairey Peace Guard II",
			category: pricing.CategoryFaireyPeace,
			found:    true,
		},
		{
			name:     "Shepard Fairey fallback",
			title:    "Shepard Fairey Flower Power",
			category: pricing.CategoryFaireyPrint,
			found:    true,
		},
		{
			name:     "Death NYC",
			title:    "DEATH NYC ltd print Snoopy x LV",
			category: pricing.CategoryDeathNYCPrint,
			found:    true,
		},
		{
			name:     "Banksy",
			title:    "Banksy Girl With Balloon WCP",
			category: pricing.CategoryBanksyPrint,
			found:    true,
		},
		{
			name:  "Uncategorized",
			title: "Vintage Star Wars figure 1983",
			found: false,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(*testing.T) {
			category, found := pricing.CategorizeTitle(tc.title)

			rq.Equal(tc.found, found)
			rq.Equal(tc.category, category)
		})
	}
}
