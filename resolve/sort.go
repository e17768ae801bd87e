package resolve

import (
	"golang.org/x/exp/slices"

	"github.com/go-richtext/richlayout/style"
)

func sortVariationsStable(s []style.VariationSetting) {
	slices.SortStableFunc(s, func(a, b style.VariationSetting) bool {
		return a.Tag.String() < b.Tag.String()
	})
}

func sortFeaturesStable(s []style.FeatureSetting) {
	slices.SortStableFunc(s, func(a, b style.FeatureSetting) bool {
		return a.Tag.String() < b.Tag.String()
	})
}
