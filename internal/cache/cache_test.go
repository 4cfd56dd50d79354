package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mgarcia/jobscout/internal/types"
)

func TestKey_StableAcrossPlatformOrder(t *testing.T) {
	a := types.SearchQuery{
		JobTitle:  "Engineer",
		Location:  "Remote",
		Platforms: []types.Platform{types.PlatformLinkedIn, types.PlatformIndeed},
	}
	b := types.SearchQuery{
		JobTitle:  "Engineer",
		Location:  "Remote",
		Platforms: []types.Platform{types.PlatformIndeed, types.PlatformLinkedIn},
	}

	assert.Equal(t, Key(a), Key(b))
}

func TestKey_DistinguishesQueries(t *testing.T) {
	base := types.NewSearchQuery("Engineer", "Remote", nil)

	otherTitle := types.NewSearchQuery("Designer", "Remote", nil)
	otherLocation := types.NewSearchQuery("Engineer", "Berlin", nil)
	otherPlatforms := types.NewSearchQuery("Engineer", "Remote", []types.Platform{types.PlatformIndeed})

	assert.NotEqual(t, Key(base), Key(otherTitle))
	assert.NotEqual(t, Key(base), Key(otherLocation))
	assert.NotEqual(t, Key(base), Key(otherPlatforms))
}

func TestKey_NoFieldBleed(t *testing.T) {
	// "ab"+"c" must not collide with "a"+"bc".
	a := types.SearchQuery{JobTitle: "ab", Location: "c"}
	b := types.SearchQuery{JobTitle: "a", Location: "bc"}

	assert.NotEqual(t, Key(a), Key(b))
}

func TestKey_Prefixed(t *testing.T) {
	key := Key(types.NewSearchQuery("", "", nil))
	assert.True(t, strings.HasPrefix(key, "jobscout:search:"))
}
