package filter

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// patternCacheSize bounds the number of compiled patterns kept across queries.
const patternCacheSize = 4096

var patterns = mustPatternCache(patternCacheSize)

func mustPatternCache(size int) *lru.Cache[string, *regexp.Regexp] {
	c, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		panic(err)
	}
	return c
}

// compile returns the cached regexp for src. Sources come from Condition.Pattern,
// whose literal part is always escaped, so compilation cannot fail.
func compile(src string) *regexp.Regexp {
	if re, ok := patterns.Get(src); ok {
		return re
	}
	re := regexp.MustCompile(src)
	patterns.Add(src, re)
	return re
}
