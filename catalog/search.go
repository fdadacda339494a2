// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initMatcher sync.Once

// Match is one search hit. Higher scores are better.
type Match struct {
	Entry
	Score int
}

// Search fuzzy-matches query against every command path and returns
// up to limit matches, best first. Matching is case-insensitive. An
// empty query matches every entry with score zero, in path order. A
// limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []Match {
	initMatcher.Do(func() { algo.Init("default") })

	pattern := []rune(strings.ToLower(strings.TrimSpace(query)))
	slab := util.MakeSlab(100*1024, 2048)

	var matches []Match
	for _, entry := range c.Entries() {
		if len(pattern) == 0 {
			matches = append(matches, Match{Entry: entry})
			continue
		}
		chars := util.ToChars([]byte(entry.Path))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
		if result.Start < 0 {
			continue
		}
		matches = append(matches, Match{Entry: entry, Score: result.Score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if len(matches[i].Path) != len(matches[j].Path) {
			return len(matches[i].Path) < len(matches[j].Path)
		}
		return matches[i].Path < matches[j].Path
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
