package service

import (
	"sort"
	"strings"
)

// 列表检索/排序的小工具：搜索是跨可见文本列的大小写不敏感子串匹配，
// 排序稳定，dir 只认 "desc"，其余一律按升序处理（新选排序键默认升序）。

func matchTerm(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), t) {
			return true
		}
	}
	return false
}

func descending(dir string) bool {
	return strings.EqualFold(strings.TrimSpace(dir), "desc")
}

// sortSlice 稳定排序；desc 时反转比较结果
func sortSlice[T any](rows []T, desc bool, cmp func(a, b T) int) {
	sort.SliceStable(rows, func(i, j int) bool {
		c := cmp(rows[i], rows[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func cmpStrings(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	switch {
	case la < lb:
		return -1
	case la > lb:
		return 1
	default:
		return 0
	}
}

func cmpFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
