package memvdb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

func matchAll(row map[string]any, conditions map[string]provider.ConditionValue) (bool, error) {
	for name, cond := range conditions {
		ok, err := match(row[name], cond)
		if err != nil {
			return false, fmt.Errorf("condition on %q: %w", name, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func match(value any, cond provider.ConditionValue) (bool, error) {
	switch cond.Operator {
	case provider.OpEq, "":
		return equal(value, cond.Value), nil
	case provider.OpNeq:
		return !equal(value, cond.Value), nil
	case provider.OpGt, provider.OpLt, provider.OpGte, provider.OpLte:
		cmp, ok := compare(value, cond.Value)
		if !ok {
			return false, nil
		}
		switch cond.Operator {
		case provider.OpGt:
			return cmp > 0, nil
		case provider.OpLt:
			return cmp < 0, nil
		case provider.OpGte:
			return cmp >= 0, nil
		default:
			return cmp <= 0, nil
		}
	case provider.OpLike, provider.OpLikeLower:
		pattern, ok := cond.Value.(string)
		if !ok {
			return false, fmt.Errorf("%w: LIKE needs a string pattern", provider.ErrInvalid)
		}
		s, ok := value.(string)
		if !ok {
			return false, nil
		}
		return likePattern(pattern).MatchString(s), nil
	case provider.OpIn, provider.OpInLower:
		list, ok := cond.Value.([]any)
		if !ok {
			return false, fmt.Errorf("%w: IN needs an array value", provider.ErrInvalid)
		}
		for _, item := range list {
			if equal(value, item) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("%w: unsupported operator %q", provider.ErrInvalid, cond.Operator)
	}
}

func equal(a, b any) bool {
	if x, ok := number(a); ok {
		y, ok := number(b)
		return ok && x == y
	}
	return a == b
}

func compare(a, b any) (int, bool) {
	if x, ok := number(a); ok {
		y, ok := number(b)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	x, ok := a.(string)
	if !ok {
		return 0, false
	}
	y, ok := b.(string)
	if !ok {
		return 0, false
	}
	return strings.Compare(x, y), true
}

// likePattern turns a SQL LIKE pattern into an anchored regexp. % matches any run, _ one rune.
func likePattern(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile("(?s)" + b.String())
}
