package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// numeralValue maps every ideographic numeral the rewriter knows, including
// the financial forms and 两
var numeralValue = map[rune]int{
	'零': 0, '一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9, '十': 10,
	'两': 2,
	'壹': 1, '贰': 2, '叁': 3, '肆': 4, '伍': 5,
	'陆': 6, '柒': 7, '捌': 8, '玖': 9, '拾': 10,
}

var (
	// [tens]十[ones]
	reTensOnes = regexp.MustCompile(`([一二三四五六七八九壹贰叁肆伍陆柒捌玖])?十([一二三四五六七八九壹贰叁肆伍陆柒捌玖])?`)
	// N十; reTensOnes already rewrites every match of this one
	reTensOnly = regexp.MustCompile(`([二三四五六七八九贰叁肆伍陆柒捌玖])十`)

	singles = func() *strings.Replacer {
		pairs := make([]string, 0, 2*len(numeralValue))
		for k, v := range numeralValue {
			pairs = append(pairs, string(k), strconv.Itoa(v))
		}
		return strings.NewReplacer(pairs...)
	}()
)

// Numerals rewrites ideographic numerals in s as decimal digits.
// Rules run in order: tens expressions (十五 15, 二十三 23, 十 10),
// tens-only expressions (二十 20), then every remaining single numeral
func Numerals(s string) string {
	if s == "" || !hasNumeral(s) {
		return s
	}
	s = replaceGroups(reTensOnes, s, func(g []string) string {
		tens, ones := 1, 0
		if g[1] != "" {
			tens = valueOf(g[1])
		}
		if g[2] != "" {
			ones = valueOf(g[2])
		}
		return strconv.Itoa(tens*10 + ones)
	})
	s = replaceGroups(reTensOnly, s, func(g []string) string {
		return strconv.Itoa(valueOf(g[1]) * 10)
	})
	return singles.Replace(s)
}

func hasNumeral(s string) bool {
	for _, r := range s {
		if _, ok := numeralValue[r]; ok {
			return true
		}
	}
	return false
}

func valueOf(s string) int {
	r, _ := utf8.DecodeRuneInString(s)
	return numeralValue[r]
}

// replaceGroups is ReplaceAllStringFunc with access to capture groups;
// an unmatched group is passed as ""
func replaceGroups(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	idx := re.FindAllStringSubmatchIndex(s, -1)
	if len(idx) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range idx {
		groups := make([]string, len(m)/2)
		for g := range groups {
			if m[2*g] >= 0 {
				groups[g] = s[m[2*g]:m[2*g+1]]
			}
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(fn(groups))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
