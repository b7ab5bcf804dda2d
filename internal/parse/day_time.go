package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ── 星期与时刻归一化 ──────────────────────────────────────
//
// 星期缩写映射为 7 个规范代码 {M, T, W, TH, F, S, SU}；
// 12 小时制时刻转为零填充的 24 小时制 "HH:MM"。
// 两者对无法识别的输入都返回明确的"无匹配"，从不猜测。
// ─────────────────────────────────────────────────────────

// dayTable 星期 token → 规范代码。查表即全部规则，不做前缀推断。
var dayTable = map[string]string{
	"M": "M", "MON": "M", "MONDAY": "M",
	"T": "T", "TU": "T", "TUE": "T", "TUES": "T", "TUESDAY": "T",
	"W": "W", "WED": "W", "WEDNESDAY": "W",
	"TH": "TH", "THU": "TH", "THURS": "TH", "THURSDAY": "TH",
	"F": "F", "FRI": "F", "FRIDAY": "F",
	"S": "S", "SAT": "S", "SATURDAY": "S",
	"SU": "SU", "SUN": "SU", "SUNDAY": "SU",
}

// NormalizeDay 将星期 token 归一化为规范代码。
// 无法识别时返回 ("", false)，由调用方丢弃对应区间。
func NormalizeDay(token string) (string, bool) {
	code, ok := dayTable[strings.ToUpper(strings.TrimSpace(token))]
	return code, ok
}

var (
	time12Re = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AP])M$`)
	time24Re = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// To24Hour 将 "H:MM AM/PM"（大小写不限、AM/PM 前可有空格）转为 "HH:MM"。
// 已是 24 小时制的输入仅做零填充。12 AM→00，12 PM 保持 12，其余 PM +12。
// 无法解析时返回 ("", false)，调用方应丢弃整个区间。
func To24Hour(token string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(token))

	m := time12Re.FindStringSubmatch(s)
	if m == nil {
		if m24 := time24Re.FindStringSubmatch(s); m24 != nil {
			h, _ := strconv.Atoi(m24[1])
			return fmt.Sprintf("%02d:%s", h, m24[2]), true
		}
		return "", false
	}

	h, _ := strconv.Atoi(m[1])
	switch {
	case m[3] == "P" && h != 12:
		h += 12
	case m[3] == "A" && h == 12:
		h = 0
	}
	return fmt.Sprintf("%02d:%s", h, m[2]), true
}
