package parse

import (
	"strconv"
	"strings"
	"testing"
)

// ── NormalizeDay 测试 ──

func TestNormalizeDay_Table(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"M", "M"}, {"mon", "M"}, {"Monday", "M"},
		{"T", "T"}, {"TUE", "T"}, {"tues", "T"},
		{"W", "W"}, {"wed", "W"},
		{"TH", "TH"}, {"Thu", "TH"}, {"THURS", "TH"},
		{"F", "F"}, {"fri", "F"},
		{"S", "S"}, {"SAT", "S"},
		{"SU", "SU"}, {"sun", "SU"},
		{" th ", "TH"}, // 首尾空白容忍
	}
	for _, c := range cases {
		got, ok := NormalizeDay(c.in)
		if !ok || got != c.want {
			t.Errorf("NormalizeDay(%q) 期望 %q，实际 %q/%v", c.in, c.want, got, ok)
		}
	}
}

func TestNormalizeDay_NoGuessing(t *testing.T) {
	// 无法识别的 token 返回无匹配，绝不猜测
	for _, in := range []string{"MWF", "X", "TTH", "", "8:00"} {
		if got, ok := NormalizeDay(in); ok {
			t.Errorf("NormalizeDay(%q) 不应匹配，实际 %q", in, got)
		}
	}
}

// ── To24Hour 测试 ──

func TestTo24Hour_Conversions(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"8:00 am", "08:00"},
		{"9:30 AM", "09:30"},
		{"1:15 pm", "13:15"},
		{"11:45 PM", "23:45"},
		{"12:00 am", "00:00"}, // 午夜
		{"12:00 pm", "12:00"}, // 正午
		{"12:30 Pm", "12:30"},
		{"8:00am", "08:00"}, // AM/PM 前无空格
		{"8:00", "08:00"},   // 已是 24 小时制 → 仅零填充
		{"14:30", "14:30"},
	}
	for _, c := range cases {
		got, ok := To24Hour(c.in)
		if !ok || got != c.want {
			t.Errorf("To24Hour(%q) 期望 %q，实际 %q/%v", c.in, c.want, got, ok)
		}
	}
}

func TestTo24Hour_Unparseable(t *testing.T) {
	for _, in := range []string{"noon", "8 am", "8:00 xm", "", "CL-301"} {
		if got, ok := To24Hour(in); ok {
			t.Errorf("To24Hour(%q) 不应解析成功，实际 %q", in, got)
		}
	}
}

// 往返性质：任意合法 12 小时制时刻经 To24Hour 后重新派生
// 12 小时制标签，小时与 AM/PM 段保持不变
func TestTo24Hour_RoundTrip(t *testing.T) {
	for h := 1; h <= 12; h++ {
		for _, period := range []string{"am", "pm"} {
			in := strconv.Itoa(h) + ":30 " + period

			out, ok := To24Hour(in)
			if !ok {
				t.Fatalf("To24Hour(%q) 应成功", in)
			}

			h24, _ := strconv.Atoi(strings.Split(out, ":")[0])
			backH, backPeriod := h24, "am"
			switch {
			case h24 == 0:
				backH = 12
			case h24 == 12:
				backPeriod = "pm"
			case h24 > 12:
				backH, backPeriod = h24-12, "pm"
			}
			if backH != h || backPeriod != period {
				t.Errorf("%q 往返后变为 %d %s", in, backH, backPeriod)
			}
		}
	}
}
