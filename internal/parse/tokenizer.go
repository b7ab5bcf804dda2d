package parse

import (
	"regexp"
	"strings"
)

// ── 行分词器 ──────────────────────────────────────────────
//
// 粘贴文本的来源是注册系统的表格页面，列间可能是制表符，
// 也可能被浏览器压成连续空格。两种形态的切分规则不同：
//   - 含制表符 → 严格按制表符切分（保留标题中的多空格）
//   - 不含制表符 → 按空白串切分
// ─────────────────────────────────────────────────────────

var (
	pureNumberRe = regexp.MustCompile(`^\d+$`)
	lineSplitRe  = regexp.MustCompile(`\r?\n`)
)

// SplitTokens 将一行切分为非空 token 序列
func SplitTokens(line string) []string {
	if line == "" {
		return nil
	}
	if strings.Contains(line, "\t") {
		var tokens []string
		for _, t := range strings.Split(line, "\t") {
			t = strings.TrimSpace(t)
			if t != "" {
				tokens = append(tokens, t)
			}
		}
		return tokens
	}
	return strings.Fields(line)
}

// HasPureNumberToken 判断行内是否存在纯数字 token。
// 纯数字 token 是"名额/已选/已评估"汇总行的信号，
// 用于区分混有字母的课程行与时间行。
func HasPureNumberToken(line string) bool {
	if line == "" {
		return false
	}
	for _, t := range SplitTokens(line) {
		if pureNumberRe.MatchString(t) {
			return true
		}
	}
	return false
}

// splitLines 规范化换行与不间断空格后按行切分，丢弃空行
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, " ", " ")
	var lines []string
	for _, l := range lineSplitRe.Split(text, -1) {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
