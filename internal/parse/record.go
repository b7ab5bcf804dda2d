package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ── 表格记录解析器 ────────────────────────────────────────
//
// 一条课程记录在粘贴文本中占据：
//   1 行表头（序号 / 开课院系 / 课程代码 / 标题 / 学分 / 班别）
//   0..N 行时间（"M 8:00 am - 9:30 am CL-301" 这类片段）
//   0..1 行汇总（名额 已选 已评估 [教室] [yes|no]）
// 汇总行以"含纯数字 token"为边界信号；向前看一行防止把
// 下一条记录的表头吞进当前记录的时间块。
// ─────────────────────────────────────────────────────────

// RawRecord 解析出的原始字段元组，全部保持字符串形态。
// 数值字段的空串在 NormalizeRecord 阶段统一coerce为 nil。
type RawRecord struct {
	Number        string
	OfferingDept  string
	SubjectCode   string
	SubjectTitle  string
	CreditedUnits string
	Section       string
	Schedule      string
	Room          string
	TotalSlots    string
	Enrolled      string
	Assessed      string
	IsClosed      string
}

var (
	courseCodeRe = regexp.MustCompile(`^[A-Za-z]+\d+`)
	closedWordRe = regexp.MustCompile(`(?i)^(yes|no|y|n|true|false)$`)
)

// ParsePlainText 将整块粘贴文本解析为有序的记录序列。
// 对残缺输入尽量产出（缺时间行、缺汇总行的记录照常生成），
// 任何情况下都不报错——这是一个尽力而为的文本抓取器。
func ParsePlainText(text string) []RawRecord {
	lines := splitLines(text)

	var records []RawRecord
	for i := 0; i < len(lines); {
		tokens := SplitTokens(lines[i])

		var rec RawRecord
		if len(tokens) > 0 {
			rec.Number = tokens[0]
		}
		if len(tokens) > 1 {
			rec.OfferingDept = tokens[1]
		}
		if len(tokens) > 2 {
			rec.SubjectCode = tokens[2]
		}
		if len(tokens) >= 5 {
			// 末两个 token 是学分与班别，中间全部归入标题
			rec.CreditedUnits = tokens[len(tokens)-2]
			rec.Section = tokens[len(tokens)-1]
			rec.SubjectTitle = strings.Join(tokens[3:len(tokens)-2], " ")
		} else if len(tokens) > 3 {
			rec.SubjectTitle = strings.Join(tokens[3:], " ")
		}
		i++

		// ── 时间行：持续消费非汇总行 ──
		// 行内空白串压成单空格，时间串与后续解析都以单空格为准
		var scheduleLines []string
		for i < len(lines) && !HasPureNumberToken(lines[i]) {
			scheduleLines = append(scheduleLines, strings.Join(strings.Fields(lines[i]), " "))
			i++
			// 向前看：下一行若形似新表头（≥3 token、首 token 纯数字、
			// 第三 token 是课程代码形态）则提前结束，避免吞掉下一条记录
			if i < len(lines) {
				peek := SplitTokens(lines[i])
				if len(peek) >= 3 && pureNumberRe.MatchString(peek[0]) && courseCodeRe.MatchString(peek[2]) {
					break
				}
			}
		}

		// ── 汇总行：名额/已选/已评估 + 教室 + 是否关闭 ──
		if i < len(lines) && HasPureNumberToken(lines[i]) {
			parts := SplitTokens(lines[i])

			var numeric, other []string
			for _, p := range parts {
				if pureNumberRe.MatchString(p) {
					numeric = append(numeric, p)
				} else {
					other = append(other, p)
				}
			}
			if len(numeric) > 0 {
				rec.TotalSlots = numeric[0]
			}
			if len(numeric) > 1 {
				rec.Enrolled = numeric[1]
			}
			if len(numeric) > 2 {
				rec.Assessed = numeric[2]
			}
			if len(other) > 0 {
				if closedWordRe.MatchString(other[len(other)-1]) {
					rec.IsClosed = other[len(other)-1]
					other = other[:len(other)-1]
				}
				rec.Room = strings.Join(other, " ")
			}
			i++
		}

		rec.Schedule = strings.Join(scheduleLines, " / ")
		records = append(records, rec)
	}

	return records
}

// ── 归一化 ──

// IDGenerator 产出唯一记录 ID。
// 以显式依赖注入取代全局自增计数器，保证可测试与确定性；
// 生产环境取 uuid.NewString。
type IDGenerator func() string

// Record 归一化后的课程记录。数值字段缺失或不可解析时为 nil，
// 绝不产生 NaN，也绝不报错。
type Record struct {
	DataID        string
	Number        string
	OfferingDept  string
	SubjectCode   string
	SubjectTitle  string
	CreditedUnits *float64
	Section       string
	Schedule      string
	Room          string
	TotalSlots    *int
	Enrolled      *int
	Assessed      *int
	IsClosed      bool
	Modality      Modality
}

// NormalizeRecord 将原始字段元组归一化为 Record 并铸造 DataID。
// Modality 在导入时由启发式扫描给出缺省值，之后以存储字段为准。
func NormalizeRecord(raw RawRecord, gen IDGenerator) Record {
	rec := Record{
		DataID:        gen(),
		Number:        raw.Number,
		OfferingDept:  raw.OfferingDept,
		SubjectCode:   raw.SubjectCode,
		SubjectTitle:  raw.SubjectTitle,
		CreditedUnits: toNullableFloat(raw.CreditedUnits),
		Section:       raw.Section,
		Schedule:      raw.Schedule,
		Room:          raw.Room,
		TotalSlots:    toNullableInt(raw.TotalSlots),
		Enrolled:      toNullableInt(raw.Enrolled),
		Assessed:      toNullableInt(raw.Assessed),
		IsClosed:      normalizeClosed(raw.IsClosed),
	}
	rec.Modality = InferModality(
		raw.Room,
		raw.Schedule,
		raw.SubjectTitle,
		raw.SubjectCode,
		raw.OfferingDept,
		raw.Section,
	)
	return rec
}

var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// toNullableFloat 剥离非数字字符后解析；失败归 nil，绝不 NaN
func toNullableFloat(s string) *float64 {
	cleaned := nonNumericRe.ReplaceAllString(s, "")
	if cleaned == "" {
		return nil
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

func toNullableInt(s string) *int {
	f := toNullableFloat(s)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// normalizeClosed 识别 yes/no/y/n/true/false/closed/open；无法识别时默认未关闭
func normalizeClosed(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "closed":
		return true
	default:
		return false
	}
}
