package parse

import "strings"

// ── CSV 导入解析 ──────────────────────────────────────────
//
// 之所以不用 encoding/csv：来源文件常有裸引号、不规整的
// 引号配对，标准库的严格模式会整行拒绝；这里的逐字符切分
// 对畸形输入照单全收，与粘贴导入同样的"尽力而为"哲学。
// ─────────────────────────────────────────────────────────

// SplitCSVLine 按逗号切分单行，支持双引号包裹与 "" 转义
func SplitCSVLine(line string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuote && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuote = !inQuote
			}
		case ch == ',' && !inQuote:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	out = append(out, cur.String())
	return out
}

// ParseCSV 解析整块 CSV 文本：首行为表头，其余行映射为
// 表头 → 单元格 的键值对。列数不齐时缺失列取空串。
func ParseCSV(text string) []map[string]string {
	text = strings.ReplaceAll(text, "\r", "")
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	headers := SplitCSVLine(lines[0])
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	rows := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := SplitCSVLine(line)
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// headerAliases 各字段可接受的表头别名，按优先级排列
var headerAliases = map[string][]string{
	"data_id":        {"data_id", "id", "data id"},
	"number":         {"#", "no", "number", "index"},
	"offering_dept":  {"offering dept", "offering_dept", "offering", "dept", "department"},
	"subject_code":   {"subject", "subject_code", "subject code", "code"},
	"subject_title":  {"subject title", "subject_title", "title"},
	"credited_units": {"credited units", "credited_units", "credits", "credited"},
	"section":        {"section", "sect"},
	"schedule":       {"schedule", "schedules", "time", "when"},
	"room":           {"room", "rooms", "venue"},
	"total_slots":    {"total slots", "total_slots", "slots"},
	"enrolled":       {"enrolled", "enrollee", "enrollment", "enrol"},
	"assessed":       {"assessed"},
	"is_closed":      {"is closed", "is_closed", "closed", "status"},
}

// NormalizeCSVRow 以表头别名解析一行 CSV 数据为归一化 Record。
// data_id 缺失时由 gen 铸造。
func NormalizeCSVRow(raw map[string]string, gen IDGenerator) Record {
	// 表头按小写归一化索引，读值忽略大小写与首尾空白
	lowered := make(map[string]string, len(raw))
	for k, v := range raw {
		lowered[strings.ToLower(strings.TrimSpace(k))] = v
	}
	read := func(field string) string {
		for _, name := range headerAliases[field] {
			if v, ok := lowered[name]; ok && strings.TrimSpace(v) != "" {
				return v
			}
		}
		return ""
	}

	rec := Record{
		DataID:        strings.TrimSpace(read("data_id")),
		Number:        read("number"),
		OfferingDept:  read("offering_dept"),
		SubjectCode:   read("subject_code"),
		SubjectTitle:  read("subject_title"),
		CreditedUnits: toNullableFloat(read("credited_units")),
		Section:       read("section"),
		Schedule:      read("schedule"),
		Room:          read("room"),
		TotalSlots:    toNullableInt(read("total_slots")),
		Enrolled:      toNullableInt(read("enrolled")),
		Assessed:      toNullableInt(read("assessed")),
		IsClosed:      normalizeClosed(read("is_closed")),
	}
	if rec.DataID == "" {
		rec.DataID = gen()
	}
	rec.Modality = InferModality(
		rec.Room,
		rec.Schedule,
		rec.SubjectTitle,
		rec.SubjectCode,
		rec.OfferingDept,
		rec.Section,
	)
	return rec
}
