package parse

import "strings"

// ── 授课形式推断 ──────────────────────────────────────────
//
// Modality 是权威的显式字段，随记录存储；本文件的启发式扫描
// 只在导入/编辑时提供尽力而为的缺省值，两者职责分离。
// ─────────────────────────────────────────────────────────

// Modality 授课形式
type Modality string

const (
	ModalityF2F     Modality = "f2f"
	ModalityOnline  Modality = "online"
	ModalityHybrid  Modality = "hybrid"
	ModalityUnknown Modality = "unknown"
)

// ModalityFromString 解析存储字段；无法识别时归 Unknown
func ModalityFromString(s string) Modality {
	switch Modality(strings.ToLower(strings.TrimSpace(s))) {
	case ModalityF2F, ModalityOnline, ModalityHybrid:
		return Modality(strings.ToLower(strings.TrimSpace(s)))
	default:
		return ModalityUnknown
	}
}

// InferModality 依次扫描候选字段文本，返回第一个可判定的形式。
// 全部无法判定时返回 Unknown。
//
// 判定规则（对单个字段）：
//   - 含 "/" → 按双模式 token 解析：两侧都是 online → online，
//     恰一侧 online → hybrid，两侧都不是 → f2f
//   - 含 "online" 子串 → online
//   - 含 lec/lab/caseroom/room 子串 → f2f（有实体教室痕迹）
func InferModality(candidates ...string) Modality {
	for _, c := range candidates {
		if m := inferFromText(c); m != ModalityUnknown {
			return m
		}
	}
	return ModalityUnknown
}

func inferFromText(text string) Modality {
	token := strings.ToLower(strings.TrimSpace(text))
	if token == "" {
		return ModalityUnknown
	}

	if strings.Contains(token, "/") {
		parts := strings.SplitN(token, "/", 2)
		a := strings.TrimSpace(parts[0]) == "online"
		b := len(parts) > 1 && strings.TrimSpace(parts[1]) == "online"
		switch {
		case a && b:
			return ModalityOnline
		case a != b:
			return ModalityHybrid
		default:
			return ModalityF2F
		}
	}

	if strings.Contains(token, "online") {
		return ModalityOnline
	}
	if strings.Contains(token, "lec") || strings.Contains(token, "lab") ||
		strings.Contains(token, "caseroom") || strings.Contains(token, "room") {
		return ModalityF2F
	}
	return ModalityUnknown
}
