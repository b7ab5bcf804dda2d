package dto

// ── 导入模块 DTO ──

// ImportPasteRequest 粘贴文本导入请求
type ImportPasteRequest struct {
	Text string `json:"text" binding:"required"`
}

// ImportCSVRequest CSV 文本导入请求
type ImportCSVRequest struct {
	Text string `json:"text" binding:"required"`
}

// ImportResponse 导入结果响应
type ImportResponse struct {
	ImportedCount int               `json:"imported_count"`
	SkippedCount  int               `json:"skipped_count"` // 与已有课程标题重复而跳过的条数
	Subjects      []SubjectResponse `json:"subjects"`
}
