package dto

// ── 课程模块 DTO ──

// CreateSubjectRequest 创建课程请求
type CreateSubjectRequest struct {
	Number        string   `json:"number"         binding:"omitempty,max=32"`
	OfferingDept  string   `json:"offering_dept"  binding:"omitempty,max=64"`
	SubjectCode   string   `json:"subject_code"   binding:"omitempty,max=32"`
	SubjectTitle  string   `json:"subject_title"  binding:"required,max=255"`
	Section       string   `json:"section"        binding:"omitempty,max=32"`
	Schedule      string   `json:"schedule"       binding:"omitempty,max=500"`
	Room          string   `json:"room"           binding:"omitempty,max=128"`
	CreditedUnits *float64 `json:"credited_units" binding:"omitempty,min=0"`
	TotalSlots    *int     `json:"total_slots"    binding:"omitempty,min=0"`
	Enrolled      *int     `json:"enrolled"       binding:"omitempty,min=0"`
	Assessed      *int     `json:"assessed"       binding:"omitempty,min=0"`
	IsClosed      bool     `json:"is_closed"`
	Modality      string   `json:"modality"       binding:"omitempty,oneof=f2f online hybrid unknown"`
}

// UpdateSubjectRequest 更新课程请求（指针字段表示可选更新）
type UpdateSubjectRequest struct {
	Number        *string  `json:"number"         binding:"omitempty,max=32"`
	OfferingDept  *string  `json:"offering_dept"  binding:"omitempty,max=64"`
	SubjectCode   *string  `json:"subject_code"   binding:"omitempty,max=32"`
	SubjectTitle  *string  `json:"subject_title"  binding:"omitempty,max=255"`
	Section       *string  `json:"section"        binding:"omitempty,max=32"`
	Schedule      *string  `json:"schedule"       binding:"omitempty,max=500"`
	Room          *string  `json:"room"           binding:"omitempty,max=128"`
	CreditedUnits *float64 `json:"credited_units" binding:"omitempty,min=0"`
	TotalSlots    *int     `json:"total_slots"    binding:"omitempty,min=0"`
	Enrolled      *int     `json:"enrolled"       binding:"omitempty,min=0"`
	Assessed      *int     `json:"assessed"       binding:"omitempty,min=0"`
	IsClosed      *bool    `json:"is_closed"`
	Modality      *string  `json:"modality"       binding:"omitempty,oneof=f2f online hybrid unknown"`
}

// ListSubjectsRequest 课程列表查询参数
type ListSubjectsRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}

// FilterSubjectsRequest 课程条件筛选请求
// 三个条件为与关系；全部为空时等同于列出全部课程
type FilterSubjectsRequest struct {
	MinBreak    int      `json:"min_break"    binding:"omitempty,min=0"`
	ExcludeDays []string `json:"exclude_days" binding:"omitempty,dive,daycode"`
	ClassTypes  []string `json:"class_types"  binding:"omitempty,dive,oneof=f2f online hybrid"`
}

// SubjectResponse 课程响应
type SubjectResponse struct {
	ID            string   `json:"id"`
	DataID        string   `json:"data_id"`
	Number        string   `json:"number"`
	OfferingDept  string   `json:"offering_dept"`
	SubjectCode   string   `json:"subject_code"`
	SubjectTitle  string   `json:"subject_title"`
	Section       string   `json:"section"`
	Schedule      string   `json:"schedule"`
	Room          string   `json:"room"`
	CreditedUnits *float64 `json:"credited_units"`
	TotalSlots    *int     `json:"total_slots"`
	Enrolled      *int     `json:"enrolled"`
	Assessed      *int     `json:"assessed"`
	IsClosed      bool     `json:"is_closed"`
	Modality      string   `json:"modality"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// FilterSubjectsResponse 筛选结果响应
// Matched 为 false 表示存在课程但全部被筛掉，与空集合区分
type FilterSubjectsResponse struct {
	Subjects []SubjectResponse `json:"subjects"`
	Matched  bool              `json:"matched"`
}
