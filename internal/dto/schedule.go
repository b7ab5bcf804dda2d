package dto

// ── 课表模块 DTO ──

// CreateScheduleRequest 创建课表请求
type CreateScheduleRequest struct {
	ScheduleName string   `json:"schedule_name" binding:"required,min=1,max=100"`
	SubjectIDs   []string `json:"subject_ids"   binding:"omitempty,dive,uuid"`
	ViewDays     []string `json:"view_days"     binding:"omitempty,dive,daycode"`
	StartTime    string   `json:"start_time"    binding:"omitempty,time24"`
	EndTime      string   `json:"end_time"      binding:"omitempty,time24"`
}

// UpdateScheduleRequest 更新课表请求
type UpdateScheduleRequest struct {
	ScheduleName *string   `json:"schedule_name" binding:"omitempty,min=1,max=100"`
	SubjectIDs   *[]string `json:"subject_ids"   binding:"omitempty,dive,uuid"`
	ViewDays     *[]string `json:"view_days"     binding:"omitempty,dive,daycode"`
	StartTime    *string   `json:"start_time"    binding:"omitempty,time24"`
	EndTime      *string   `json:"end_time"      binding:"omitempty,time24"`
}

// ScheduleResponse 课表响应
type ScheduleResponse struct {
	ID           string   `json:"id"`
	ScheduleName string   `json:"schedule_name"`
	SubjectIDs   []string `json:"subject_ids"`
	ViewDays     []string `json:"view_days"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}
