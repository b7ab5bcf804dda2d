package model

// Schedule 课表表 — 对应 schedules
//
// 一张命名课表引用若干课程 ID（TEXT[]）。被引用课程删除时，
// 由 Service 层级联清理 SubjectIDs，数据库不设外键约束
// （数组元素无法声明引用完整性）。
type Schedule struct {
	ScheduleID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	UserID       string      `gorm:"type:uuid;not null;index"                       json:"user_id"`
	ScheduleName string      `gorm:"type:varchar(100);not null"                     json:"schedule_name"`
	SubjectIDs   StringArray `gorm:"type:text[]"                                    json:"subject_ids"`
	ViewDays     StringArray `gorm:"type:text[]"                                    json:"view_days"` // 规范星期代码子集
	StartTime    string      `gorm:"type:varchar(5)"                                json:"start_time"` // 展示窗口起点 "HH:MM"，空取默认
	EndTime      string      `gorm:"type:varchar(5)"                                json:"end_time"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }
