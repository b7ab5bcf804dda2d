package model

// Subject 课程记录表 — 对应 subjects
//
// 导入解析产出的一条开课记录。数值字段用指针表达"缺失/不可解析"，
// 与解析层的归一化约定一致（nil 而非 NaN）。Schedule 保留人类可读
// 的原始时间串，区间与网格都是渲染时再派生的，不落库。
type Subject struct {
	SubjectID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"subject_id"`
	UserID       string  `gorm:"type:uuid;not null;index;uniqueIndex:idx_subjects_user_data" json:"user_id"`
	DataID       string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_subjects_user_data" json:"data_id"`
	Number       string  `gorm:"type:varchar(20)"                                   json:"number"`
	OfferingDept string  `gorm:"type:varchar(50)"                                   json:"offering_dept"`
	SubjectCode  string  `gorm:"type:varchar(50)"                                   json:"subject_code"`
	SubjectTitle string  `gorm:"type:varchar(255)"                                  json:"subject_title"`
	Section      string  `gorm:"type:varchar(50)"                                   json:"section"`
	Schedule     string  `gorm:"type:text"                                          json:"schedule"`
	Room         string  `gorm:"type:varchar(100)"                                  json:"room"`
	CreditedUnits *float64 `gorm:"type:numeric(5,2)"                                json:"credited_units"`
	TotalSlots   *int    `gorm:"type:int"                                           json:"total_slots"`
	Enrolled     *int    `gorm:"type:int"                                           json:"enrolled"`
	Assessed     *int    `gorm:"type:int"                                           json:"assessed"`
	IsClosed     bool    `gorm:"not null;default:false"                             json:"is_closed"`
	Modality     string  `gorm:"type:varchar(10);not null;default:'unknown'"        json:"modality"` // f2f | online | hybrid | unknown
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
