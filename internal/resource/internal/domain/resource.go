package domain

// Kind 资源种类，对应一张表和一个 REST collection
type Kind string

const (
	KindJob           Kind = "job"
	KindResult        Kind = "result"
	KindAdmitCard     Kind = "admit-card"
	KindAnswerKey     Kind = "answer-key"
	KindSyllabus      Kind = "syllabus"
	KindNote          Kind = "note"
	KindEbook         Kind = "ebook"
	KindVideo         Kind = "video"
	KindMockTest      Kind = "mock-test"
	KindImportantLink Kind = "important-link"
	KindAdmission     Kind = "admission"
)

// FieldKind 字段类型
type FieldKind uint8

const (
	FieldString FieldKind = iota
	FieldLongText
	FieldDate
	FieldBool
	FieldInt
	FieldURL
)

// Field 一个字段的定义。Required 是管理端提交前校验的必填标记，
// 服务端只校验 Schema.ServerRequired，两边故意不一致
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// JobStatus 只有 job 有 status 列
type JobStatus string

const (
	StatusActive   JobStatus = "active"
	StatusUpcoming JobStatus = "upcoming"
	StatusExpired  JobStatus = "expired"
)

// Record 一条资源记录。ID 为 0 表示尚未落库，
// Fields 的 key 是 Schema 里的字段名
type Record struct {
	ID     int64
	Kind   Kind
	Fields map[string]any
}

// Str 取字符串字段，缺失或类型不符返回空串
func (r Record) Str(name string) string {
	v, _ := r.Fields[name].(string)
	return v
}

// Bool 取布尔字段
func (r Record) Bool(name string) bool {
	v, _ := r.Fields[name].(bool)
	return v
}

// Filter 列表查询条件，全部是等值谓词，AND 组合。
// Featured 用指针区分"没传"和"传了 false"
type Filter struct {
	Category string
	Featured *bool
	Status   string
}

func (f Filter) IsZero() bool {
	return f.Category == "" && f.Featured == nil && f.Status == ""
}
