package domain

// Schema 描述一个资源种类：表名、REST collection、排序列、
// 建表时的审计列以及字段清单。九套增删改查共用这一份定义驱动
type Schema struct {
	Kind       Kind
	Table      string
	Collection string
	// PrimaryDate 列表按这一列倒序返回
	PrimaryDate string
	// AuditColumn 建表时 DEFAULT CURRENT_TIMESTAMP 的审计列
	AuditColumn string
	// HasStatus 只有 job 支持 status 过滤
	HasStatus bool
	Fields    []Field
	// ServerRequired 服务端校验的必填字段，故意比客户端松
	ServerRequired []string
}

// FieldNames 按定义顺序返回字段名
func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Field 按名字找字段定义
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// MissingRequired 管理端提交前的完整必填校验，
// 返回缺失的字段名
func (s Schema) MissingRequired(rec Record) []string {
	var missing []string
	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		if isEmpty(rec.Fields[f.Name]) {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// MissingServerRequired 服务端的宽松校验
func (s Schema) MissingServerRequired(rec Record) []string {
	var missing []string
	for _, name := range s.ServerRequired {
		if isEmpty(rec.Fields[name]) {
			missing = append(missing, name)
		}
	}
	return missing
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func common(linkName string) []Field {
	return []Field{
		{Name: "title", Kind: FieldString, Required: true},
		{Name: "organization", Kind: FieldString, Required: true},
		{Name: "category", Kind: FieldString, Required: true},
		{Name: linkName, Kind: FieldURL, Required: true},
		{Name: "featured", Kind: FieldBool},
	}
}

func material(linkName string, thumbnail bool) Schema {
	fields := []Field{
		{Name: "title", Kind: FieldString, Required: true},
		{Name: "category", Kind: FieldString, Required: true},
		{Name: "description", Kind: FieldLongText},
		{Name: linkName, Kind: FieldURL, Required: true},
		{Name: "featured", Kind: FieldBool},
	}
	if thumbnail {
		fields = append(fields, Field{Name: "thumbnail", Kind: FieldURL})
	}
	return Schema{
		PrimaryDate:    "added_date",
		AuditColumn:    "added_date",
		Fields:         fields,
		ServerRequired: []string{"title", linkName},
	}
}

// registry 十一个资源种类的全部定义。顺序即路由注册顺序
var registry = buildRegistry()

func buildRegistry() []Schema {
	job := Schema{
		Kind:        KindJob,
		Table:       "jobs",
		Collection:  "jobs",
		PrimaryDate: "last_date",
		AuditColumn: "posted_date",
		HasStatus:   true,
		Fields: []Field{
			{Name: "title", Kind: FieldString, Required: true},
			{Name: "organization", Kind: FieldString, Required: true},
			{Name: "category", Kind: FieldString, Required: true},
			{Name: "start_date", Kind: FieldDate},
			{Name: "last_date", Kind: FieldDate, Required: true},
			{Name: "description", Kind: FieldLongText},
			{Name: "apply_link", Kind: FieldURL, Required: true},
			{Name: "status", Kind: FieldString},
			{Name: "featured", Kind: FieldBool},
		},
		ServerRequired: []string{"title", "organization"},
	}

	result := Schema{
		Kind:        KindResult,
		Table:       "results",
		Collection:  "results",
		PrimaryDate: "result_date",
		AuditColumn: "posted_date",
		Fields: append(common("result_link"),
			Field{Name: "result_date", Kind: FieldDate, Required: true},
			Field{Name: "description", Kind: FieldLongText},
		),
		ServerRequired: []string{"title", "organization"},
	}

	admitCard := Schema{
		Kind:        KindAdmitCard,
		Table:       "admit_cards",
		Collection:  "admit-cards",
		PrimaryDate: "exam_date",
		AuditColumn: "posted_date",
		Fields: append(common("download_link"),
			Field{Name: "exam_date", Kind: FieldDate, Required: true},
		),
		ServerRequired: []string{"title", "organization"},
	}

	answerKey := Schema{
		Kind:        KindAnswerKey,
		Table:       "answer_keys",
		Collection:  "answer-keys",
		PrimaryDate: "release_date",
		AuditColumn: "posted_date",
		Fields: append(common("download_link"),
			Field{Name: "release_date", Kind: FieldDate, Required: true},
		),
		ServerRequired: []string{"title", "organization"},
	}

	syllabus := Schema{
		Kind:        KindSyllabus,
		Table:       "syllabus",
		Collection:  "syllabus",
		PrimaryDate: "exam_date",
		AuditColumn: "posted_date",
		Fields: append(common("download_link"),
			Field{Name: "exam_date", Kind: FieldDate},
		),
		ServerRequired: []string{"title", "organization"},
	}

	note := material("download_link", false)
	note.Kind = KindNote
	note.Table = "notes"
	note.Collection = "study-materials/notes"

	ebook := material("download_link", true)
	ebook.Kind = KindEbook
	ebook.Table = "ebooks"
	ebook.Collection = "study-materials/ebooks"

	video := material("video_link", true)
	video.Kind = KindVideo
	video.Table = "videos"
	video.Collection = "study-materials/videos"

	mockTest := material("test_link", false)
	mockTest.Kind = KindMockTest
	mockTest.Table = "mock_tests"
	mockTest.Collection = "study-materials/mock-tests"

	importantLink := Schema{
		Kind:        KindImportantLink,
		Table:       "important_links",
		Collection:  "important-links",
		PrimaryDate: "added_date",
		AuditColumn: "added_date",
		Fields: []Field{
			{Name: "title", Kind: FieldString, Required: true},
			{Name: "link", Kind: FieldURL, Required: true},
			{Name: "category", Kind: FieldString},
			{Name: "description", Kind: FieldLongText},
			{Name: "featured", Kind: FieldBool},
		},
		ServerRequired: []string{"title", "link"},
	}

	admission := Schema{
		Kind:        KindAdmission,
		Table:       "admissions",
		Collection:  "admissions",
		PrimaryDate: "last_date",
		AuditColumn: "posted_date",
		Fields: []Field{
			{Name: "title", Kind: FieldString, Required: true},
			{Name: "organization", Kind: FieldString, Required: true},
			{Name: "category", Kind: FieldString, Required: true},
			{Name: "start_date", Kind: FieldDate},
			{Name: "last_date", Kind: FieldDate, Required: true},
			{Name: "description", Kind: FieldLongText},
			{Name: "apply_link", Kind: FieldURL, Required: true},
			{Name: "featured", Kind: FieldBool},
		},
		ServerRequired: []string{"title", "organization"},
	}

	return []Schema{
		job, result, admitCard, answerKey, syllabus,
		note, ebook, video, mockTest,
		importantLink, admission,
	}
}

// Schemas 返回全部资源定义，调用方不得修改
func Schemas() []Schema {
	return registry
}

// SchemaOf 按种类查找
func SchemaOf(kind Kind) (Schema, bool) {
	for _, s := range registry {
		if s.Kind == kind {
			return s, true
		}
	}
	return Schema{}, false
}
