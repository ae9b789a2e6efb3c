package domain

import (
	"github.com/ecodeclub/jobgenie/internal/resource"
)

// Record 管理端视角的一条记录。id 在这里是不透明字符串：
// 真实服务端给的是自增整数，离线样例数据合成的是
// "<kind>-<时间戳>" 这样的串，两种形态都原样携带
type Record struct {
	ID     string
	Kind   resource.Kind
	Fields map[string]any
}

func (r Record) Str(name string) string {
	v, _ := r.Fields[name].(string)
	return v
}

// Saved 已经落过库的记录才有 id
func (r Record) Saved() bool {
	return r.ID != ""
}

// MissingRequired 管理端提交前的完整必填校验，
// 比服务端那套严格
func MissingRequired(sch resource.Schema, rec Record) []string {
	var missing []string
	for _, f := range sch.Fields {
		if !f.Required {
			continue
		}
		if s, ok := rec.Fields[f.Name].(string); !ok || s == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// LinkField 这个种类的主链接字段名。学习资料的四个子类
// 各自不同（download_link / video_link / test_link），
// 同一个表单靠它切换
func LinkField(sch resource.Schema) string {
	for _, f := range sch.Fields {
		if f.Kind == resource.FieldURL && f.Required {
			return f.Name
		}
	}
	return ""
}

// HasThumbnail 是否展示缩略图输入
func HasThumbnail(sch resource.Schema) bool {
	_, ok := sch.Field("thumbnail")
	return ok
}
