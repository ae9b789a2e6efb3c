package web

import (
	"github.com/ecodeclub/jobgenie/internal/resource/internal/domain"
)

// SaveResp POST 成功时带回新 id
type SaveResp struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type MsgResp struct {
	Message string `json:"message"`
}

// ErrResp 500 时把底层驱动报错原样带给管理端
type ErrResp struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// newRecordVO 记录在线协议上是一个平铺对象：id + 各字段
func newRecordVO(rec domain.Record) map[string]any {
	vo := make(map[string]any, len(rec.Fields)+1)
	for k, v := range rec.Fields {
		vo[k] = v
	}
	vo["id"] = rec.ID
	return vo
}

// toDomain 只收 Schema 认识的字段，id 和未知键一律丢弃
func toDomain(sch domain.Schema, body map[string]any) domain.Record {
	fields := make(map[string]any, len(body))
	for _, f := range sch.Fields {
		v, ok := body[f.Name]
		if !ok || v == nil {
			continue
		}
		fields[f.Name] = v
	}
	return domain.Record{Kind: sch.Kind, Fields: fields}
}
