package resource

import (
	"github.com/ecodeclub/jobgenie/internal/resource/internal/domain"
)

type Kind = domain.Kind

type Schema = domain.Schema

type Field = domain.Field

type FieldKind = domain.FieldKind

type Record = domain.Record

type Filter = domain.Filter

const (
	KindJob           = domain.KindJob
	KindResult        = domain.KindResult
	KindAdmitCard     = domain.KindAdmitCard
	KindAnswerKey     = domain.KindAnswerKey
	KindSyllabus      = domain.KindSyllabus
	KindNote          = domain.KindNote
	KindEbook         = domain.KindEbook
	KindVideo         = domain.KindVideo
	KindMockTest      = domain.KindMockTest
	KindImportantLink = domain.KindImportantLink
	KindAdmission     = domain.KindAdmission
)

const (
	FieldString   = domain.FieldString
	FieldLongText = domain.FieldLongText
	FieldDate     = domain.FieldDate
	FieldBool     = domain.FieldBool
	FieldInt      = domain.FieldInt
	FieldURL      = domain.FieldURL
)

// Schemas 全部资源种类的定义
func Schemas() []Schema {
	return domain.Schemas()
}

// SchemaOf 按种类查找定义
func SchemaOf(kind Kind) (Schema, bool) {
	return domain.SchemaOf(kind)
}
