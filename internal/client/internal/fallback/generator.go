package fallback

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ecodeclub/jobgenie/internal/client/internal/domain"
	"github.com/ecodeclub/jobgenie/internal/resource"
)

// 样例数据的词表。形态要和真实数据一致，
// 内容随机即可
var (
	categories = []string{
		"banking", "railway", "ssc", "upsc",
		"defence", "teaching", "police", "engineering",
	}
	organizations = []string{
		"Staff Selection Commission",
		"Union Public Service Commission",
		"Institute of Banking Personnel Selection",
		"Railway Recruitment Board",
		"State Bank of India",
		"Defence Research and Development Organisation",
	}
	roles = []string{
		"Clerk", "Probationary Officer", "Junior Engineer",
		"Assistant", "Group D", "Constable", "Stenographer",
	}
	statuses = []string{"active", "active", "active", "upcoming", "expired"}
)

// counts 每个种类固定产多少条
var counts = map[resource.Kind]int{
	resource.KindJob:           245,
	resource.KindResult:        40,
	resource.KindAdmitCard:     25,
	resource.KindAnswerKey:     20,
	resource.KindSyllabus:      15,
	resource.KindNote:          8,
	resource.KindEbook:         8,
	resource.KindVideo:         8,
	resource.KindMockTest:      8,
	resource.KindImportantLink: 12,
	resource.KindAdmission:     10,
}

// Generator 后端不可用时给管理界面产样例数据，
// 输出必须满足对应种类的 Schema，下游渲染分不出真假
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Records(kind resource.Kind) []domain.Record {
	sch, ok := resource.SchemaOf(kind)
	if !ok {
		return nil
	}
	n := counts[kind]
	if n == 0 {
		n = 8
	}
	now := time.Now()
	recs := make([]domain.Record, 0, n)
	for i := 0; i < n; i++ {
		fields := make(map[string]any, len(sch.Fields)+1)
		for _, f := range sch.Fields {
			fields[f.Name] = g.value(sch, f, i)
		}
		fields[sch.AuditColumn] = now.Format(time.DateTime)
		recs = append(recs, domain.Record{
			// 离线模式合成的字符串 id，和服务端的整数 id 并存
			ID:     fmt.Sprintf("%s-%d-%d", kind, now.UnixMilli(), i),
			Kind:   kind,
			Fields: fields,
		})
	}
	return recs
}

func (g *Generator) value(sch resource.Schema, f resource.Field, i int) any {
	switch f.Kind {
	case resource.FieldBool:
		return i%5 == 0
	case resource.FieldDate:
		// 最近 60 天到未来 90 天之间
		days := rand.IntN(151) - 60
		return time.Now().AddDate(0, 0, days).Format(time.DateOnly)
	case resource.FieldURL:
		return fmt.Sprintf("https://example.gov.in/%s/%d", sch.Collection, i+1)
	case resource.FieldLongText:
		return fmt.Sprintf("Sample description for %s #%d.", sch.Kind, i+1)
	case resource.FieldInt:
		return int64(rand.IntN(1000))
	default:
		switch f.Name {
		case "title":
			return fmt.Sprintf("%s %s Recruitment %d",
				organizations[i%len(organizations)],
				roles[i%len(roles)],
				time.Now().Year())
		case "organization":
			return organizations[i%len(organizations)]
		case "category":
			return categories[rand.IntN(len(categories))]
		case "status":
			return statuses[i%len(statuses)]
		default:
			return fmt.Sprintf("sample %s %d", f.Name, i+1)
		}
	}
}
