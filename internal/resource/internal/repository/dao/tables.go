package dao

import (
	"strings"

	"github.com/ecodeclub/jobgenie/internal/resource/internal/domain"
	"gorm.io/gorm"
)

// InitTables 按注册表建全部资源表
func InitTables(db *gorm.DB) error {
	for _, sch := range domain.Schemas() {
		if err := db.Exec(createTableSQL(sch)).Error; err != nil {
			return err
		}
	}
	return nil
}

func createTableSQL(sch domain.Schema) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS `")
	b.WriteString(sch.Table)
	b.WriteString("` (\n")
	b.WriteString("  `id` BIGINT AUTO_INCREMENT PRIMARY KEY,\n")
	for _, f := range sch.Fields {
		b.WriteString("  `")
		b.WriteString(f.Name)
		b.WriteString("` ")
		b.WriteString(columnType(f))
		b.WriteString(",\n")
	}
	// 审计列由数据库在插入时打时间戳
	b.WriteString("  `")
	b.WriteString(sch.AuditColumn)
	b.WriteString("` DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,\n")
	b.WriteString("  INDEX `idx_category` (`category`),\n")
	b.WriteString("  INDEX `idx_featured` (`featured`)\n")
	b.WriteString(") CHARACTER SET utf8mb4")
	return b.String()
}

func columnType(f domain.Field) string {
	switch f.Kind {
	case domain.FieldLongText:
		return "TEXT"
	case domain.FieldDate:
		return "DATE"
	case domain.FieldBool:
		// featured 缺省 false 是服务端保证的一部分
		return "TINYINT(1) NOT NULL DEFAULT 0"
	case domain.FieldInt:
		return "BIGINT"
	case domain.FieldURL:
		return "VARCHAR(1024)"
	default:
		if f.Name == "status" {
			return "VARCHAR(16) NOT NULL DEFAULT 'active'"
		}
		return "VARCHAR(512)"
	}
}
