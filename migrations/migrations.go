// Package migrations содержит SQL схему базы данных
package migrations

import "embed"

// FS содержит файлы миграций (*.up.sql и *.down.sql)
//
//go:embed *.sql
var FS embed.FS

// InitSchema имя файла начальной миграции
const InitSchema = "000001_init_schema.up.sql"
