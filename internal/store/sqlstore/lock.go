package sqlstore

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// forUpdate scopes the next read on table to a row lock held until the
// surrounding transaction ends. SQL Server has no FOR UPDATE and takes
// the lock as a table hint instead.
func forUpdate(tx *gorm.DB, table string) *gorm.DB {
	if tx.Dialector.Name() == "sqlserver" && table != "" {
		return tx.Table(table + " WITH (UPDLOCK, ROWLOCK)")
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func tableOf[T any]() string {
	var row T
	if t, ok := any(row).(schema.Tabler); ok {
		return t.TableName()
	}
	return ""
}
