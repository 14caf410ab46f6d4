package store

import (
	"fmt"
	"reflect"
	"strings"
)

// table is implemented by the row structs persisted through the tag helpers below
type table interface {
	tableName() string
}

// profileRow is one team's latest imported profile
type profileRow struct {
	NameKey     string `column:"name_key" dbtype:"TEXT NOT NULL" primary:"true"`
	Name        string `column:"name" dbtype:"TEXT NOT NULL"`
	ProfileJSON string `column:"profile_json" dbtype:"TEXT NOT NULL"`
	Source      string `column:"source" dbtype:"TEXT"`
	ImportID    string `column:"import_id" dbtype:"TEXT" index:"true"`
	UpdatedAt   string `column:"updated_at" dbtype:"TEXT NOT NULL"`
}

func (profileRow) tableName() string { return "team_profiles" }

// importRow records one SaveProfiles call
type importRow struct {
	ID        string `column:"id" dbtype:"TEXT NOT NULL" primary:"true"`
	Source    string `column:"source" dbtype:"TEXT NOT NULL"`
	TeamCount int    `column:"team_count" dbtype:"INTEGER NOT NULL"`
	CreatedAt string `column:"created_at" dbtype:"TEXT NOT NULL" index:"true"`
}

func (importRow) tableName() string { return "imports" }

type column struct {
	name    string
	dbType  string
	primary bool
	index   bool
	field   int
}

// columnsOf reads the persisted columns from struct tags, fields without dbtype are skipped
func columnsOf(obj any) []column {
	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var cols []column
	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}
		name := field.Tag.Get("column")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		cols = append(cols, column{
			name:    name,
			dbType:  field.Tag.Get("dbtype"),
			primary: field.Tag.Get("primary") == "true",
			index:   field.Tag.Get("index") == "true",
			field:   i,
		})
	}
	return cols
}

// createTableSQL generates CREATE TABLE from struct tags
func createTableSQL(obj table) string {
	var defs, primary []string
	for _, c := range columnsOf(obj) {
		defs = append(defs, fmt.Sprintf("%s %s", c.name, c.dbType))
		if c.primary {
			primary = append(primary, c.name)
		}
	}
	if len(primary) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primary, ", ")))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", obj.tableName(), strings.Join(defs, ", "))
}

// indexSQL generates one CREATE INDEX per index:"true" column
func indexSQL(obj table) []string {
	var out []string
	for _, c := range columnsOf(obj) {
		if !c.index {
			continue
		}
		out = append(out, fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s)",
			obj.tableName(), c.name, obj.tableName(), c.name))
	}
	return out
}

// upsertSQL inserts the row or overwrites every non key column of an existing one
func upsertSQL(obj table) (string, []any) {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}

	var names, placeholders, primary, updates []string
	var args []any
	for _, c := range columnsOf(obj) {
		names = append(names, c.name)
		placeholders = append(placeholders, "?")
		args = append(args, value.Field(c.field).Interface())
		if c.primary {
			primary = append(primary, c.name)
		} else {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", c.name, c.name))
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		obj.tableName(), strings.Join(names, ", "), strings.Join(placeholders, ", "))
	if len(primary) > 0 && len(updates) > 0 {
		query += fmt.Sprintf(" ON CONFLICT(%s) DO UPDATE SET %s", strings.Join(primary, ", "), strings.Join(updates, ", "))
	}
	return query, args
}
