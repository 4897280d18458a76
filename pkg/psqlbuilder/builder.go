package psqlbuilder

import "github.com/Masterminds/squirrel"

// Обёртки над squirrel с PostgreSQL-плейсхолдерами ($1, $2, ...)

// Select создает SELECT билдер с долларовыми плейсхолдерами
func Select(columns ...string) squirrel.SelectBuilder {
	return squirrel.Select(columns...).PlaceholderFormat(squirrel.Dollar)
}

// Insert создает INSERT билдер с долларовыми плейсхолдерами
func Insert(table string) squirrel.InsertBuilder {
	return squirrel.Insert(table).PlaceholderFormat(squirrel.Dollar)
}

// Update создает UPDATE билдер с долларовыми плейсхолдерами
func Update(table string) squirrel.UpdateBuilder {
	return squirrel.Update(table).PlaceholderFormat(squirrel.Dollar)
}

// Delete создает DELETE билдер с долларовыми плейсхолдерами
func Delete(table string) squirrel.DeleteBuilder {
	return squirrel.Delete(table).PlaceholderFormat(squirrel.Dollar)
}
