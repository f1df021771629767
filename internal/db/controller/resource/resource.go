// Package resource implements the list, create, replace and delete
// operations shared by every admin resource on top of gorm.
package resource

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultLimit is the page size used when the request has none.
	DefaultLimit = 10

	// DefaultSort is the column lists are ordered by when the request names none or an unknown one.
	DefaultSort = "created_at"

	// likeEscape is the escape character for keyword patterns.
	likeEscape = "!"
)

var (
	// ErrNotFound is returned by Get when no record has the id.
	ErrNotFound = errors.New("record not found")

	likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
)

// Query is a list request. Field tags match the query string of the admin clients.
type Query struct {
	Page    int    `query:"currentPage"`
	Limit   int    `query:"limit"`
	Sort    string `query:"sort"`
	Order   string `query:"order"`
	Keyword string `query:"keyword"`
}

// Normalize applies the defaults for missing or invalid paging values.
func (q *Query) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}

	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}

	q.Keyword = strings.TrimSpace(q.Keyword)
}

// Offset is the number of records skipped before the page.
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Descending reports the sort direction. Only "ASC" sorts ascending.
func (q Query) Descending() bool {
	return q.Order != "ASC"
}

// Table describes how a resource is listed.
type Table struct {
	// Search lists the columns the keyword is matched against, OR-combined.
	Search []string
	// Preload lists the associations loaded for display.
	Preload []string
	// Omit lists columns that are never read back, e.g. password hashes.
	Omit []string
	// Scope optionally narrows every list query.
	Scope func(db *gorm.DB) *gorm.DB
}

// Page is one page of a list.
type Page[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
}

// List returns the page of T described by q.
func List[T any](db *gorm.DB, t Table, q Query) (*Page[T], error) {
	q.Normalize()

	filtered := func() *gorm.DB {
		tx := db.Model(new(T))
		if t.Scope != nil {
			tx = t.Scope(tx)
		}

		return Keyword(tx, t.Search, q.Keyword)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	sortColumn, found := resolveColumn(db, new(T), q.Sort)

	// without a known sort field the newest records come first, whatever the order
	desc := q.Descending() || !found

	tx := filtered().
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: sortColumn}, Desc: desc},
			{Column: clause.Column{Name: "id"}, Desc: desc},
		}}).
		Offset(q.Offset()).
		Limit(q.Limit)

	if len(t.Omit) > 0 {
		tx = tx.Omit(t.Omit...)
	}

	for _, p := range t.Preload {
		tx = tx.Preload(p)
	}

	items := make([]T, 0, q.Limit)
	if err := tx.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return &Page[T]{
		Items:      items,
		Page:       q.Page,
		PerPage:    q.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}, nil
}

// Keyword adds a case-insensitive substring match of kw over columns.
func Keyword(tx *gorm.DB, columns []string, kw string) *gorm.DB {
	if kw == "" || len(columns) == 0 {
		return tx
	}

	pattern := "%" + likeReplacer.Replace(strings.ToLower(kw)) + "%"

	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))

	for _, col := range columns {
		conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '%s'", col, likeEscape))
		args = append(args, pattern)
	}

	return tx.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// resolveColumn maps a json field name, go field name or column name of model to its column.
// Unknown or empty names resolve to DefaultSort and report false.
func resolveColumn(db *gorm.DB, model any, name string) (string, bool) {
	if name == "" {
		return DefaultSort, false
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return DefaultSort, false
	}

	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" {
			continue
		}

		jsonName, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if jsonName == name || f.DBName == name || f.Name == name {
			return f.DBName, true
		}
	}

	return DefaultSort, false
}

// Get loads the record with id.
func Get[T any](db *gorm.DB, id uint64, preload ...string) (*T, error) {
	rec := new(T)

	tx := db
	for _, p := range preload {
		tx = tx.Preload(p)
	}

	if err := tx.First(rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to load record %d: %w", id, err)
	}

	return rec, nil
}

// Create inserts rec. Associations are not written.
func Create[T any](db *gorm.DB, rec *T) error {
	if err := db.Omit(clause.Associations).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	return nil
}

// Replace overwrites the record with id by the values of rec, zero values included.
// Columns named in keep, id and created_at are left alone.
// The number of matched rows is returned; zero is not an error.
func Replace[T any](db *gorm.DB, id uint64, rec *T, keep ...string) (int64, error) {
	omit := append([]string{"id", "created_at", clause.Associations}, keep...)

	res := db.Model(new(T)).Where("id = ?", id).Select("*").Omit(omit...).Updates(rec)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update record %d: %w", id, res.Error)
	}

	return res.RowsAffected, nil
}

// Delete removes the record with id and returns the number of removed rows.
func Delete[T any](db *gorm.DB, id uint64) (int64, error) {
	res := db.Delete(new(T), id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete record %d: %w", id, res.Error)
	}

	return res.RowsAffected, nil
}

// Active returns every record whose column is true, newest first.
func Active[T any](db *gorm.DB, column string, omit ...string) ([]T, error) {
	tx := db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: true}).Order("created_at DESC")
	if len(omit) > 0 {
		tx = tx.Omit(omit...)
	}

	items := []T{}
	if err := tx.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list active records: %w", err)
	}

	return items, nil
}
