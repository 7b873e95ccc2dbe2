package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"flashcard-show/biz/infrastructure/util/log"

	_ "github.com/go-sql-driver/mysql"
)

// Entry 对应数据库中的 CatalogSets 表, 由教研维护的公共卡组
type Entry struct {
	ID          int64   `db:"id"`
	Subject     string  `db:"subject"`
	Grade       *int64  `db:"grade"`
	Title       string  `db:"title"`
	Description *string `db:"description"`
	CardCount   int64   `db:"card_count"`
}

type Filter struct {
	Subject string
	Grades  []int64
	Page    int64
	Limit   int64
}

type IMySQLMapper interface {
	List(ctx context.Context, f *Filter) ([]*Entry, int64, error)
}

type MySQLMapper struct {
	db *sql.DB
}

func NewMySQLMapper(dsn string) (*MySQLMapper, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	log.Info("MySQL connection established successfully")
	return &MySQLMapper{db: db}, nil
}

func (m *MySQLMapper) Close() error {
	return m.db.Close()
}

// buildWhere 构造筛选条件
func buildWhere(f *Filter) (string, []any) {
	var conditions []string
	var args []any

	if f.Subject != "" {
		conditions = append(conditions, "subject = ?")
		args = append(args, f.Subject)
	}

	if len(f.Grades) > 0 {
		placeholders := make([]string, len(f.Grades))
		for i, grade := range f.Grades {
			placeholders[i] = "?"
			args = append(args, grade)
		}
		conditions = append(conditions, fmt.Sprintf("grade IN (%s)", strings.Join(placeholders, ",")))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func pageArgs(f *Filter) (limit, offset int64) {
	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return limit, (page - 1) * limit
}

// List 分页获取公共卡组
func (m *MySQLMapper) List(ctx context.Context, f *Filter) ([]*Entry, int64, error) {
	whereClause, args := buildWhere(f)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM CatalogSets %s", whereClause)
	var total int64
	err := m.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		log.Error("Failed to count catalog sets: %v", err)
		return nil, 0, fmt.Errorf("failed to count catalog sets: %w", err)
	}

	limit, offset := pageArgs(f)
	dataQuery := fmt.Sprintf(`
		SELECT id, subject, grade, title, description, card_count
		FROM CatalogSets %s
		ORDER BY grade ASC, id ASC
		LIMIT ? OFFSET ?
	`, whereClause)
	args = append(args, limit, offset)

	rows, err := m.db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		log.Error("Failed to query catalog sets: %v", err)
		return nil, 0, fmt.Errorf("failed to query catalog sets: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Subject, &e.Grade, &e.Title, &e.Description, &e.CardCount); err != nil {
			log.Error("Failed to scan catalog row: %v", err)
			continue
		}
		entries = append(entries, &e)
	}

	if err = rows.Err(); err != nil {
		log.Error("Error iterating over rows: %v", err)
		return nil, 0, fmt.Errorf("error iterating over rows: %w", err)
	}

	return entries, total, nil
}
