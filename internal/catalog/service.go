// Package catalog manages categories, menus, variant groups and variant
// options, and enforces their structural rules.
//
// Every mutation is persisted immediately. Menus, groups and options are
// soft-deleted and every read excludes tombstoned rows.
package catalog

import (
	"errors"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

// DefaultPageSize is the listing page size when none is configured.
const DefaultPageSize = 10

const (
	maxNameLen = 255
	maxSKULen  = 100
)

// Service is the catalog model over a gorm database.
type Service struct {
	db       *gorm.DB
	log      *slog.Logger
	pageSize int
}

// New creates a catalog service. A nil logger discards; pageSize <= 0
// means DefaultPageSize.
func New(db *gorm.DB, logger *slog.Logger, pageSize int) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{db: db, log: logger, pageSize: pageSize}
}

// DB returns the underlying handle.
func (s *Service) DB() *gorm.DB {
	return s.db
}

// Page selects one page of a listing. Number is 1-based; zero values
// mean the first page at the service's page size.
type Page struct {
	Number int
	Size   int
}

// Paged is one page of results.
type Paged[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PerPage  int
	LastPage int
}

func (s *Service) page(p Page) (number, size int) {
	number, size = p.Number, p.Size
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = s.pageSize
	}
	return number, size
}

// paginate counts q, then loads one page of it. Scopes (preloads) are
// applied to the page query only.
func paginate[T any](q *gorm.DB, s *Service, p Page, scopes ...func(*gorm.DB) *gorm.DB) (Paged[T], error) {
	number, size := s.page(p)
	out := Paged[T]{Page: number, PerPage: size, Items: []T{}}

	if err := q.Session(&gorm.Session{}).Count(&out.Total).Error; err != nil {
		return out, err
	}
	out.LastPage = int((out.Total + int64(size) - 1) / int64(size))
	if out.LastPage < 1 {
		out.LastPage = 1
	}
	if err := q.Scopes(scopes...).Offset((number - 1) * size).Limit(size).Find(&out.Items).Error; err != nil {
		return out, err
	}
	return out, nil
}

func cleanName(entity, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return "", &Error{Kind: KindInvalidName, Entity: entity, Field: "name", Value: name}
	}
	return name, nil
}

// uniqueIDs returns ids without duplicates, ascending. Zero is kept so
// callers report it as unknown.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func first[T any](tx *gorm.DB, entity string, id uint) (*T, error) {
	var row T
	if err := tx.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(entity, id)
		}
		return nil, err
	}
	return &row, nil
}

func preload(name string, args ...any) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(name, args...)
	}
}
