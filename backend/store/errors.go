// Package store holds the GORM-backed repositories for users, curriculum,
// quizzes and progress. Every repository is built from one *gorm.DB handle
// owned by the caller.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
)

// Error carries a message fit for API clients and a kind for errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func notFound(entity string) error {
	return &Error{Kind: ErrNotFound, Message: entity + " not found"}
}

func conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func invalid(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalid, Message: fmt.Sprintf(format, args...)}
}

// lookup maps gorm.ErrRecordNotFound to a store not-found error.
func lookup(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return fmt.Errorf("query %s: %w", entity, err)
}

func exists(tx *gorm.DB, model interface{}, id, entity string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("query %s: %w", entity, err)
	}
	if count == 0 {
		return notFound(entity)
	}
	return nil
}
