package usecase

import (
	"context"
	"strings"

	"eventplanner/internal/domain/entity"
	"eventplanner/internal/domain/repository"
	"eventplanner/internal/service"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrForbidden = apperror.Forbidden("You don't have permission to access this resource")
)

// Actor is the authenticated caller of a usecase.
type Actor struct {
	ID   int64
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// CanActFor reports whether the actor may act on data owned by userID.
func (a Actor) CanActFor(userID int64) bool {
	return a.IsAdmin() || a.ID == userID
}

// contains builds an ILIKE pattern matching s anywhere, with LIKE
// wildcards in s escaped.
func contains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// searchTerms splits a free-text search into one ILIKE pattern per word.
func searchTerms(search string) []any {
	words := strings.Fields(search)
	terms := make([]any, 0, len(words))
	for _, w := range words {
		terms = append(terms, contains(w))
	}
	return terms
}

// mapResult converts the items of a page while keeping its metadata.
func mapResult[T, R any](res *query.Result[T], fn func(*T) R) *query.Result[R] {
	items := make([]R, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, fn(&res.Items[i]))
	}
	return &query.Result[R]{
		Items:        items,
		TotalItems:   res.TotalItems,
		TotalPages:   res.TotalPages,
		CurrentPage:  res.CurrentPage,
		ItemsPerPage: res.ItemsPerPage,
	}
}

func stringList(list *[]string) any {
	if list == nil {
		return nil
	}
	return entity.StringList(*list)
}

// deleteAll clears a table and records who did it, in one transaction.
func deleteAll[T any](
	ctx context.Context,
	db *gorm.DB,
	log *logrus.Logger,
	repo repository.CrudRepository[T],
	auditService service.AuditService,
	actor Actor,
	action string,
	resource string,
) (int64, error) {
	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	count, err := repo.DeleteAll(tx)
	if err != nil {
		log.Warnf("Failed to delete all %s: %+v", resource, err)
		return 0, apperror.Database(err)
	}

	if err := auditService.LogDelete(ctx, tx, actor.ID, action, resource, nil, count); err != nil {
		return 0, apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Warnf("Failed commit transaction: %+v", err)
		return 0, apperror.Database(err)
	}

	return count, nil
}
