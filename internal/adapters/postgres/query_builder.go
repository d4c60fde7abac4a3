package postgres

import (
	"fmt"
	"strings"

	"github.com/keertiraj-bot/realstate/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder(baseConditions ...string) *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: append([]string(nil), baseConditions...),
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// AddSubstringMatch adds one case-insensitive substring predicate that holds when any
// of the fields contains value. LIKE wildcards in value match literally.
func (qb *queryBuilder) AddSubstringMatch(fields []string, value string) {
	value = strings.TrimSpace(value)
	if value == "" || len(fields) == 0 {
		return
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", f, qb.argId))
	}
	condition := strings.Join(parts, " OR ")
	if len(parts) > 1 {
		condition = "(" + condition + ")"
	}
	qb.conditions = append(qb.conditions, condition)
	qb.args = append(qb.args, "%"+escapeLike(value)+"%")
	qb.argId++
}

func (qb *queryBuilder) AddInt64Filter(fieldName string, min *int64, max *int64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddIntFilter(fieldName string, min *int, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// nextArg registers arg and returns its placeholder.
func (qb *queryBuilder) nextArg(arg interface{}) string {
	placeholder := fmt.Sprintf("$%d", qb.argId)
	qb.args = append(qb.args, arg)
	qb.argId++
	return placeholder
}

func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyCatalogFilters turns the public catalog query into a WHERE clause, its args and
// an ORDER BY clause. Sold and rented properties are always excluded.
func applyCatalogFilters(filters domain.PropertyFilters) (string, string, []interface{}) {
	qb := newQueryBuilder("status = 'available'")

	qb.AddSubstringMatch([]string{"location", "city"}, filters.Location)

	if filters.Type != "" {
		qb.addCondition("%s = $%d", "property_type", string(filters.Type))
	}

	qb.AddInt64Filter("price", filters.MinPrice, filters.MaxPrice)
	qb.AddIntFilter("bedrooms", filters.MinBedrooms, nil)

	whereClause, args := qb.build()
	return whereClause, orderByClause(filters.SortBy), args
}

// orderByClause always ends with created_at and id so equal keys keep a stable order.
func orderByClause(order domain.SortOrder) string {
	switch domain.ParseSortOrder(string(order)) {
	case domain.SortPriceLow:
		return "ORDER BY price ASC, created_at DESC, id ASC"
	case domain.SortPriceHigh:
		return "ORDER BY price DESC, created_at DESC, id ASC"
	default:
		return "ORDER BY created_at DESC, id ASC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
