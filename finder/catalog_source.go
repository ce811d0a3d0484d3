package finder

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/TonyMerlin/M2-ProductFinder/models"
)

// SQLCatalog is the GORM-backed CatalogSource. Set membership, status,
// visibility, stock, and the price window are pushed down into SQL; the
// Matcher evaluates attribute-value constraints on the returned rows.
type SQLCatalog struct {
	db           *gorm.DB
	stock        StockResolver
	priceIndexed bool
}

func NewSQLCatalog(db *gorm.DB) *SQLCatalog {
	priceIndexed := db != nil && db.Migrator().HasTable("price_index")
	if !priceIndexed {
		log.Println("[finder] price_index not found, price windows fall back to base price")
	}
	return &SQLCatalog{
		db:           db,
		stock:        ProbeStockResolver(db),
		priceIndexed: priceIndexed,
	}
}

func (s *SQLCatalog) Candidates(ctx context.Context, q CandidateQuery) ([]models.ProductRecord, error) {
	query, args := s.buildCandidateQuery(q)

	rows := make([]models.ProductRecord, 0)
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// buildCandidateQuery assembles the candidate SELECT. A record qualifies by
// attribute set when either its own set matches and it sits in a browsable
// visibility tier, or its configurable parent's set matches. Children of a
// profiled parent are included regardless of their own visibility, since
// they often live in a different set and are not independently browsable.
func (s *SQLCatalog) buildCandidateQuery(q CandidateQuery) (string, []any) {
	joins := []string{
		"LEFT JOIN catalog_products parent ON parent.entity_id = p.parent_id",
	}
	args := []any{}

	stockJoin, stockArgs := s.stock.Join(q.Store.WebsiteID)
	joins = append(joins, stockJoin)
	args = append(args, stockArgs...)

	if s.priceIndexed && (q.PriceMin != nil || q.PriceMax != nil) {
		joins = append(joins, "LEFT JOIN price_index pip ON pip.entity_id = p.entity_id AND pip.website_id = ? AND pip.customer_group_id = 0")
		args = append(args, q.Store.WebsiteID)
	}

	conditions := []string{
		"p.status = ?",
		"p.type_id = ?",
	}
	args = append(args, models.StatusEnabled, models.TypeSimple)

	visPlaceholders := make([]string, len(models.BrowsableVisibilities))
	visArgs := make([]any, len(models.BrowsableVisibilities))
	for i, v := range models.BrowsableVisibilities {
		visPlaceholders[i] = "?"
		visArgs[i] = v
	}
	conditions = append(conditions, fmt.Sprintf(
		"((p.attribute_set_id = ? AND p.visibility IN (%s)) OR parent.attribute_set_id = ?)",
		strings.Join(visPlaceholders, ", ")))
	args = append(args, q.SetID)
	args = append(args, visArgs...)
	args = append(args, q.SetID)

	priceExpr := "p.price"
	if s.priceIndexed {
		// final_price already incorporates promotions; COALESCE covers
		// products the indexer has not reached yet.
		priceExpr = "COALESCE(pip.final_price, p.price)"
	}
	if q.PriceMin != nil {
		conditions = append(conditions, priceExpr+" >= ?")
		args = append(args, *q.PriceMin)
	}
	if q.PriceMax != nil {
		conditions = append(conditions, priceExpr+" <= ?")
		args = append(args, *q.PriceMax)
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT p.*
		FROM catalog_products p
		%s
		WHERE %s
		ORDER BY p.entity_id
	`, strings.Join(joins, "\n\t\t"), strings.Join(conditions, " AND "))

	return query, args
}

func (s *SQLCatalog) ParentAttributes(ctx context.Context, parentIDs []int64) (map[int64]models.AttributeValues, error) {
	if len(parentIDs) == 0 {
		return map[int64]models.AttributeValues{}, nil
	}

	var rows []struct {
		EntityID   int64                  `gorm:"column:entity_id"`
		Attributes models.AttributeValues `gorm:"column:attributes"`
	}
	if err := s.db.WithContext(ctx).
		Raw("SELECT entity_id, attributes FROM catalog_products WHERE entity_id IN ?", parentIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[int64]models.AttributeValues, len(rows))
	for _, row := range rows {
		out[row.EntityID] = row.Attributes
	}
	return out, nil
}
