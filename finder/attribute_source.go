package finder

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/TonyMerlin/M2-ProductFinder/models"
)

// SQLAttributeSource implements the three option-resolution strategies
// against the attribute tables. The repository and source-model strategies
// run through GORM; the raw option-table strategy goes straight to pgx and
// tolerates incomplete attribute metadata (swatch-backed or partially
// migrated attributes often lack a proper frontend_input).
type SQLAttributeSource struct {
	db   *gorm.DB
	pool *pgxpool.Pool
}

func NewSQLAttributeSource(db *gorm.DB, pool *pgxpool.Pool) *SQLAttributeSource {
	return &SQLAttributeSource{db: db, pool: pool}
}

// RepositoryOptions returns store-scoped labels with default-store fallback,
// restricted to option-backed attributes.
func (s *SQLAttributeSource) RepositoryOptions(ctx context.Context, code string, store StoreContext) ([]models.OptionPair, error) {
	query := `
		SELECT value, label FROM (
			SELECT DISTINCT ON (o.option_id)
				o.option_id::text AS value,
				o.label           AS label,
				o.position        AS position
			FROM catalog_attribute_options o
			INNER JOIN catalog_attributes a ON a.attribute_id = o.attribute_id
			WHERE a.attribute_code = ?
			  AND a.frontend_input IN ('select', 'multiselect')
			  AND o.store_id IN (0, ?)
			ORDER BY o.option_id, o.store_id DESC
		) t
		ORDER BY t.position ASC, t.label ASC
	`

	rows := make([]models.OptionPair, 0)
	if err := s.db.WithContext(ctx).Raw(query, code, store.StoreID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SourceModelOptions returns the default-store labels only, mirroring an
// attribute's source model output before store overrides existed.
func (s *SQLAttributeSource) SourceModelOptions(ctx context.Context, code string, store StoreContext) ([]models.OptionPair, error) {
	query := `
		SELECT o.option_id::text AS value, o.label AS label
		FROM catalog_attribute_options o
		INNER JOIN catalog_attributes a ON a.attribute_id = o.attribute_id
		WHERE a.attribute_code = ? AND o.store_id = 0
		ORDER BY o.position ASC, o.label ASC
	`

	rows := make([]models.OptionPair, 0)
	if err := s.db.WithContext(ctx).Raw(query, code).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// OptionTableOptions reads the option table directly over pgx with no
// frontend_input requirement. Last resort for attributes whose metadata is
// incomplete but whose option rows exist.
func (s *SQLAttributeSource) OptionTableOptions(ctx context.Context, code string, store StoreContext) ([]models.OptionPair, error) {
	if s.pool == nil {
		return nil, nil
	}

	query := `
		SELECT DISTINCT ON (o.option_id) o.option_id::text, o.label
		FROM catalog_attribute_options o
		INNER JOIN catalog_attributes a ON a.attribute_id = o.attribute_id
		WHERE a.attribute_code = $1 AND o.store_id IN (0, $2)
		ORDER BY o.option_id, o.store_id DESC
	`

	rows, err := s.pool.Query(ctx, query, code, store.StoreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.OptionPair, 0)
	for rows.Next() {
		var pair models.OptionPair
		if err := rows.Scan(&pair.Value, &pair.Label); err != nil {
			return nil, err
		}
		out = append(out, pair)
	}
	return out, rows.Err()
}
