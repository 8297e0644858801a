package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/A3V1/B2B-RFP/internal/catalog"
	"github.com/A3V1/B2B-RFP/internal/types"
)

const componentColumns = `id, sku, name, category, voltage_kv, conductor, cores,
	cross_section_mm2, insulation, armour, standard, fire_rating, application,
	price_per_meter, in_stock, lead_time_days`

// Acquire checks a connection out of the pool as a catalog session.
func (db *DB) Acquire(ctx context.Context) (catalog.Session, error) {
	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire catalog connection: %w", err)
	}
	return &catalogSession{conn: conn}, nil
}

// catalogSession serves catalog queries over one pooled connection.
type catalogSession struct {
	conn *pgxpool.Conn
}

// Release returns the connection to the pool.
func (s *catalogSession) Release() {
	s.conn.Release()
}

// FindBySpecs returns up to limit components matching every filter constraint.
func (s *catalogSession) FindBySpecs(ctx context.Context, f catalog.Filter, limit int) ([]types.ComponentCandidate, error) {
	where, args := buildSpecFilter(f)
	query := fmt.Sprintf(`SELECT %s FROM components WHERE 1=1%s ORDER BY id LIMIT $%d`,
		componentColumns, where, len(args)+1)
	args = append(args, limit)

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query components: %w", err)
	}
	defer rows.Close()

	return scanComponents(rows)
}

// FindByCategory returns up to limit components in the given category.
func (s *catalogSession) FindByCategory(ctx context.Context, category string, limit int) ([]types.ComponentCandidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM components WHERE category = $1 ORDER BY id LIMIT $2`,
		componentColumns)

	rows, err := s.conn.Query(ctx, query, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query components by category: %w", err)
	}
	defer rows.Close()

	return scanComponents(rows)
}

// buildSpecFilter renders the filter as an AND clause suffix with numbered
// placeholders. Exact match for voltage, cores and cross-section; ILIKE
// substring match for the text fields.
func buildSpecFilter(f catalog.Filter) (string, []any) {
	where := ""
	args := []any{}
	argNum := 1

	if f.VoltageKV != nil {
		where += fmt.Sprintf(" AND voltage_kv = $%d", argNum)
		args = append(args, *f.VoltageKV)
		argNum++
	}
	if f.Conductor != nil {
		where += fmt.Sprintf(" AND conductor ILIKE $%d", argNum)
		args = append(args, "%"+*f.Conductor+"%")
		argNum++
	}
	if f.Cores != nil {
		where += fmt.Sprintf(" AND cores = $%d", argNum)
		args = append(args, *f.Cores)
		argNum++
	}
	if f.CrossSectionMM2 != nil {
		where += fmt.Sprintf(" AND cross_section_mm2 = $%d", argNum)
		args = append(args, *f.CrossSectionMM2)
		argNum++
	}
	if f.Insulation != nil {
		where += fmt.Sprintf(" AND insulation ILIKE $%d", argNum)
		args = append(args, "%"+*f.Insulation+"%")
		argNum++
	}
	if f.Armour != nil {
		where += fmt.Sprintf(" AND armour ILIKE $%d", argNum)
		args = append(args, "%"+*f.Armour+"%")
	}

	return where, args
}

func scanComponents(rows pgx.Rows) ([]types.ComponentCandidate, error) {
	var candidates []types.ComponentCandidate
	for rows.Next() {
		var c types.ComponentCandidate
		if err := rows.Scan(&c.ID, &c.SKU, &c.Name, &c.Category,
			&c.VoltageKV, &c.Conductor, &c.Cores, &c.CrossSectionMM2,
			&c.Insulation, &c.Armour, &c.Standard, &c.FireRating, &c.Application,
			&c.PricePerMeter, &c.InStock, &c.LeadTimeDays); err != nil {
			return nil, fmt.Errorf("failed to scan component: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
