package store

import (
	"context"
	"database/sql"

	"github.com/example/fleet-inventory/internal/domain/item"
)

// PostgresItemStore persists stock items in the inventory_items table,
// one row per (vessel, item number).
type PostgresItemStore struct {
	db *sql.DB
}

func NewPostgresItemStore(db *sql.DB) *PostgresItemStore {
	return &PostgresItemStore{db: db}
}

// SaveItem inserts or updates the item's row.
func (s *PostgresItemStore) SaveItem(ctx context.Context, vessel string, it *item.StockItem) error {
	row, err := encodeItem(it)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO inventory_items (
			vessel_name, item_number, name, description, location, unit, vendor,
			category, image_path, min_stock, safety_stock, expiry_date, documents,
			cost, quantity, usage_history, maintenance_records, alert_active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (vessel_name, item_number) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			location = EXCLUDED.location,
			unit = EXCLUDED.unit,
			vendor = EXCLUDED.vendor,
			category = EXCLUDED.category,
			image_path = EXCLUDED.image_path,
			min_stock = EXCLUDED.min_stock,
			safety_stock = EXCLUDED.safety_stock,
			expiry_date = EXCLUDED.expiry_date,
			documents = EXCLUDED.documents,
			cost = EXCLUDED.cost,
			quantity = EXCLUDED.quantity,
			usage_history = EXCLUDED.usage_history,
			maintenance_records = EXCLUDED.maintenance_records,
			alert_active = EXCLUDED.alert_active`,
		vessel, row.ItemNumber, row.Name, row.Description, row.Location, row.Unit,
		row.Vendor, row.Category, row.ImagePath, row.MinStock, row.SafetyStock,
		row.ExpiryDate, row.Documents, row.Cost, row.Quantity, row.UsageHistory,
		row.MaintenanceRecords, row.AlertActive,
	)
	return err
}

// Vessels returns every vessel name with at least one stored item.
func (s *PostgresItemStore) Vessels(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT vessel_name FROM inventory_items ORDER BY vessel_name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vessels []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		vessels = append(vessels, name)
	}
	return vessels, rows.Err()
}

// LoadVesselInventory returns item snapshots for one vessel.
func (s *PostgresItemStore) LoadVesselInventory(ctx context.Context, vessel string) ([]*item.StockItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_number, name, description, location, unit, vendor, category,
			image_path, min_stock, safety_stock, expiry_date, documents, cost,
			quantity, usage_history, maintenance_records, alert_active
		 FROM inventory_items
		 WHERE vessel_name = $1
		 ORDER BY item_number ASC`,
		vessel,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*item.StockItem
	for rows.Next() {
		var row itemRow
		if err := rows.Scan(
			&row.ItemNumber, &row.Name, &row.Description, &row.Location, &row.Unit,
			&row.Vendor, &row.Category, &row.ImagePath, &row.MinStock, &row.SafetyStock,
			&row.ExpiryDate, &row.Documents, &row.Cost, &row.Quantity,
			&row.UsageHistory, &row.MaintenanceRecords, &row.AlertActive,
		); err != nil {
			return nil, err
		}
		it, err := decodeItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
