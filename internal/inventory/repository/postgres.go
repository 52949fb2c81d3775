package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sellergenix/inventory-service/internal/inventory"
	"github.com/sellergenix/inventory-service/internal/inventory/dto"
	"github.com/sellergenix/inventory-service/internal/model"
)

const dateLayout = "2006-01-02"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetProduct(ctx context.Context, merchantID, productID string) (*model.Product, error) {
	var p model.Product
	query := `SELECT * FROM products WHERE merchant_id = $1 AND id = $2`
	err := r.DB.GetContext(ctx, &p, query, merchantID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) GetProductBySKU(ctx context.Context, merchantID, sku string) (*model.Product, error) {
	var p model.Product
	query := `SELECT * FROM products WHERE merchant_id = $1 AND sku = $2`
	err := r.DB.GetContext(ctx, &p, query, merchantID, sku)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) ListProducts(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var items []model.Product
	var count int

	where, args := productConditions(f)

	countQuery := r.DB.Rebind("SELECT count(*) FROM products" + where)
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := "SELECT * FROM products" + where + " ORDER BY sku ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	if err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return items, count, nil
}

// productConditions builds the WHERE clause with '?' placeholders; callers rebind.
func productConditions(f *dto.ProductFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = ?")
		args = append(args, f.MerchantID)
	}
	if len(f.ProductIDs) > 0 {
		conditions = append(conditions, "id = ANY(?::uuid[])")
		args = append(args, pq.Array(f.ProductIDs))
	}
	if f.SearchQuery != "" {
		match := "sku ILIKE ? OR name ILIKE ? OR asin ILIKE ?"
		like := "%" + f.SearchQuery + "%"
		args = append(args, like, like, like)
		if len(f.SearchIDs) > 0 {
			match += " OR id = ANY(?::uuid[])"
			args = append(args, pq.Array(f.SearchIDs))
		}
		conditions = append(conditions, "("+match+")")
	}
	if f.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PGRepository) UpdateReorderSettings(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products SET
            lead_time_days = :lead_time_days,
            safety_buffer_days = :safety_buffer_days,
            manual_daily_sales = :manual_daily_sales,
            unit_cost = :unit_cost,
            updated_at = :updated_at
        WHERE merchant_id = :merchant_id AND id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("failed to update reorder settings: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PGRepository) AdjustStockWithMovement(ctx context.Context, movement *model.StockMovement) (*model.Product, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := applyMovement(ctx, tx, movement)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PGRepository) RecordSaleWithMovement(ctx context.Context, sale *model.OrderSale, movement *model.StockMovement) (*model.Product, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Claim the order line
	if sale.OrderID != "" {
		claimQuery := `
            INSERT INTO order_sales (merchant_id, order_id, product_id, channel, quantity, sold_at)
            VALUES (:merchant_id, :order_id, :product_id, :channel, :quantity, :sold_at)
            ON CONFLICT DO NOTHING
        `
		res, err := tx.NamedExecContext(ctx, claimQuery, sale)
		if err != nil {
			return nil, fmt.Errorf("failed to record order sale: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, inventory.ErrDuplicateSale
		}
	}

	// 2. Add to the day's sales
	salesQuery := `
        INSERT INTO product_sales_daily (merchant_id, product_id, sales_date, units_sold, updated_at)
        VALUES ($1, $2, $3::date, $4, $5)
        ON CONFLICT (merchant_id, product_id, sales_date)
        DO UPDATE SET
            units_sold = product_sales_daily.units_sold + EXCLUDED.units_sold,
            updated_at = EXCLUDED.updated_at
    `
	_, err = tx.ExecContext(ctx, salesQuery,
		sale.MerchantID, sale.ProductID, sale.SoldAt.Format(dateLayout), sale.Quantity, movement.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record daily sales: %w", err)
	}

	// 3. Deduct stock
	p, err := applyMovement(ctx, tx, movement)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// applyMovement locks the product row and applies the movement's quantity
// change to its channel. Stock never goes below zero.
func applyMovement(ctx context.Context, tx *sqlx.Tx, movement *model.StockMovement) (*model.Product, error) {
	var p model.Product
	lockQuery := `SELECT * FROM products WHERE merchant_id = $1 AND id = $2 FOR UPDATE`
	if err := tx.GetContext(ctx, &p, lockQuery, movement.MerchantID, movement.ProductID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	movement.QuantityBefore = p.Stock(movement.Channel)
	movement.QuantityAfter = movement.QuantityBefore + movement.QuantityChange
	if movement.QuantityAfter < 0 {
		return nil, inventory.ErrInsufficientStock
	}
	p.SetStock(movement.Channel, movement.QuantityAfter)
	p.UpdatedAt = movement.CreatedAt

	// 1. Update stock
	updateQuery := `
        UPDATE products SET
            fba_stock = :fba_stock,
            fbm_stock = :fbm_stock,
            updated_at = :updated_at
        WHERE merchant_id = :merchant_id AND id = :id
    `
	if _, err := tx.NamedExecContext(ctx, updateQuery, &p); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	// 2. Log movement
	insertLogQuery := `
        INSERT INTO stock_movements (
            id, merchant_id, product_id, channel,
            movement_type, quantity_change, quantity_before, quantity_after,
            reference_type, reference_id, notes, created_by, created_at
        )
        VALUES (
            :id, :merchant_id, :product_id, :channel,
            :movement_type, :quantity_change, :quantity_before, :quantity_after,
            :reference_type, :reference_id, :notes, :created_by, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, insertLogQuery, movement); err != nil {
		return nil, fmt.Errorf("failed to log movement: %w", err)
	}

	return &p, nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.Channel != "" {
		conditions = append(conditions, "channel = :channel")
		args["channel"] = f.Channel
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

// SumUnitsSold totals units per product over [from, to], both days inclusive.
// Products without sales are absent from the map.
func (r *PGRepository) SumUnitsSold(ctx context.Context, merchantID string, productIDs []string, from, to time.Time) (map[string]int, error) {
	out := make(map[string]int, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	query := `
        SELECT product_id, COALESCE(SUM(units_sold), 0) AS units
        FROM product_sales_daily
        WHERE merchant_id = $1 AND product_id = ANY($2::uuid[]) AND sales_date BETWEEN $3::date AND $4::date
        GROUP BY product_id
    `
	var rows []struct {
		ProductID string `db:"product_id"`
		Units     int    `db:"units"`
	}
	if err := r.DB.SelectContext(ctx, &rows, query, merchantID, pq.Array(productIDs), from.Format(dateLayout), to.Format(dateLayout)); err != nil {
		return nil, fmt.Errorf("sum units sold: %w", err)
	}
	for _, row := range rows {
		out[row.ProductID] = row.Units
	}
	return out, nil
}
