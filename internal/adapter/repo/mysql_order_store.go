package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/balwinder10003-code/ATTRAAH/internal/entity"
	"github.com/balwinder10003-code/ATTRAAH/internal/usecase"
)

// MySQLOrderStore is the durable order record. The column layout is
// discovered once at startup (see columns.go), so the table can gain or
// reorder columns without touching this code.
type MySQLOrderStore struct {
	db    *sql.DB
	table string
	plan  columnPlan
}

func NewMySQLOrderStore(ctx context.Context, db *sql.DB, table string) (*MySQLOrderStore, error) {
	cols, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}
	plan, err := newColumnPlan(cols)
	if err != nil {
		return nil, err
	}
	return &MySQLOrderStore{db: db, table: table, plan: plan}, nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
SELECT column_name FROM information_schema.columns
WHERE table_schema = DATABASE() AND table_name = ?
ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("repo: discover columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("repo: table %s not found or empty schema", table)
	}
	return cols, nil
}

func (s *MySQLOrderStore) Append(ctx context.Context, o *entity.Order) error {
	now := time.Now().UTC()
	createdAt := o.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	vals := make([]any, 0, len(s.plan.cols))
	for _, c := range s.plan.cols {
		switch c {
		case colOrderID:
			vals = append(vals, o.OrderID)
		case colCustomerID:
			vals = append(vals, o.CustomerID)
		case colName:
			vals = append(vals, o.Name)
		case colMobile:
			vals = append(vals, o.Mobile)
		case colAddress:
			vals = append(vals, o.Address)
		case colProduct:
			vals = append(vals, o.Product)
		case colSize:
			vals = append(vals, o.Size)
		case colPcs:
			vals = append(vals, o.Pcs)
		case colAmount:
			vals = append(vals, o.Amount)
		case colStatus:
			vals = append(vals, string(o.Status))
		case colCourier:
			vals = append(vals, o.Courier)
		case colTrackingID:
			vals = append(vals, o.TrackingID)
		case colTrackingURL:
			vals = append(vals, o.TrackingURL)
		case colCreatedAt:
			vals = append(vals, createdAt)
		case colUpdatedAt:
			vals = append(vals, now)
		}
	}

	q := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES (%s)",
		s.table, s.plan.selectList(), s.plan.insertPlaceholders())
	if _, err := s.db.ExecContext(ctx, q, vals...); err != nil {
		return fmt.Errorf("repo: append order %s: %w", o.OrderID, err)
	}
	return nil
}

// UpdateStatus stamps the status-change time alongside the new status. An
// unknown order id affects zero rows and is deliberately not an error.
func (s *MySQLOrderStore) UpdateStatus(ctx context.Context, orderID string, status entity.Status, tr *entity.Tracking) error {
	set := "status = ?, updated_at = ?"
	args := []any{string(status), time.Now().UTC()}
	if tr != nil {
		set += ", courier = ?, tracking_id = ?, tracking_url = ?"
		args = append(args, tr.Courier, tr.TrackingID, tr.TrackingURL)
	}
	args = append(args, orderID)

	q := fmt.Sprintf("UPDATE `%s` SET %s WHERE order_id = ?", s.table, set)
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("repo: update order %s: %w", orderID, err)
	}
	return nil
}

func (s *MySQLOrderStore) FindByCustomer(ctx context.Context, customerID string) ([]entity.Order, error) {
	q := fmt.Sprintf("SELECT %s FROM `%s` WHERE customer_id = ? ORDER BY created_at DESC, order_id DESC",
		s.plan.selectList(), s.table)
	rows, err := s.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, fmt.Errorf("repo: find orders of %s: %w", customerID, err)
	}
	defer rows.Close()

	var out []entity.Order
	for rows.Next() {
		o, err := s.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo: find orders of %s: %w", customerID, err)
	}
	return out, nil
}

func (s *MySQLOrderStore) FindByID(ctx context.Context, orderID string) (*entity.Order, error) {
	q := fmt.Sprintf("SELECT %s FROM `%s` WHERE order_id = ?", s.plan.selectList(), s.table)
	rows, err := s.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("repo: find order %s: %w", orderID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("repo: find order %s: %w", orderID, err)
		}
		return nil, entity.ErrNotFound
	}
	return s.scanOrder(rows)
}

// scanOrder binds scan targets by column name in plan order.
func (s *MySQLOrderStore) scanOrder(rows *sql.Rows) (*entity.Order, error) {
	var (
		o         entity.Order
		status    string
		courier   sql.NullString
		trackID   sql.NullString
		trackURL  sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	targets := make([]any, 0, len(s.plan.cols))
	for _, c := range s.plan.cols {
		switch c {
		case colOrderID:
			targets = append(targets, &o.OrderID)
		case colCustomerID:
			targets = append(targets, &o.CustomerID)
		case colName:
			targets = append(targets, &o.Name)
		case colMobile:
			targets = append(targets, &o.Mobile)
		case colAddress:
			targets = append(targets, &o.Address)
		case colProduct:
			targets = append(targets, &o.Product)
		case colSize:
			targets = append(targets, &o.Size)
		case colPcs:
			targets = append(targets, &o.Pcs)
		case colAmount:
			targets = append(targets, &o.Amount)
		case colStatus:
			targets = append(targets, &status)
		case colCourier:
			targets = append(targets, &courier)
		case colTrackingID:
			targets = append(targets, &trackID)
		case colTrackingURL:
			targets = append(targets, &trackURL)
		case colCreatedAt:
			targets = append(targets, &createdAt)
		case colUpdatedAt:
			targets = append(targets, &updatedAt)
		}
	}

	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("repo: scan order row: %w", err)
	}

	o.Status = entity.Status(status)
	o.Courier = courier.String
	o.TrackingID = trackID.String
	o.TrackingURL = trackURL.String
	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time
	return &o, nil
}

var _ usecase.Store = (*MySQLOrderStore)(nil)
