package database

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"

	"shareit/internal/models"
)

const (
	dialectSQLite = "sqlite3"

	tableBookings = "bookings"
	tableItems    = "items"

	colID       = "id"
	colItemID   = "item_id"
	colBookerID = "booker_id"
	colOwnerID  = "owner_id"
	colStatus   = "status"
	colStartAt  = "start_at"
	colEndAt    = "end_at"
)

var (
	bookingsT = goqu.T(tableBookings).As("b")
	itemsT    = goqu.T(tableItems).As("i")
)

func bookingCol(name string) exp.IdentifierExpression {
	return goqu.T("b").Col(name)
}

func bookingSelect() *goqu.SelectDataset {
	return goqu.Dialect(dialectSQLite).
		From(bookingsT).
		Prepared(true).
		Select(
			bookingCol(colID),
			bookingCol(colItemID),
			bookingCol(colBookerID),
			bookingCol(colStatus),
			bookingCol(colStartAt),
			bookingCol(colEndAt),
			bookingCol("created_at"),
			bookingCol("updated_at"),
			bookingCol("version"),
		)
}

// stateExpression translates a booking state into a WHERE clause. StateAll yields nil.
func stateExpression(state models.BookingState, now time.Time) (exp.Expression, error) {
	switch state {
	case models.StateAll:
		return nil, nil
	case models.StateCurrent:
		return goqu.And(
			bookingCol(colStartAt).Lte(now),
			bookingCol(colEndAt).Gte(now),
		), nil
	case models.StatePast:
		return bookingCol(colEndAt).Lt(now), nil
	case models.StateFuture:
		return bookingCol(colStartAt).Gt(now), nil
	case models.StateWaiting:
		return bookingCol(colStatus).Eq(string(models.StatusWaiting)), nil
	case models.StateRejected:
		return bookingCol(colStatus).Eq(string(models.StatusRejected)), nil
	default:
		return nil, fmt.Errorf("unsupported booking state %s", state)
	}
}

func buildListQuery(filter models.BookingFilter) (string, []interface{}, error) {
	now := filter.Now.UTC()
	stmt := bookingSelect()

	switch {
	case filter.OwnerID != 0:
		stmt = stmt.
			InnerJoin(itemsT, goqu.On(goqu.T("i").Col(colID).Eq(bookingCol(colItemID)))).
			Where(goqu.T("i").Col(colOwnerID).Eq(filter.OwnerID))
	case filter.BookerID != 0:
		stmt = stmt.Where(bookingCol(colBookerID).Eq(filter.BookerID))
	default:
		return "", nil, fmt.Errorf("booking filter needs a booker or an owner")
	}

	stateExpr, err := stateExpression(filter.State, now)
	if err != nil {
		return "", nil, err
	}
	if stateExpr != nil {
		stmt = stmt.Where(stateExpr)
	}

	stmt = stmt.Order(bookingCol(colStartAt).Desc(), bookingCol(colID).Asc())
	if filter.Limit > 0 {
		stmt = stmt.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		stmt = stmt.Offset(uint(filter.Offset))
	}

	query, args, err := stmt.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build bookings query: %w", err)
	}
	return query, args, nil
}

func buildLastItemBookingQuery(itemID int64, now time.Time) (string, []interface{}, error) {
	query, args, err := bookingSelect().
		Where(
			bookingCol(colItemID).Eq(itemID),
			bookingCol(colEndAt).Lt(now),
			bookingCol(colStatus).Neq(string(models.StatusRejected)),
		).
		Order(bookingCol(colStartAt).Desc(), bookingCol(colID).Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build last booking query: %w", err)
	}
	return query, args, nil
}

func buildNextItemBookingQuery(itemID int64, now time.Time) (string, []interface{}, error) {
	query, args, err := bookingSelect().
		Where(
			bookingCol(colItemID).Eq(itemID),
			bookingCol(colStartAt).Gt(now),
			bookingCol(colStatus).Neq(string(models.StatusRejected)),
		).
		Order(bookingCol(colStartAt).Asc(), bookingCol(colID).Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build next booking query: %w", err)
	}
	return query, args, nil
}
