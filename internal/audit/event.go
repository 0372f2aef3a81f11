package audit

import (
	"context"
	"time"
)

type Event struct {
	OperatorID *uint
	Action     string
	Entity     string
	EntityKey  *uint
	Metadata   any
	At         time.Time
}

type operatorKey struct{}

// WithOperator tags ctx with the authenticated operator so events raised
// further down can be attributed.
func WithOperator(ctx context.Context, operatorID uint) context.Context {
	return context.WithValue(ctx, operatorKey{}, operatorID)
}

func OperatorFrom(ctx context.Context) *uint {
	if id, ok := ctx.Value(operatorKey{}).(uint); ok {
		return &id
	}
	return nil
}
