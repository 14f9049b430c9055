package userctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorRoundTrip(t *testing.T) {
	ctx := WithOperator(context.Background(), Operator{Subject: "auth0|123", Name: "sam"})

	op, ok := OperatorFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "auth0|123", op.Subject)
	assert.Equal(t, "sam", OperatorName(ctx))
}

func TestOperatorNameAnonymous(t *testing.T) {
	_, ok := OperatorFrom(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "anonymous", OperatorName(context.Background()))
	assert.Equal(t, "anonymous", OperatorName(WithOperator(context.Background(), Operator{Subject: "x"})))
}
