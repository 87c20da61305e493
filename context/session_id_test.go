package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionID(t *testing.T) {
	id := NewSessionID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewSessionID())

	ctx := WithSessionID(stdctx.Background(), id)
	assert.Equal(t, id, SessionIDFromContext(ctx))
	assert.Empty(t, SessionIDFromContext(stdctx.Background()))
}
