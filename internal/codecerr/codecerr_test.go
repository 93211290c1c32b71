package codecerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCarriesKind(t *testing.T) {
	err := New(BinFraming, "magic not found")
	assert.True(t, Is(err, BinFraming))
	assert.False(t, Is(err, IO))
	assert.Contains(t, err.Error(), "magic not found")
}

func TestWrapCarriesCauseAndKind(t *testing.T) {
	cause := errors.New("short read")
	err := Wrap(cause, IO, "failed reading fixed prefix")
	assert.True(t, Is(err, IO))
	assert.Equal(t, cause, err.Cause)
}

func TestIsRejectsForeignErrors(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), IO))
}
