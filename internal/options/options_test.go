package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	depth int
	name  string
}

func TestApplyOrder(t *testing.T) {
	tg := &target{}
	err := Apply[*target](tg,
		NoError(func(x *target) { x.name = "first" }),
		New(func(x *target) error {
			x.depth = 3
			return nil
		}),
		NoError(func(x *target) { x.name = "second" }),
	)
	require.NoError(t, err)
	require.Equal(t, 3, tg.depth)
	require.Equal(t, "second", tg.name)
}

func TestApplyStopsAtError(t *testing.T) {
	tg := &target{}
	boom := errors.New("boom")
	err := Apply[*target](tg,
		New(func(*target) error { return boom }),
		NoError(func(x *target) { x.name = "unreached" }),
	)
	require.ErrorIs(t, err, boom)
	require.Empty(t, tg.name)
}

func TestApplySkipsNil(t *testing.T) {
	tg := &target{}
	require.NoError(t, Apply[*target](tg, nil))
}
