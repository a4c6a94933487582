package options_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c2fo/fixture/options"
)

type target struct {
	name  string
	count int
}

func TestApplyOptions(t *testing.T) {
	is := require.New(t)

	tgt := &target{}
	options.ApplyOptions(tgt,
		options.Func("name", func(v *target) { v.name = "first" }),
		nil,
		options.Func("count", func(v *target) { v.count++ }),
		options.Func("name", func(v *target) { v.name = "second" }),
	)

	is.Equal("second", tgt.name, "later option of the same name wins")
	is.Equal(1, tgt.count)
}

func TestFuncOptionName(t *testing.T) {
	opt := options.Func("logger", func(*target) {})
	require.Equal(t, "logger", opt.OptionName())
}
