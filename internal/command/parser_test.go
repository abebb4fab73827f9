package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	args, err := Parse(`spawn chunk 3 --priority=high --verbose`)
	require.NoError(t, err)

	assert.Equal(t, "spawn", args.CommandName)
	require.Len(t, args.Positional, 2)
	assert.Equal(t, "chunk", args.Positional[0].AsString())

	iv, ok := args.Positional[1].AsInt()
	require.True(t, ok)
	assert.Equal(t, 3, iv)

	pv, ok := args.GetNamed("priority")
	require.True(t, ok)
	assert.Equal(t, "high", pv.AsString())

	vv, ok := args.GetNamed("verbose")
	require.True(t, ok)
	assert.True(t, vv.AsBool())
}

func TestParseQuotedStringWithEscapes(t *testing.T) {
	args, err := Parse(`echo "hello\nworld" 'single\tquoted'`)
	require.NoError(t, err)

	require.Len(t, args.Positional, 2)
	assert.Equal(t, "hello\nworld", args.Positional[0].AsString())
	assert.Equal(t, "single\tquoted", args.Positional[1].AsString())
}

func TestParseUnterminatedQuoteErrors(t *testing.T) {
	_, err := Parse(`echo "unterminated`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)
}

func TestParseEmptyLineErrors(t *testing.T) {
	_, err := Parse("   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestParseValueCoercionOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind Kind
	}{
		{name: "bool true", raw: "true", kind: KindBool},
		{name: "bool false", raw: "false", kind: KindBool},
		{name: "int", raw: "42", kind: KindInt},
		{name: "negative int", raw: "-7", kind: KindInt},
		{name: "float", raw: "3.14", kind: KindFloat},
		{name: "partial numeric string stays string", raw: "3.14abc", kind: KindString},
		{name: "plain string", raw: "hello", kind: KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Parse("cmd " + tt.raw)
			require.NoError(t, err)
			require.Len(t, args.Positional, 1)
			assert.Equal(t, tt.kind, args.Positional[0].Kind())
		})
	}
}

func TestParseNamedArgumentWithoutValueDefaultsTrue(t *testing.T) {
	args, err := Parse("cmd --flag")
	require.NoError(t, err)

	v, ok := args.GetNamed("flag")
	require.True(t, ok)
	assert.True(t, v.AsBool())
}

func TestParseCommandNameCannotBeOption(t *testing.T) {
	_, err := Parse("--oops")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCommandName)
}
