package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryExecuteUnknownCommand(t *testing.T) {
	r := NewRegistry()
	result := r.Execute("nope")
	assert.Equal(t, StatusNotFound, result.Status)
}

func TestRegistryExecuteParseFailure(t *testing.T) {
	r := NewRegistry()
	result := r.Execute(`echo "unterminated`)
	assert.Equal(t, StatusError, result.Status)
}

func TestRegistryRegisterAndExecute(t *testing.T) {
	r := NewRegistry()
	var seenName string
	err := r.Register(Spec{
		Name:        "echo",
		Description: "echo positional args",
		Usage:       "echo <text>",
		Callback: func(args *Args) Result {
			seenName = args.CommandName
			v, _ := args.GetPositional(0)
			return Success(v.AsString())
		},
	})
	require.NoError(t, err)

	result := r.Execute("echo hello")
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "hello", result.Message)
	assert.Equal(t, "echo", seenName)
}

func TestRegistryRegisterRejectsEmptyNameOrNilCallback(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(Spec{Name: "", Callback: func(*Args) Result { return Success("") }}))
	assert.Error(t, r.Register(Spec{Name: "x"}))
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Spec{Name: "x", Callback: func(*Args) Result { return Success("ok") }}))

	assert.True(t, r.Unregister("x"))
	assert.False(t, r.Unregister("x"))
	assert.False(t, r.IsRegistered("x"))
}

func TestRegistryExecuteRecoversFromPanickingCallback(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Spec{
		Name: "boom",
		Callback: func(*Args) Result {
			panic("kaboom")
		},
	}))

	result := r.Execute("boom")
	assert.Equal(t, StatusError, result.Status)
}

func TestRegistryHelpListsBuiltins(t *testing.T) {
	r := NewRegistry()
	result := r.Execute("help")

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Contains(t, result.Details, "help")
	assert.Contains(t, result.Details, "history")
	assert.Contains(t, result.Details, "clear_history")
}

func TestRegistryHelpForSpecificCommand(t *testing.T) {
	r := NewRegistry()
	result := r.Execute("help history")

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Contains(t, result.Message, "history")
}

func TestRegistryHistoryRoundTrip(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Spec{Name: "noop", Callback: func(*Args) Result { return Success("ok") }}))

	r.Execute("noop")
	r.Execute("noop")

	result := r.Execute("history")
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Contains(t, result.Details, "noop")
}

func TestRegistryClearHistory(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Spec{Name: "noop", Callback: func(*Args) Result { return Success("ok") }}))
	r.Execute("noop")

	result := r.Execute("clear_history")
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 0, r.History().Len())
}

func TestRegistrySuggestionsSortedCaseInsensitivePrefix(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Spec{Name: "HelpDesk", Callback: func(*Args) Result { return Success("") }}))

	suggestions := r.Suggestions("hel")
	assert.Equal(t, []string{"HelpDesk", "help"}, suggestions)
}
