package agent

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
)

func dispatchRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	reg, err := tool.NewRegistry(
		tool.Spec{
			Name:        "calculator",
			Description: "math",
			Run: func(ctx context.Context, args tool.Args) (string, error) {
				expr, err := args.Text("expression")
				if err != nil {
					return "", err
				}
				return "Result: " + expr, nil
			},
		},
		tool.Spec{
			Name:        "file_reader",
			Description: "files",
			Run: func(ctx context.Context, args tool.Args) (string, error) {
				return "contents", nil
			},
		},
		tool.Spec{
			Name:        "panicky",
			Description: "misbehaves",
			Run: func(ctx context.Context, args tool.Args) (string, error) {
				panic("index out of range")
			},
		},
	)
	require.NoError(t, err)
	return reg
}

func TestDispatch_Success(t *testing.T) {
	reg := dispatchRegistry(t)

	obs := Dispatch(context.Background(), reg, "calculator", tool.Args{
		"expression": tool.StringValue("2+2"),
	})

	assert.Equal(t, "Result: 2+2", obs, "tool output returned verbatim")
}

func TestDispatch_UnknownToolListsAllNames(t *testing.T) {
	reg := dispatchRegistry(t)

	obs := Dispatch(context.Background(), reg, "missing_tool", tool.Args{})

	assert.Contains(t, obs, `unknown tool "missing_tool"`)
	for _, name := range reg.Names() {
		assert.Contains(t, obs, name, "every registered tool name must appear")
	}
}

func TestDispatch_MissingArgumentBecomesObservation(t *testing.T) {
	reg := dispatchRegistry(t)

	obs := Dispatch(context.Background(), reg, "calculator", tool.Args{})

	assert.Contains(t, obs, `Error calling "calculator"`)
	assert.Contains(t, obs, `missing required argument "expression"`)
}

func TestDispatch_PanicRecoveredAsObservation(t *testing.T) {
	reg := dispatchRegistry(t)

	var obs string
	require.NotPanics(t, func() {
		obs = Dispatch(context.Background(), reg, "panicky", tool.Args{})
	})

	assert.Contains(t, obs, `Error calling "panicky"`)
	assert.Contains(t, obs, "index out of range")
}

func TestDispatch_CaseInsensitiveName(t *testing.T) {
	reg := dispatchRegistry(t)

	obs := Dispatch(context.Background(), reg, "Calculator", tool.Args{
		"expression": tool.StringValue("1"),
	})
	assert.Equal(t, "Result: 1", obs)
}

func TestDispatch_NeverPanicsAcrossArgShapes(t *testing.T) {
	reg := dispatchRegistry(t)

	shapes := []tool.Args{
		nil,
		{},
		{"expression": tool.NumberValue(5)},
		{"unexpected": tool.BoolValue(true)},
	}

	for i, args := range shapes {
		args := args
		t.Run(fmt.Sprintf("shape_%d", i), func(t *testing.T) {
			require.NotPanics(t, func() {
				_ = Dispatch(context.Background(), reg, "calculator", args)
			})
		})
	}
}
