package engine

import (
	"testing"

	"github.com/steinsut/comad/pkg/command"
	"github.com/steinsut/comad/pkg/logging"
	"github.com/steinsut/comad/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture returns an executor that stores the context it was given.
func capture(status int, into **command.ExecutionContext) command.ExecutorFunc {
	return func(ctx *command.ExecutionContext) int {
		*into = ctx
		return status
	}
}

func greetTree(into **command.ExecutionContext) *command.Node {
	root := command.NewRoot()
	root.Command("greet").
		Alias("g").
		Flags("loud").
		Options(
			command.Opt("name", value.Any(value.TypeString)).Short('n').Required(),
			command.Opt("count", value.Within(value.MustRange(0, 100))).Short('c'),
		).
		WithExecutor(capture(0, into))
	return root
}

func TestRunRequiredOption(t *testing.T) {
	var got *command.ExecutionContext
	p := New(nil, nil)
	root := greetTree(&got)

	status := p.Run(root, []string{"greet", "--name", "Ada"})
	require.Equal(t, 0, status)
	require.NotNil(t, got)
	name, ok := got.Option("name")
	require.True(t, ok)
	assert.True(t, name.Equal(value.String("Ada")))
	assert.Equal(t, 1, got.RequiredOptionCount)
	assert.Equal(t, []string{"greet"}, got.Path)

	got = nil
	assert.Equal(t, StatusMissingRequiredOptions, p.Run(root, []string{"greet"}))
	assert.Nil(t, got, "executor must not run after a fatal failure")
}

func TestAliasEquivalence(t *testing.T) {
	var viaName, viaAlias *command.ExecutionContext
	p := New(nil, nil)

	tokens := []string{"--name", "Ada", "--count", "3", "loud", "rest"}
	require.Equal(t, 0, p.Run(greetTree(&viaName), append([]string{"greet"}, tokens...)))
	require.Equal(t, 0, p.Run(greetTree(&viaAlias), append([]string{"g"}, tokens...)))

	assert.Equal(t, viaName, viaAlias)
}

func TestOptionalOptionOutOfRangeDegrades(t *testing.T) {
	var got *command.ExecutionContext
	rec := logging.NewRecorder()
	p := New(&Config{Verbose: true}, rec)

	status := p.Run(greetTree(&got), []string{"greet", "--name", "Ada", "--count", "150"})
	require.Equal(t, 0, status)
	_, ok := got.Option("count")
	assert.False(t, ok)
	assert.Empty(t, rec.Messages(logging.LevelError))
	assert.NotEmpty(t, rec.Messages(logging.LevelDebug))
}

func TestRequiredOptionOutOfRangeFails(t *testing.T) {
	root := command.NewRoot()
	root.Command("set").
		Options(command.Opt("count", value.Within(value.MustRange(0, 100))).Required()).
		Do(func(*command.ExecutionContext) int { return 0 })

	rec := logging.NewRecorder()
	p := New(nil, rec)
	assert.Equal(t, StatusInvalidOptionValue, p.Run(root, []string{"set", "--count", "150"}))
	assert.Len(t, rec.Messages(logging.LevelError), 1)
	assert.Equal(t, 0, p.Run(root, []string{"set", "--count", "100"}))
}

func TestFlags(t *testing.T) {
	var got *command.ExecutionContext
	p := New(nil, nil)
	root := greetTree(&got)

	require.Equal(t, 0, p.Run(root, []string{"greet", "loud", "--name", "Ada"}))
	assert.True(t, got.Flag("loud"))

	require.Equal(t, 0, p.Run(root, []string{"greet", "--name", "Ada"}))
	loud, declared := got.Flags["loud"]
	assert.True(t, declared, "declared flags are always present")
	assert.False(t, loud)
}

func TestFlagPrefix(t *testing.T) {
	var got *command.ExecutionContext
	root := command.NewRoot()
	root.Command("test4").Flags("flag1", "flag2").WithExecutor(capture(4, &got))

	p := New(&Config{FlagPrefix: "-f"}, nil)
	require.Equal(t, 4, p.Run(root, []string{"test4", "-fflag1", "-fflag2"}))
	assert.True(t, got.Flag("flag1"))
	assert.True(t, got.Flag("flag2"))

	require.Equal(t, 4, p.Run(root, []string{"test4", "flag1"}))
	assert.False(t, got.Flag("flag1"))
	assert.Equal(t, []string{"flag1"}, got.ExtraArgs)
}

func TestShortOption(t *testing.T) {
	var long, short *command.ExecutionContext
	p := New(nil, nil)

	require.Equal(t, 0, p.Run(greetTree(&long), []string{"greet", "--name", "Ada"}))
	require.Equal(t, 0, p.Run(greetTree(&short), []string{"greet", "-n", "Ada"}))
	assert.Equal(t, long, short)
}

func TestDuplicateOptionPolicy(t *testing.T) {
	var got *command.ExecutionContext
	tokens := []string{"greet", "--name", "Ada", "-n", "Grace"}

	strict := New(nil, nil)
	assert.Equal(t, StatusDuplicateOption, strict.Run(greetTree(&got), tokens))

	lenient := New(&Config{SkipDuplicateOption: true}, nil)
	require.Equal(t, 0, lenient.Run(greetTree(&got), tokens))
	name, _ := got.Option("name")
	assert.True(t, name.Equal(value.String("Ada")), "second occurrence is ignored")
	assert.Empty(t, got.ExtraArgs, "the ignored occurrence still consumes its value")
}

func TestUnknownOptionPolicy(t *testing.T) {
	var got *command.ExecutionContext
	tokens := []string{"greet", "--name", "Ada", "--colour", "red", "-x", "1", "tail"}

	strict := New(nil, nil)
	assert.Equal(t, StatusUnknownOption, strict.Run(greetTree(&got), tokens))

	lenient := New(&Config{SkipUnknownOption: true}, nil)
	require.Equal(t, 0, lenient.Run(greetTree(&got), tokens))
	assert.Equal(t, []string{"tail"}, got.ExtraArgs)
	assert.Len(t, got.Options, 1)
}

func TestInvalidValueParsePolicy(t *testing.T) {
	var got *command.ExecutionContext
	tokens := []string{"greet", "--name", "Ada", "--count", "many"}

	strict := New(nil, nil)
	assert.Equal(t, StatusInvalidValueParse, strict.Run(greetTree(&got), tokens))

	lenient := New(&Config{SkipInvalidValueParse: true}, nil)
	require.Equal(t, 0, lenient.Run(greetTree(&got), tokens))
	_, ok := got.Option("count")
	assert.False(t, ok)
}

func TestOptionWithoutValue(t *testing.T) {
	var got *command.ExecutionContext
	strict := New(nil, nil)
	assert.Equal(t, StatusInvalidValueParse, strict.Run(greetTree(&got), []string{"greet", "--name"}))

	lenient := New(&Config{SkipInvalidValueParse: true}, nil)
	assert.Equal(t, StatusMissingRequiredOptions, lenient.Run(greetTree(&got), []string{"greet", "--name"}))
}

func TestRequiredOptionSkippedByParsePolicyStillCounts(t *testing.T) {
	root := command.NewRoot()
	root.Command("x").
		Options(command.Opt("n", value.Any(value.TypeInt)).Required()).
		Do(func(*command.ExecutionContext) int { return 0 })

	p := New(&Config{SkipInvalidValueParse: true}, nil)
	assert.Equal(t, StatusMissingRequiredOptions, p.Run(root, []string{"x", "--n", "abc"}))
}

func TestPositionalArguments(t *testing.T) {
	var got *command.ExecutionContext
	root := command.NewRoot()
	root.Command("test5").
		Args(
			command.Arg("bool", value.TypeBool),
			command.Arg("integer", value.TypeInt),
			command.Arg("float", value.TypeFloat),
			command.Arg("string", value.TypeString),
		).
		WithExecutor(capture(5, &got))

	p := New(nil, nil)
	require.Equal(t, 5, p.Run(root, []string{"test5", "true", "5", "1.0f", "value", "extra1", "-7"}))

	b, _ := got.Arg("bool")
	i, _ := got.Arg("integer")
	f, _ := got.Arg("float")
	s, _ := got.Arg("string")
	assert.True(t, b.Equal(value.Bool(true)))
	assert.True(t, i.Equal(value.Int(5)))
	assert.True(t, f.Equal(value.Float(1)))
	assert.True(t, s.Equal(value.String("value")))
	assert.Equal(t, []string{"extra1", "-7"}, got.ExtraArgs)
}

func TestPositionalConversionIsAlwaysFatal(t *testing.T) {
	root := command.NewRoot()
	root.Command("add").
		Args(command.Arg("a", value.TypeInt), command.Arg("b", value.TypeInt)).
		Do(func(*command.ExecutionContext) int { return 0 })

	p := New(&Config{SkipInvalidValueParse: true}, nil)
	assert.Equal(t, StatusInvalidValueParse, p.Run(root, []string{"add", "1", "two"}))
	assert.Equal(t, 0, p.Run(root, []string{"add", "-1", "2"}), "negative numbers fill positional slots")
}

func TestOptionsOfAllTypes(t *testing.T) {
	var got *command.ExecutionContext
	root := command.NewRoot()
	root.Command("test6").
		Options(
			command.Opt("boolopt", value.Any(value.TypeBool)).Required(),
			command.Opt("intopt", value.Within(value.MustRange(0, 100))),
			command.Opt("floatopt", value.Any(value.TypeFloat)).Required(),
			command.Opt("stringopt", value.OneOf("value1", "value2")).Required(),
		).
		WithExecutor(capture(6, &got))

	p := New(nil, nil)
	status := p.Run(root, []string{"test6",
		"--boolopt", "false",
		"--intopt", "6",
		"--floatopt", "1.0f",
		"--stringopt", "value1",
	})
	require.Equal(t, 6, status)
	assert.Equal(t, 3, got.RequiredOptionCount)

	intopt, _ := got.Option("intopt")
	n, err := intopt.Int()
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	boolopt, _ := got.Option("boolopt")
	assert.Equal(t, value.TypeBool, boolopt.Type())
}

func TestDispatchFailure(t *testing.T) {
	root := command.NewRoot()
	root.Command("group").Command("leaf").Do(func(*command.ExecutionContext) int { return 1 })

	p := New(nil, nil)
	assert.Equal(t, StatusDispatchFailure, p.Run(root, []string{"group"}))
	assert.Equal(t, StatusDispatchFailure, p.Run(root, []string{"unknown"}))
	assert.Equal(t, 1, p.Run(root, []string{"group", "leaf"}))
}

func TestResolve(t *testing.T) {
	root := command.NewRoot()
	leaf := root.Command("remote").Alias("r").Command("add").Alias("a")
	root.Command("remote").Command("add")

	p := New(nil, nil)
	for _, tokens := range [][]string{
		{"remote", "add", "origin"},
		{"r", "add", "origin"},
		{"remote", "a", "origin"},
		{"r", "a", "origin"},
	} {
		node, path, rest := p.Resolve(root, tokens)
		assert.Same(t, leaf, node, "%v", tokens)
		assert.Equal(t, []string{"remote", "add"}, path)
		assert.Equal(t, []string{"origin"}, rest)
	}

	node, path, rest := p.Resolve(root, nil)
	assert.Same(t, root, node)
	assert.Empty(t, path)
	assert.Empty(t, rest)
}

func TestResolveStopsAtLeaf(t *testing.T) {
	root := command.NewRoot()
	leaf := root.Command("echo")
	leaf.Args(command.Arg("word", value.TypeString))

	p := New(nil, nil)
	node, _, rest := p.Resolve(root, []string{"echo", "echo"})
	assert.Same(t, leaf, node)
	assert.Equal(t, []string{"echo"}, rest)
}

func TestInvocationsDoNotShareState(t *testing.T) {
	var got *command.ExecutionContext
	p := New(nil, nil)
	root := greetTree(&got)

	require.Equal(t, StatusDuplicateOption, p.Run(root, []string{"greet", "--name", "a", "--name", "b"}))
	require.Equal(t, 0, p.Run(root, []string{"greet", "--name", "c"}))
	name, _ := got.Option("name")
	assert.True(t, name.Equal(value.String("c")))
}

func TestCustomPrefixes(t *testing.T) {
	var got *command.ExecutionContext
	p := New(&Config{LongPrefix: "/", ShortPrefix: "+"}, nil)

	require.Equal(t, 0, p.Run(greetTree(&got), []string{"greet", "/name", "Ada", "+c", "7"}))
	count, _ := got.Option("count")
	assert.True(t, count.Equal(value.Int(7)))
}

func TestVerboseTrace(t *testing.T) {
	var got *command.ExecutionContext
	quiet := logging.NewRecorder()
	New(nil, quiet).Run(greetTree(&got), []string{"greet", "--name", "Ada"})
	assert.Empty(t, quiet.Entries())

	loud := logging.NewRecorder()
	New(&Config{Verbose: true}, loud).Run(greetTree(&got), []string{"g", "-n", "Ada"})
	debug := loud.Messages(logging.LevelDebug)
	assert.Contains(t, debug, `alias "g" resolves to "greet"`)
	assert.Contains(t, debug, `short option -n is "name"`)
	assert.Contains(t, debug, `option "name" = Ada`)
}

func TestPrepareDoesNotDispatch(t *testing.T) {
	var got *command.ExecutionContext
	p := New(nil, nil)

	node, ctx, err := p.Prepare(greetTree(&got), []string{"greet", "--name", "Ada", "loud"})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, "greet", node.Name())
	assert.True(t, ctx.Flag("loud"))
}
