package generator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meysamhadeli/jjgen/generator/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildArguments_Defaults(t *testing.T) {
	got := BuildArguments(models.DefaultOptions(), "/work/target/generated-sources/javacc", "/work/src/main/javacc/Calc.jj")

	want := []string{
		"-LOOKAHEAD=1",
		"-CHOICE_AMBIGUITY_CHECK=2",
		"-OTHER_AMBIGUITY_CHECK=1",
		"-STATIC=true",
		"-DEBUG_PARSER=false",
		"-DEBUG_LOOKAHEAD=false",
		"-DEBUG_TOKEN_MANAGER=false",
		"-OPTIMIZE_TOKEN_MANAGER=true",
		"-ERROR_REPORTING=true",
		"-JAVA_UNICODE_ESCAPE=false",
		"-UNICODE_INPUT=false",
		"-IGNORE_CASE=false",
		"-COMMON_TOKEN_ACTION=false",
		"-USER_TOKEN_MANAGER=false",
		"-USER_CHAR_STREAM=false",
		"-BUILD_PARSER=true",
		"-BUILD_TOKEN_MANAGER=true",
		"-SANITY_CHECK=true",
		"-FORCE_LA_CHECK=false",
		"-CACHE_TOKENS=false",
		"-KEEP_LINE_COLUMN=true",
		"-OUTPUT_DIRECTORY:/work/target/generated-sources/javacc",
		"/work/src/main/javacc/Calc.jj",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildArguments() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildArguments_OneTokenPerOption(t *testing.T) {
	options := models.Options{
		LookAhead:            4,
		ChoiceAmbiguityCheck: 3,
		OtherAmbiguityCheck:  2,
		DebugParser:          true,
		IgnoreCase:           true,
		CacheTokens:          true,
	}
	args := BuildArguments(options, "out", "/abs/G.jj")

	assert.Len(t, args, 23)
	assert.Equal(t, "-OUTPUT_DIRECTORY:out", args[21])
	assert.Equal(t, "/abs/G.jj", args[22])

	seen := make(map[string]bool)
	for _, arg := range args[:21] {
		name, value, ok := strings.Cut(strings.TrimPrefix(arg, "-"), "=")
		assert.True(t, ok, arg)
		assert.NotEmpty(t, value, arg)
		assert.False(t, seen[name], "duplicate option %s", name)
		seen[name] = true
	}
	assert.Len(t, seen, 21)

	assert.Contains(t, args, "-LOOKAHEAD=4")
	assert.Contains(t, args, "-DEBUG_PARSER=true")
	assert.Contains(t, args, "-STATIC=false")
}

func TestBuildArguments_StableOrder(t *testing.T) {
	options := models.DefaultOptions()
	first := BuildArguments(options, "out", "/abs/A.jj")
	second := BuildArguments(options, "out", "/abs/B.jj")

	assert.Equal(t, first[:22], second[:22])
}

func TestBuildArguments_NoValidation(t *testing.T) {
	options := models.DefaultOptions()
	options.LookAhead = -1

	args := BuildArguments(options, "", "G.jj")
	assert.Equal(t, "-LOOKAHEAD=-1", args[0])
	assert.Equal(t, "-OUTPUT_DIRECTORY:", args[21])
}
