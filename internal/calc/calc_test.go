package calc

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 0, 0},
		{2, 3, 5},
		{-7, 4, -3},
		{math.MaxInt32, 1, math.MaxInt32 + 1},
		{math.MinInt64 + 1, -1, math.MinInt64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Add(tt.a, tt.b), "Add(%d, %d)", tt.a, tt.b)
	}
}

func TestRunPrintsSum(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"12", "30"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "The sum is: 42\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunNegativeOperands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-5", "3"}, "The sum is: -2\n"},
		{[]string{"3", "-5"}, "The sum is: -2\n"},
		{[]string{"-5", "-6"}, "The sum is: -11\n"},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		code := Run(tt.args, &stdout, &stderr)

		assert.Equal(t, 0, code, "args=%v", tt.args)
		assert.Equal(t, tt.want, stdout.String(), "args=%v", tt.args)
		assert.Empty(t, stderr.String(), "args=%v", tt.args)
	}
}

func TestRunHelp(t *testing.T) {
	for _, flag := range []string{"-h", "--help"} {
		var stdout, stderr bytes.Buffer
		code := Run([]string{flag}, &stdout, &stderr)

		assert.Equal(t, 0, code, flag)
		assert.Contains(t, stdout.String(), "calc <number1> <number2>", flag)
	}
}

func TestRunUnknownFlagIsNotAnOperand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"--verbose", "2"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestRunWrongArgumentCount(t *testing.T) {
	for _, args := range [][]string{{}, {"1"}, {"1", "2", "3"}} {
		var stdout, stderr bytes.Buffer
		code := Run(args, &stdout, &stderr)

		assert.Equal(t, 1, code, "args=%v", args)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Usage:")
	}
}

func TestRunRejectsNonNumeric(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"abc", "2"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Usage:")
}
