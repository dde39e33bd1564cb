package main

import (
	"math"
	"testing"

	"github.com/nalgeon/be"
)

func TestTruthiness(t *testing.T) {
	tests := []struct {
		value    Value
		expected bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{0.0, true},
		{1.0, true},
		{"", true},
		{"false", true},
		{&NativeFunction{Name: "f"}, true},
	}

	for _, tt := range tests {
		be.Equal(t, isTruthy(tt.value), tt.expected)
	}
}

func TestBooleanExecution(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"literals", "print true; print false;", "true\nfalse\n"},
		{"not", "print !true; print !false; print !nil;", "false\ntrue\ntrue\n"},
		{"zero and empty string are truthy", `print !0; print !"";`, "false\nfalse\n"},
		{"double negation", "print !!nil; print !!1;", "false\ntrue\n"},
		{"comparison", "print 1 < 2; print 2 <= 2; print 3 > 4; print 4 >= 5;", "true\ntrue\nfalse\nfalse\n"},
		{"if uses truthiness", `if (0) print "zero"; if (nil) print "nil"; else print "else";`, "zero\nelse\n"},
		{"while stops on nil", "var a = 1; while (a) { print a; a = nil; }", "1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, _ := runProgram(t, tt.source)
			be.Equal(t, stderr, "")
			be.Equal(t, stdout, tt.expected)
		})
	}
}

func TestEquality(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
	}{
		{"nil == nil", "true"},
		{"nil == false", "false"},
		{"false == nil", "false"},
		{"nil != 0", "true"},
		{"true == true", "true"},
		{"true == 1", "false"},
		{"1 == 1", "true"},
		{"1 == 1.0", "true"},
		{"1 == 2", "false"},
		{`1 == "1"`, "false"},
		{`"a" == "a"`, "true"},
		{`"a" != "b"`, "true"},
		{`"" == nil`, "false"},
		{"clock == clock", "true"},
		{"-0 == 0", "false"},
		{"-0 == -0", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			stdout, stderr, _ := runProgram(t, "print "+tt.expr+";")
			be.Equal(t, stderr, "")
			be.Equal(t, stdout, tt.expected+"\n")
		})
	}
}

func TestFunctionEqualityIsIdentity(t *testing.T) {
	source := `
fun make() { fun f() {} return f; }
var a = make();
var b = make();
print a == a;
print a == b;`
	stdout, stderr, _ := runProgram(t, source)
	be.Equal(t, stderr, "")
	be.Equal(t, stdout, "true\nfalse\n")
}

func TestLogicalOperatorsReturnOperand(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
	}{
		{`nil or "x"`, "x"},
		{`"a" or "b"`, "a"},
		{`false or nil`, "nil"},
		{`1 and 2`, "2"},
		{`nil and 2`, "nil"},
		{`false and 2`, "false"},
		{`0 and "zero"`, "zero"},
		{`nil or false or 3`, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			stdout, _, _ := runProgram(t, "print "+tt.expr+";")
			be.Equal(t, stdout, tt.expected+"\n")
		})
	}
}

func TestLogicalOperatorsShortCircuit(t *testing.T) {
	source := `
var calls = 0;
fun touch(v) { calls = calls + 1; return v; }
print false and touch(true);
print true or touch(false);
print calls;
print true and touch("right");
print calls;
// The right side would fail if it ran.
print true or undefined;
print false and undefined();`
	stdout, stderr, _ := runProgram(t, source)
	be.Equal(t, stderr, "")
	be.Equal(t, stdout, "false\ntrue\n0\nright\n1\ntrue\nfalse\n")
}

func TestComparisonNeedsNumbers(t *testing.T) {
	tests := []string{`1 < "2"`, `"a" < "b"`, `nil >= 1`, `true > false`}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, stderr, runner := runProgram(t, "print "+expr+";")
			be.Equal(t, stderr, "Operands must be numbers.\n[line 1]\n")
			be.Equal(t, runner.ExitCode(), ExitSoftware)
		})
	}
}

func TestNaNEqualsItself(t *testing.T) {
	be.Equal(t, isEqual(math.NaN(), math.NaN()), true)
	be.Equal(t, isEqual(math.NaN(), 1.0), false)
	be.Equal(t, isEqual(math.Inf(1), math.Inf(1)), true)

	source := `
var inf = 1;
while (inf < inf * 10) inf = inf * 10;
var nan = inf - inf;
print nan;
print nan == nan;
print nan != nan;
print nan == 0;`
	stdout, stderr, _ := runProgram(t, source)
	be.Equal(t, stderr, "")
	be.Equal(t, stdout, "NaN\ntrue\nfalse\nfalse\n")
}
