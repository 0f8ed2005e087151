package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimcipher/internal/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFeeCmd_BuiltInFirm(t *testing.T) {
	out, err := execute(t, "fee", "--firm", "sedgwick", "--distance", "40", "--from", "Office", "--to", "Site")
	require.NoError(t, err)
	assert.Equal(t,
		"Mileage: Office→Site = 80 mi − 50 free = 30 billable × $0.67/mi ⇒ $20.10 (Firm: Sedgwick)\n", out)
}

func TestFeeCmd_AdHocPolicy(t *testing.T) {
	out, err := execute(t, "fee", "--free-miles", "50", "--rate", "0.67", "--distance", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "= 20 mi − 50 free = 0 billable")
	assert.Contains(t, out, "⇒ $0.00 (Firm: Custom)")

	out, err = execute(t, "fee", "--free-miles", "50", "--rate", "0.67", "--distance", "25", "--round-trip")
	require.NoError(t, err)
	assert.Contains(t, out, "= 50 mi − 50 free = 0 billable")
}

func TestFeeCmd_RoundTripOverride(t *testing.T) {
	out, err := execute(t, "fee", "--firm", "sedgwick", "--distance", "40", "--round-trip=false")
	require.NoError(t, err)
	assert.Contains(t, out, "= 40 mi − 50 free = 0 billable")
}

func TestFeeCmd_Errors(t *testing.T) {
	_, err := execute(t, "fee", "--rate", "0.67", "--distance", "0")
	assert.True(t, types.IsValidation(err))

	_, err = execute(t, "fee", "--distance", "10")
	assert.True(t, types.IsValidation(err), "ad-hoc policy needs a rate")

	_, err = execute(t, "fee", "--firm", "ghost", "--distance", "10")
	assert.Error(t, err)
}

func TestFirmsCmd(t *testing.T) {
	out, err := execute(t, "firms")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
	assert.Contains(t, out, "Crawford & Company")
}

func TestSplitCmd(t *testing.T) {
	out, err := execute(t, "split", "--max-leg", "50", "--legs", "10,60,15,70", "--minutes", "15,70,20,80")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall: 155.0 miles, 3h 5m\n")
	assert.Contains(t, out, "Days: 3\n")
	assert.Contains(t, out, "Day 2: 75.0 mi, 1h 30m\n  1. Stop 2\n  2. Stop 3\n  3. Stop 4\n")

	out, err = execute(t, "split", "--legs", "10,60", "--no-split")
	require.NoError(t, err)
	assert.Contains(t, out, "Single Day: 70.0 mi, 0h 0m\n")
}

func TestSplitCmd_Errors(t *testing.T) {
	_, err := execute(t, "split", "--legs", "10,abc")
	assert.True(t, types.IsValidation(err))

	_, err = execute(t, "split", "--legs", "10,20", "--minutes", "5")
	assert.True(t, types.IsValidation(err))

	_, err = execute(t, "split", "--legs", "10,-5")
	assert.True(t, types.IsValidation(err))

	_, err = execute(t, "split", "--legs", "10", "--max-leg", "0")
	assert.True(t, types.IsValidation(err))

	_, err = execute(t, "split")
	assert.Error(t, err, "--legs is required")
}
