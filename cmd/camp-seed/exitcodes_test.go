package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/camp-sdk/modules/camp/services/pipeline"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"roster missing", pipeline.ErrRosterMissing, exitValidation},
		{"bad workbook", fmt.Errorf("%w: open data.xlsx: no such file", pipeline.ErrInput), exitUsage},
		{"write failure", fmt.Errorf("%w: Payments: %w", pipeline.ErrStore, context.DeadlineExceeded), exitDBWrite},
		{"unexpected", errors.New("boom"), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, exitCode(classify(tc.err)))
		})
	}
}

func TestWithCode_KeepsMessageAndChain(t *testing.T) {
	require.NoError(t, withCode(exitDB, nil))

	err := withCode(exitDB, fmt.Errorf("ping database: %w", context.Canceled))
	require.Equal(t, "ping database: context canceled", err.Error())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, exitDB, exitCode(fmt.Errorf("wrapped: %w", err)))
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	require.Error(t, cmd.Execute())
}
