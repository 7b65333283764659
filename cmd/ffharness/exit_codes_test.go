package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/giantswarm/ffharness"
	"github.com/giantswarm/ffharness/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":                 {err: nil, want: ExitSuccess},
		"usage":               {err: usageErrorf("bad flag"), want: ExitUsage},
		"config not found":    {err: fmt.Errorf("load: %w", config.ErrConfigNotFound), want: ExitUsage},
		"config parse":        {err: config.ErrConfigParse, want: ExitUsage},
		"config invalid":      {err: config.ErrConfigInvalid, want: ExitUsage},
		"config too large":    {err: config.ErrConfigTooLarge, want: ExitUsage},
		"missing file":        {err: fmt.Errorf("open: %w", os.ErrNotExist), want: ExitIO},
		"permission":          {err: os.ErrPermission, want: ExitIO},
		"prefs not found":     {err: ffharness.ErrPrefsNotFound, want: ExitIO},
		"template not found":  {err: ffharness.ErrTemplateNotFound, want: ExitIO},
		"suppressions":        {err: ffharness.ErrSuppressionsNotFound, want: ExitIO},
		"extension id":        {err: ffharness.ErrExtensionID, want: ExitIO},
		"unknown extension":   {err: ffharness.ErrUnknownExtension, want: ExitIO},
		"duplicate extension": {err: ffharness.ErrDuplicateExtension, want: ExitIO},
		"canceled":            {err: context.Canceled, want: ExitFailure},
		"other":               {err: errors.New("boom"), want: ExitFailure},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tc.err); got != tc.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
