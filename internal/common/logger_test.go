package common

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		name   string
		format string
		level  slog.Level
	}{
		{name: "json handler", format: "json", level: slog.LevelWarn},
		{name: "text handler", format: "console", level: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, SetupLogger(tt.level, tt.format))

			ctx := context.Background()
			assert.True(t, slog.Default().Enabled(ctx, tt.level))
			assert.False(t, slog.Default().Enabled(ctx, tt.level-1),
				"levels below the configured one stay disabled")
		})
	}
}
