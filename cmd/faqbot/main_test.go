package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestAssistantFlags(t *testing.T) {
	flags := assistantFlags()

	findString := func(name string) *cli.StringFlag {
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}

	t.Run("kb is required", func(t *testing.T) {
		kbFlag := findString("kb")
		require.NotNil(t, kbFlag)
		assert.True(t, kbFlag.Required)
		assert.Contains(t, kbFlag.Aliases, "k")
	})

	t.Run("strategy defaults to semantic", func(t *testing.T) {
		strategyFlag := findString("strategy")
		require.NotNil(t, strategyFlag)
		assert.Equal(t, "semantic", strategyFlag.Value)
	})

	t.Run("embedding-host has default value", func(t *testing.T) {
		hostFlag := findString("embedding-host")
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("cache is optional", func(t *testing.T) {
		cacheFlag := findString("cache")
		require.NotNil(t, cacheFlag)
		assert.False(t, cacheFlag.Required)
		assert.Empty(t, cacheFlag.Value)
	})

	t.Run("threshold sentinel means unset", func(t *testing.T) {
		var thresholdFlag *cli.Float64Flag
		for _, flag := range flags {
			if f, ok := flag.(*cli.Float64Flag); ok && f.Name == "threshold" {
				thresholdFlag = f
				break
			}
		}
		require.NotNil(t, thresholdFlag)
		assert.Equal(t, float64(-1), thresholdFlag.Value)
	})
}

func TestAskCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "faqbot",
		Commands: []*cli.Command{
			{
				Name:   "ask",
				Action: askCommand,
				Flags:  assistantFlags(),
			},
		},
	}

	t.Run("missing kb flag fails", func(t *testing.T) {
		err := app.Run([]string{"faqbot", "ask", "hello"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kb")
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
