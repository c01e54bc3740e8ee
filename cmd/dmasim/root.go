package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	dma "github.com/tinygo-org/stm32dma/stm32f4-dma"
)

// settings holds what the environment configures.
type settings struct {
	level   slog.Level
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	var st settings
	root := &cobra.Command{
		Use:   "dmasim",
		Short: "Drive the STM32F4 DMA driver on simulated hardware.",
		Long: `dmasim runs the DMA driver against two simulated DMA ` +
			`controllers. It copies memory with the memory to memory ` +
			`transfer and raises stream conditions to show how the ` +
			`interrupt dispatcher latches them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			st, err = loadSettings(".env")
			if err != nil {
				return err
			}
			dma.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
				&slog.HandlerOptions{Level: st.level})))
			return nil
		},
	}
	root.AddCommand(newMemcpyCmd(&st), newRaiseCmd())
	return root
}

// loadSettings reads envFile, if it exists, into the environment and parses
// the settings. Variables already set take precedence over the file.
func loadSettings(envFile string) (settings, error) {
	st := settings{level: slog.LevelWarn, timeout: time.Second}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return st, fmt.Errorf("loading %s: %w", envFile, err)
	}
	if v := os.Getenv("DMASIM_LOG_LEVEL"); v != "" {
		if err := st.level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return st, fmt.Errorf("DMASIM_LOG_LEVEL: %w", err)
		}
	}
	if v := os.Getenv("DMASIM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return st, fmt.Errorf("DMASIM_TIMEOUT: %w", err)
		}
		st.timeout = d
	}
	return st, nil
}
