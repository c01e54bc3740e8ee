package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	dma "github.com/tinygo-org/stm32dma/stm32f4-dma"
	"github.com/tinygo-org/stm32dma/stm32f4-dma/dmasim"
)

var flagByName = map[string]dma.Flag{
	"tc":  dma.FlagTransferComplete,
	"ht":  dma.FlagHalfTransfer,
	"te":  dma.FlagTransferError,
	"dme": dma.FlagDirectModeError,
	"fe":  dma.FlagFifoError,
}

func parseFlags(names []string) (f dma.Flag, err error) {
	for _, name := range names {
		bit, ok := flagByName[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown flag %q", name)
		}
		f |= bit
	}
	return f, nil
}

func newRaiseCmd() *cobra.Command {
	var (
		controller uint8
		stream     uint8
		names      []string
		once       bool
	)
	cmd := &cobra.Command{
		Use:   "raise",
		Short: "Raise stream conditions and print the latched flags.",
		Long: "`raise --controller C --stream S --flag tc --flag ht` enables " +
			"all interrupts of the stream, raises the conditions and prints " +
			"what the dispatcher latched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if controller < 1 || controller > dma.NumControllers {
				return fmt.Errorf("controller must be 1 or 2, not %d", controller)
			}
			if stream >= dma.StreamsPerController {
				return fmt.Errorf("stream must be 0..7, not %d", stream)
			}
			f, err := parseFlags(names)
			if err != nil {
				return err
			}

			sim := dmasim.New()
			c := dma.ControllerID(controller - 1)
			s := sim.Driver().Stream(c, stream)
			if err := s.Configure(dma.StreamConfig{Interrupts: dma.FlagAll}); err != nil {
				return err
			}
			if once {
				sim.Pend(c, stream, f)
				sim.Interrupt(c, stream)
			} else {
				sim.Raise(c, stream, f)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v: latched %v, pending %#x\n",
				s, s.Flags().Flag(), sim.Pending(c, stream))
			return nil
		},
	}
	cmd.Flags().Uint8Var(&controller, "controller", 1, "DMA controller, 1 or 2")
	cmd.Flags().Uint8Var(&stream, "stream", 0, "stream index, 0..7")
	cmd.Flags().StringSliceVar(&names, "flag", nil, "condition to raise: tc, ht, te, dme or fe")
	cmd.Flags().BoolVar(&once, "once", false, "run the dispatcher a single time")
	return cmd
}
