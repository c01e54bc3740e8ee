package main

import (
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	dma "github.com/tinygo-org/stm32dma/stm32f4-dma"
	"github.com/tinygo-org/stm32dma/stm32f4-dma/dmasim"
)

func newMemcpyCmd(st *settings) *cobra.Command {
	var (
		n                  uint16
		srcWidth, dstWidth uint8
		fixedSrc           bool
	)
	cmd := &cobra.Command{
		Use:   "memcpy",
		Short: "Copy a pattern with a memory to memory transfer.",
		Long: "`memcpy --len N --src-width W --dst-width W` copies N items " +
			"on DMA2 stream 0 and prints the destination buffer.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sim := dmasim.New()
			sim.SetAutoComplete(true)
			ctrl := sim.Driver().Controller(dma.DMA2)
			ctrl.SetTimeout(st.timeout)

			src := pattern(int(n) * itemBytes(srcWidth))
			dst := make([]byte, int(n)*itemBytes(dstWidth))
			err := ctrl.MemoryToMemory(sim.Addr(src), srcWidth, dstWidth, sim.Addr(dst), !fixedSrc, true, n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "src: % x\n", src)
			fmt.Fprintf(cmd.OutOrStdout(), "dst: % x\n", dst)
			return nil
		},
	}
	cmd.Flags().Uint16Var(&n, "len", 10, "number of data items")
	cmd.Flags().Uint8Var(&srcWidth, "src-width", 32, "source item width in bits (8, 16 or 32)")
	cmd.Flags().Uint8Var(&dstWidth, "dst-width", 32, "destination item width in bits (8, 16 or 32)")
	cmd.Flags().BoolVar(&fixedSrc, "fixed-src", false, "read every item from the first source address")
	return cmd
}

// itemBytes mirrors the driver: widths other than 16 and 32 are bytes.
func itemBytes(width uint8) int {
	switch width {
	case 32:
		return 4
	case 16:
		return 2
	}
	return 1
}

func pattern(size int) []byte {
	b := make([]byte, size)
	for i := 0; i+4 <= size; i += 4 {
		binary.LittleEndian.PutUint32(b[i:], 0xc0de0000|uint32(i/4))
	}
	for i := size &^ 3; i < size; i++ {
		b[i] = byte(i)
	}
	return b
}
