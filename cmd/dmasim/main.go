// Command dmasim runs the STM32F4 DMA driver against the simulated
// controllers of package dmasim.
//
// Settings are read from the environment, and from a .env file in the
// working directory if there is one:
//
//	DMASIM_LOG_LEVEL  debug, info, warn or error (default warn)
//	DMASIM_TIMEOUT    timeout of memory to memory transfers (default 1s)
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
