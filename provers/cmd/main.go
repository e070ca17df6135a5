package main

import (
	"os"

	"github.com/kysee/bls-sigs-go/provers"
	"github.com/kysee/bls-sigs-go/provers/types"
)

func main() {
	//relayer.RelayerMain(types.NewConfig(os.Args...))

	relayer.ListenerMain(types.NewConfig(os.Args...))
}
