//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of entropy requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/entropy` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "For a terminal front end use `go run ./cmd/entropy-term`.")
	os.Exit(2)
}
