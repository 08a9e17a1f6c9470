package main

import (
	"github.com/walletkeep/walletkeep/cmd"
)

func main() {
	cmd.Execute()
}
