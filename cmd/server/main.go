// Package main is the entry point for the arena server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-arena",
	Short: "Turn-based arena fights in the browser",
	Long:  `rpg-arena serves a browser arena where a chosen hero fights a computer-controlled enemy.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
