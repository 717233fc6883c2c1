// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var isbnCmd = &cobra.Command{
	Use:   "isbn ISBN",
	Short: "Resolve an ISBN to a BibTeX book entry",
	Long: `isbn looks the ISBN up on Google Books and builds a book entry from the
first match. ISBN-10 and ISBN-13 are accepted, with or without hyphens and
an "isbn" prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runISBN,
}

func init() {
	isbnCmd.Flags().Bool("plain", false, "print the entry as plain text, for piping to other programs")

	rootCmd.AddCommand(isbnCmd)
}

func runISBN(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")

	router, err := buildRouter()
	if err != nil {
		return err
	}
	entry := router.ResolveISBN(cmd.Context(), args[0])
	printEntry(cmd.OutOrStdout(), args[0], entry, plain, loadedConfig.PygmentsTheme)
	return nil
}
