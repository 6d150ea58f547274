package main

import (
	"fmt"
	"time"

	addrsplit "github.com/elliotwutingfeng/go-addrsplit"
	"github.com/spf13/cobra"
)

const defaultTLDFileBaseName = "tld"

func (a *app) newTLDCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "tld",
		Short: "Top level domain list operations",
	}

	c.AddCommand(a.newTLDSaveCommand(), a.newTLDShowCommand())

	return c
}

func (a *app) newTLDSaveCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "save [base name]",
		Short: "Saves the top level domain list to <base name>.txt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseName := defaultTLDFileBaseName
			if len(args) == 1 {
				baseName = args[0]
			}
			name := baseName + ".txt"

			tlds := a.loadTLDs(cmd.Context())
			if err := addrsplit.WriteTLDFile(a.fs, name, tlds, time.Now()); err != nil {
				return fmt.Errorf("can't write TLD file: %w", err)
			}
			addrsplit.PrefixedLog("cli").WithField("path", name).Infof("%d TLDs saved", tlds.Len())

			return nil
		},
	}
	a.addTLDSourceFlags(c)

	return c
}

func (a *app) newTLDShowCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "show",
		Short: "Shows version and size of the top level domain list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tlds := a.loadTLDs(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\ncount: %d\n", tlds.Version(), tlds.Len())

			return nil
		},
	}
	a.addTLDSourceFlags(c)

	return c
}
