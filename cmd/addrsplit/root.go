package main

import (
	"context"
	"fmt"
	"os"

	addrsplit "github.com/elliotwutingfeng/go-addrsplit"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands
type app struct {
	fs         afero.Fs
	configPath string
	logLevel   string
	logFormat  string
	cfg        Config

	// TLD source overrides of the url and tld commands
	tldFile string
	offline bool
}

func newRootCommand(fsys afero.Fs) *cobra.Command {
	a := &app{fs: fsys}

	c := &cobra.Command{
		Use:   "addrsplit",
		Short: "addrsplit splits email addresses and URLs into their components",
		Long: `Split email addresses into username, plus address, mail server and domain,
and URLs into scheme, subdomain, second level domain, top level domain,
port, path, query and fragment.

Top level domains are retrieved from IANA and cached locally.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	c.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config file")
	c.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	c.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	c.AddCommand(a.newEmailCommand(), a.newURLCommand(), a.newTLDCommand())

	return c
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.fs, a.configPath)
	if err != nil {
		return err
	}
	if len(a.logLevel) != 0 {
		cfg.Log.Level = a.logLevel
	}
	if len(a.logFormat) != 0 {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg

	return configureLog(cfg.Log, cmd.ErrOrStderr())
}

// addTLDSourceFlags binds the flags overriding the configured TLD source
func (a *app) addTLDSourceFlags(c *cobra.Command) {
	c.Flags().StringVar(&a.tldFile, "tld-file", "", "local TLD file, overrides tld.cacheFilePath")
	c.Flags().BoolVar(&a.offline, "offline", false, "don't download TLDs")
}

// loadTLDs loads the TLD set. It never fails, the fallback TLD set is
// used when no TLD list can be retrieved.
func (a *app) loadTLDs(ctx context.Context) *addrsplit.TLDSet {
	params := a.cfg.TLD
	params.Fs = a.fs
	if len(a.tldFile) != 0 {
		params.CacheFilePath = a.tldFile
	}
	params.Offline = params.Offline || a.offline

	set, err := addrsplit.LoadTLDSet(ctx, params)
	if err != nil {
		addrsplit.PrefixedLog("cli").Warnf("can't retrieve TLDs: %s", err)
	}
	return set
}

// Execute starts the command
func Execute() {
	if err := newRootCommand(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
