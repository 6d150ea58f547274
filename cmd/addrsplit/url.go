package main

import (
	addrsplit "github.com/elliotwutingfeng/go-addrsplit"
	"github.com/spf13/cobra"
)

func (a *app) newURLCommand() *cobra.Command {
	o := &parseOptions{}
	c := &cobra.Command{
		Use:   "url [urls...]",
		Short: "Splits URLs into scheme, subdomain, second level domain, top level domain, port, path, query and fragment",
		Example: "  addrsplit url https://www.example.gov.bs:7105/directory?docid=720#dayone\n" +
			"  addrsplit url -i urls.txt.gz -f json --offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			inputs, err := a.readInputs(args, o)
			if err != nil {
				return err
			}

			tlds := a.loadTLDs(cmd.Context())
			addrsplit.PrefixedLog("cli").WithField("version", tlds.Version()).
				Debugf("using %d TLDs", tlds.Len())

			var results *addrsplit.Results[addrsplit.URLRecord]
			if o.concurrent() {
				results, err = addrsplit.ParseURLsConcurrent(cmd.Context(), inputs, tlds, o.workers)
			} else {
				results, err = addrsplit.ParseURLs(inputs, tlds)
			}
			if err != nil {
				return err
			}

			return render(a, cmd, o, results, addrsplit.PrintURL)
		},
	}
	addParseFlags(c, o)
	a.addTLDSourceFlags(c)

	return c
}
