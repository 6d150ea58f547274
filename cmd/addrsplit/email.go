package main

import (
	addrsplit "github.com/elliotwutingfeng/go-addrsplit"
	"github.com/spf13/cobra"
)

func (a *app) newEmailCommand() *cobra.Command {
	o := &parseOptions{}
	c := &cobra.Command{
		Use:     "email [addresses...]",
		Short:   "Splits email addresses into username, plus address, mail server and domain",
		Example: "  addrsplit email user+news@mail.example.com\n  addrsplit email -i emails.txt -f csv -o emails",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			inputs, err := a.readInputs(args, o)
			if err != nil {
				return err
			}

			var results *addrsplit.Results[addrsplit.EmailRecord]
			if o.concurrent() {
				results, err = addrsplit.ParseEmailsConcurrent(cmd.Context(), inputs, o.workers)
			} else {
				results, err = addrsplit.ParseEmails(inputs)
			}
			if err != nil {
				return err
			}

			return render(a, cmd, o, results, addrsplit.PrintEmail)
		},
	}
	addParseFlags(c, o)

	return c
}
