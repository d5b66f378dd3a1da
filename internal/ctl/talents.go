package ctl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/talentdesk/internal/apiclient"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/spf13/cobra"
)

func newTalentsCommand(o *options) *cobra.Command {
	var (
		apiURL = envOr(envAPIURL, "http://localhost:3000")
		token  = envOr(envToken, "")
	)

	cmd := &cobra.Command{
		Use:   "talents",
		Short: "Talent operations against a running server",
	}
	cmd.PersistentFlags().StringVar(&apiURL, "api-url", apiURL, "API base URL (env "+envAPIURL+")")
	cmd.PersistentFlags().StringVar(&token, "token", token, "bearer token (env "+envToken+")")

	var (
		page, limit int
		sort, out   string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List talents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return errors.New("--token is required")
			}
			c := apiclient.New(apiURL, token, apiclient.WithHTTPClient(o.httpClient))
			ts, err := c.ListTalents(cmd.Context(), page, limit, sort)
			if err != nil {
				return err
			}
			if out == "json" {
				enc := json.NewEncoder(o.out)
				enc.SetIndent("", "  ")
				return enc.Encode(ts)
			}
			return printTalents(o.out, ts)
		},
	}
	list.Flags().IntVar(&page, "page", 0, "page number, from 1")
	list.Flags().IntVar(&limit, "limit", 0, "page size")
	list.Flags().StringVar(&sort, "sort", "", "sort order: asc or desc")
	list.Flags().StringVar(&out, "out", "text", "output format: text or json")

	cmd.AddCommand(list)
	return cmd
}

func printTalents(w io.Writer, ts []models.Talent) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tSENIORITY\tROL\tESTADO\tLIDER\tMENTOR")
	for _, t := range ts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.NombreYApellido, t.Seniority, t.Rol, t.Estado,
			referenteName(t.ReferenteLider), referenteName(t.ReferenteMentor))
	}
	return tw.Flush()
}

func referenteName(r *models.Referente) string {
	if r == nil {
		return "-"
	}
	return r.NombreYApellido
}
