package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/aviasearch/internal/app"
	"github.com/dharmasatrya/aviasearch/internal/config"
	"github.com/dharmasatrya/aviasearch/internal/models"
)

type searchFlags struct {
	origin      string
	destination string
	depart      string
	ret         string
	adults      int
	children    int
	infants     int
	tripClass   string
	raw         bool
}

func (f searchFlags) request() (models.SearchRequest, error) {
	req := models.SearchRequest{
		Directions: []models.Direction{
			{Origin: f.origin, Destination: f.destination, Date: f.depart},
		},
		Passengers: models.Passengers{Adults: f.adults, Children: f.children, Infants: f.infants},
		TripClass:  f.tripClass,
	}
	if f.ret != "" {
		req.Directions = append(req.Directions, models.Direction{
			Origin: f.destination, Destination: f.origin, Date: f.ret,
		})
	}
	if err := req.Validate(); err != nil {
		return models.SearchRequest{}, err
	}
	return req, nil
}

func searchCMD() *cobra.Command {
	var cfgPath string
	var flags searchFlags
	var cmd = &cobra.Command{
		Use:   "search",
		Short: "Run one search and print the summary as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg.Server.CacheEnabled = false

			a, err := app.New(cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)

			if flags.raw {
				out, err := a.Searcher.SearchRaw(ctx, req)
				if err != nil {
					return err
				}
				return enc.Encode(out.Raw)
			}

			out, err := a.Searcher.Search(ctx, req)
			if err != nil {
				return err
			}
			return enc.Encode(out.Summary)
		},
	}

	cmd.Flags().StringVar(&flags.origin, "from", "", "origin airport or city code")
	cmd.Flags().StringVar(&flags.destination, "to", "", "destination airport or city code")
	cmd.Flags().StringVar(&flags.depart, "depart", "", "departure date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.ret, "return", "", "return date (YYYY-MM-DD), omit for one-way")
	cmd.Flags().IntVar(&flags.adults, "adults", 1, "adult passengers")
	cmd.Flags().IntVar(&flags.children, "children", 0, "child passengers")
	cmd.Flags().IntVar(&flags.infants, "infants", 0, "infant passengers")
	cmd.Flags().StringVar(&flags.tripClass, "class", "Y", "trip class")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "print the converged backend payload instead of the summary")
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config.*)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("depart")

	return cmd
}
