package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/0xcro3dile/decaysearch-go/internal/adapters/loader"
	"github.com/0xcro3dile/decaysearch-go/internal/adapters/render"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/ports"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/usecases"
)

// errInvalidQuery reports a query that did not parse; the message was
// already printed.
var errInvalidQuery = errors.New("invalid query")

// searchFlags are shared by search and watch.
type searchFlags struct {
	radiation   string
	onlyMatches bool
	color       string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.radiation, "type", "t", "", "radiation type: gamma or alpha (default from config)")
	cmd.Flags().BoolVarP(&f.onlyMatches, "only-matches", "m", false, "list matched transitions only")
	cmd.Flags().StringVar(&f.color, "color", "auto", "highlight reports: auto, always or never")
}

// request builds a search request, applying flags over configured defaults.
func (f *searchFlags) request(opts *rootOptions, query string) (usecases.SearchRequest, error) {
	req := opts.app.Request(query)
	if f.radiation != "" {
		r, err := entities.ParseRadiationType(f.radiation)
		if err != nil {
			return req, err
		}
		req.Radiation = r
	}
	if f.onlyMatches {
		req.PrintMode = entities.OnlyMatches
	}
	return req, nil
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		flags searchFlags
		file  string
	)

	cmd := &cobra.Command{
		Use:   "search [energy...]",
		Short: "Search decays explaining the given energies",
		Long: `Search decays explaining the given energies.

Each argument is one query line. Without arguments the query is read from
--file, or from standard input.`,
		Example: `  decaysearch search "661.7 keV 1%"
  decaysearch search --type alpha "5.49 MeV 0.5%"
  decaysearch search --file sample.query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			highlighter, err := newHighlighter(cmd, flags.color)
			if err != nil {
				return err
			}

			query, err := readQuery(cmd.Context(), cmd.InOrStdin(), file, args)
			if err != nil {
				return err
			}
			req, err := flags.request(opts, query)
			if err != nil {
				return err
			}
			return runSearch(cmd.Context(), opts, cmd.OutOrStdout(), highlighter, req)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the query from a file (.txt, .query, .md)")
	return cmd
}

func newHighlighter(cmd *cobra.Command, color string) (*render.Highlighter, error) {
	mode, err := render.ParseColorMode(color)
	if err != nil {
		return nil, err
	}
	return render.NewHighlighter(cmd.OutOrStdout(), mode), nil
}

func readQuery(ctx context.Context, stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case len(args) > 0 && file != "":
		return "", errors.New("use either arguments or --file, not both")
	case len(args) > 0:
		return strings.Join(args, "\n"), nil
	case file != "":
		return loader.NewMultiLoader().Load(ctx, file)
	default:
		return loader.ReadQuery(stdin)
	}
}

func runSearch(ctx context.Context, opts *rootOptions, out io.Writer, h *render.Highlighter, req usecases.SearchRequest) error {
	resp := opts.app.Search.Run(ctx, req)

	text := resp.Text
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	fmt.Fprint(out, h.Render(text))

	if resp.Outcome == ports.OutcomeInvalidQuery {
		return errInvalidQuery
	}
	return nil
}
