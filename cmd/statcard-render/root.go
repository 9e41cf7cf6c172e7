package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/dalemusser/statcard/internal/app/features/statcard"
	"github.com/dalemusser/statcard/internal/app/system/chartengine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type renderOptions struct {
	title       string
	labels      string
	values      string
	highlight   string
	sum         float64
	background  string
	format      string
	renderer    string
	interactive bool
	size        int
	out         string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "statcard-render",
		Short: "Render a donut-chart stat card",
		Long: `Render a donut-chart stat card as SVG, chart JSON, an HTML fragment or a full page.

Labels and values are comma separated. A blank or non-numeric value is shown
as a blank badge and drawn as an empty slice. Omitted labels or values fall
back to the sample data.

Any flag can also be set in a YAML card file passed with --config; flags
given on the command line win. labels and values may be YAML lists there.

Examples:
  # Ring only
  statcard-render --labels "New,Ordered,Quoted" --values 282,132,124 --format svg

  # Card fragment with a missing value
  statcard-render --title "Summary of RFQs" --labels A,B --values ,5 \
    --highlight "# Invoice" --sum 747 --format fragment --out card.html

  # Card described in a file
  statcard-render -c rfqs.yaml --format html -o rfqs.html`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read card file: %w", err)
				}
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), optionsFrom(v))
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML card file")

	f := cmd.Flags()
	f.String("title", "Summary of RFQs", "card title")
	f.String("labels", "", "comma separated slice labels (max 6)")
	f.String("values", "", "comma separated slice values (max 6)")
	f.String("highlight", "# Invoice", "label shown in the ring centre")
	f.Float64("sum", 0, "number shown in the ring centre")
	f.String("bg", statcard.DefaultBackgroundURL, "card background image URL")
	f.StringP("format", "f", statcard.FormatSVG, "output format: svg, json, fragment or html")
	f.String("renderer", statcard.RendererSVG, "ring renderer for fragment/html: svg or chartjs")
	f.Bool("interactive", false, "let the card receive pointer events")
	f.Int("size", chartengine.DefaultSize, "SVG width and height in pixels")
	f.StringP("out", "o", "", "write to this file instead of stdout")
	f.BoolP("verbose", "v", false, "log chart registration to stderr")

	_ = v.BindPFlags(f)

	return cmd
}

// optionsFrom reads the merged flag and card-file settings.
func optionsFrom(v *viper.Viper) renderOptions {
	return renderOptions{
		title:       v.GetString("title"),
		labels:      listValue(v, "labels"),
		values:      listValue(v, "values"),
		highlight:   v.GetString("highlight"),
		sum:         v.GetFloat64("sum"),
		background:  v.GetString("bg"),
		format:      v.GetString("format"),
		renderer:    v.GetString("renderer"),
		interactive: v.GetBool("interactive"),
		size:        v.GetInt("size"),
		out:         v.GetString("out"),
		verbose:     v.GetBool("verbose"),
	}
}

// listValue accepts a comma separated string or a YAML list. Null list
// entries become blanks so they stay absent values.
func listValue(v *viper.Viper, key string) string {
	items, ok := v.Get(key).([]any)
	if !ok {
		return v.GetString(key)
	}
	parts := make([]string, len(items))
	for i, item := range items {
		if item != nil {
			parts[i] = fmt.Sprint(item)
		}
	}
	return strings.Join(parts, ",")
}

// propsFromOptions reuses the query-string reader so flags and URLs share
// the same parsing and defaults.
func propsFromOptions(opts renderOptions) statcard.Props {
	q := url.Values{}
	q.Set("title", opts.title)
	q.Set("labels", opts.labels)
	q.Set("dataValues", opts.values)
	q.Set("activePrLabel", opts.highlight)
	q.Set("sumLabel", strconv.FormatFloat(opts.sum, 'f', -1, 64))
	q.Set("graphbgurl", opts.background)
	q.Set("interactive", strconv.FormatBool(opts.interactive))
	return statcard.PropsFromQuery(q)
}

func runRender(ctx context.Context, stdout io.Writer, opts renderOptions) error {
	switch opts.renderer {
	case statcard.RendererSVG, statcard.RendererChartJS:
	default:
		return fmt.Errorf("--renderer must be %q or %q", statcard.RendererSVG, statcard.RendererChartJS)
	}
	if opts.size <= 0 {
		return fmt.Errorf("--size must be positive, got %d", opts.size)
	}

	logger := zap.NewNop()
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()
		logger = l
	}

	registry := chartengine.NewRegistry()
	h := statcard.NewHandler(nil,
		statcard.NewRegistration(registry, logger),
		chartengine.NewRenderer(registry, opts.size),
		statcard.Config{
			Renderer:             opts.renderer,
			DefaultBackgroundURL: statcard.DefaultBackgroundURL,
			Interactive:          opts.interactive,
		},
		nil, logger)

	w := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := h.Write(ctx, w, propsFromOptions(opts), opts.format); err != nil {
		return fmt.Errorf("render %s: %w", opts.format, err)
	}
	return nil
}
