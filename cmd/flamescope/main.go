// Command flamescope loads a pprof profile and either drives the GPU flame
// graph renderer or, with --tui, the terminal UI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
	"github.com/Oloruntobi1/flamescope/internal/classify"
	"github.com/Oloruntobi1/flamescope/internal/config"
	"github.com/Oloruntobi1/flamescope/internal/pprofdecode"
	"github.com/Oloruntobi1/flamescope/internal/profileio"
)

var log zerolog.Logger

func main() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("flamescope failed")
	}
}

// newRootCmd builds the "flamescope" command tree. "diff" (differential
// views across two profiles) is deliberately not a subcommand here: it is
// an explicit Non-goal.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flamescope",
		Short: "Interactive flame graph viewer for pprof profiles",
	}
	root.AddCommand(newViewCmd())
	return root
}

func newViewCmd() *cobra.Command {
	raw := config.Raw{}
	var modulePath string
	var liveURL string
	var refresh time.Duration
	var useTUI bool

	cmd := &cobra.Command{
		Use:   "view [flags] <profile-file-or-url>",
		Short: "Open an interactive flame graph for a pprof profile",
		Long: `view decodes a pprof profile, classifies its metric (CPU time or
heap bytes), and renders an interactive flame graph — either on the GPU
(default) or, with --tui, as a terminal fallback.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw.ModulePath = modulePath
			cfg := config.Resolve(raw, &log)

			var filter calltree.FilterFunc
			if cfg.ShowAppCodeOnly {
				filter = calltree.DefaultGoFilter(cfg.ModulePath)
			}

			if liveURL != "" {
				return runLive(liveURL, refresh, filter, cfg, useTUI)
			}

			if len(args) != 1 {
				return fmt.Errorf("expected exactly one profile path or URL, or --live")
			}

			root, metadata, err := loadTree(args[0], filter)
			if err != nil {
				return err
			}

			sourceInfo := fmt.Sprintf("Source: %s", args[0])
			if useTUI {
				return runTUI(root, metadata, sourceInfo, cfg)
			}
			return runGPU(root, metadata, sourceInfo, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&modulePath, "module-path", "", "module path whose frames --show-app-code-only keeps as application code")
	flags.StringVar(&liveURL, "live", "", "HTTP URL of a live pprof endpoint to poll")
	flags.DurationVar(&refresh, "refresh", 5*time.Second, "refresh interval for --live mode")
	flags.BoolVar(&useTUI, "tui", false, "use the terminal fallback UI instead of the GPU renderer")

	flags.StringVar(&raw.PrimaryColor, "primary-color", "", "hex color for hottest frames")
	flags.StringVar(&raw.SecondaryColor, "secondary-color", "", "hex color for coolest frames")
	flags.StringVar(&raw.BackgroundColor, "background-color", "", "hex clear color")
	flags.StringVar(&raw.TextColor, "text-color", "", "hex frame label color")
	flags.StringVar(&raw.FontFamily, "font-family", "", "path to a TrueType font file")
	flags.Float64Var(&raw.FontSize, "font-size", 0, "frame label font size in px")
	flags.Float64Var(&raw.ShadowOpacity, "shadow-opacity", 0, "text drop shadow opacity (0 keeps the default)")
	flags.Float64Var(&raw.FramePadding, "frame-padding", 0, "vertical/horizontal frame padding in px")
	flags.Float64Var(&raw.SelectedOpacity, "selected-opacity", 0, "opacity of the selected frame")
	flags.Float64Var(&raw.HoverOpacity, "hover-opacity", 0, "opacity of the hovered frame")
	flags.Float64Var(&raw.UnselectedOpacity, "unselected-opacity", 0, "opacity of unselected frames")
	flags.BoolVar(&raw.ZoomOnScroll, "zoom-on-scroll", true, "zoom with the scroll wheel")
	flags.Float64Var(&raw.ScrollZoomSpeed, "scroll-zoom-speed", 0, "scroll wheel zoom speed")
	flags.BoolVar(&raw.ScrollZoomInverted, "scroll-zoom-inverted", false, "invert scroll wheel zoom direction")
	flags.BoolVar(&raw.ShowAppCodeOnly, "show-app-code-only", false, "filter out vendor/stdlib frames")

	return cmd
}

func loadTree(arg string, filter calltree.FilterFunc) (*calltree.Node, classify.Metadata, error) {
	data, err := profileio.Load(arg)
	if err != nil {
		return nil, classify.Metadata{}, err
	}
	profile, err := pprofdecode.Decode(data)
	if err != nil {
		return nil, classify.Metadata{}, fmt.Errorf("decode profile: %w", err)
	}
	metadata := classify.Classify(sampleTypesOf(profile))
	root := calltree.FromProfile(profile, metadata, filter)
	return root, metadata, nil
}

func sampleTypesOf(p *pprofdecode.Profile) []classify.SampleType {
	out := make([]classify.SampleType, len(p.SampleType))
	for i, st := range p.SampleType {
		out[i] = classify.SampleType{Type: p.String(st.Type), Unit: p.String(st.Unit)}
	}
	return out
}

func runLive(url string, refresh time.Duration, filter calltree.FilterFunc, cfg config.Config, useTUI bool) error {
	if useTUI {
		return runTUILive(url, refresh, filter, cfg)
	}

	root, metadata, err := loadTree(url, filter)
	if err != nil {
		log.Warn().Err(err).Msg("initial live fetch failed, starting with an empty profile")
		root = &calltree.Node{}
	}
	sourceInfo := fmt.Sprintf("Live: %s", url)
	return runGPULive(root, metadata, sourceInfo, url, refresh, filter, cfg)
}
