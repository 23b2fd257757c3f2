package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/aouyang1/go-multitool"
	"github.com/aouyang1/go-multitool/config"
	"github.com/aouyang1/go-multitool/dashboard"
	"github.com/aouyang1/go-multitool/electric"
	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
)

const version = "0.1.0"

var ErrUnknownCommand = errors.New("unknown command")

const usage = `multitool — electricity estimate, marks and PG rent prediction, career guidance

Usage:
  multitool serve [--config multitool.yaml] [--addr :8501]
  multitool render --mode marks --query "hours=6" --out marks.html
  multitool estimate --rooms 2 --halls 1 --room-area 120 --hall-area 180 --wire "1.5 mm"
  multitool predict-marks --hours 5
  multitool predict-rent --persons 2 --ac=false --food
  multitool careers --subject physics
  multitool model --mode pg-rent [--table]
  multitool version

Every command accepts --config to load regression settings from a file.
Run "multitool <command> --help" for the flags of a command.

Environment:
  MULTITOOL_ADDR, MULTITOOL_LOG_LEVEL, MULTITOOL_LOG_FORMAT, MULTITOOL_METRICS_ENABLED, ...
  Any config key, upper cased with dots replaced by underscores.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command in args and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "serve":
		err = serve(ctx, rest, stderr)
	case "render":
		err = render(rest, stdout)
	case "estimate":
		err = estimate(rest, stdout)
	case "predict-marks":
		err = predictMarks(rest, stdout)
	case "predict-rent":
		err = predictRent(rest, stdout)
	case "careers":
		err = careers(rest, stdout)
	case "model":
		err = model(rest, stdout)
	case "version", "--version":
		fmt.Fprintf(stdout, "multitool %s\n", version)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
	default:
		err = fmt.Errorf("%q, %w", cmd, ErrUnknownCommand)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, ErrUnknownCommand):
		fmt.Fprintf(stderr, "Error: %v\n\n%s", err, usage)
		return 2
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func newFlagSet(name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	cfgPath := fs.String("config", "", "path to a config file")
	return fs, cfgPath
}

func loadToolkit(cfgPath string) (*multitool.Toolkit, error) {
	cfg, err := config.Load(cfgPath, nil)
	if err != nil {
		return nil, err
	}
	return multitool.New(cfg.ToolkitOptions())
}

func serve(ctx context.Context, args []string, stderr io.Writer) error {
	fs, cfgPath := newFlagSet("serve")
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath, fs)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}

	tk, err := multitool.New(cfg.ToolkitOptions())
	if err != nil {
		return err
	}
	logger.Info("fit predictors",
		"marks", tk.MarksPredictor().ModelEq(),
		"pg_rent", tk.RentPredictor().ModelEq(),
	)

	srv, err := dashboard.New(tk, cfg.DashboardOptions(), logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func render(args []string, stdout io.Writer) error {
	fs, cfgPath := newFlagSet("render")
	modeStr := fs.String("mode", string(multitool.ModeElectricity), "tool to render, one of electricity, marks, pg-rent, careers")
	query := fs.String("query", "", `page inputs as a url query, e.g. "persons=2&ac=non-ac"`)
	out := fs.String("out", "", "write the page to a file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mode, err := multitool.ParseMode(*modeStr)
	if err != nil {
		return err
	}
	q, err := url.ParseQuery(*query)
	if err != nil {
		return fmt.Errorf("unable to parse query %q, %w", *query, err)
	}
	tk, err := loadToolkit(*cfgPath)
	if err != nil {
		return err
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("unable to create %s, %w", *out, err)
		}
		defer f.Close()
		w = f
	}
	return dashboard.Render(w, tk, mode, q)
}

func estimate(args []string, stdout io.Writer) error {
	def := electric.NewDefaultInputs()
	fs, cfgPath := newFlagSet("estimate")
	rooms := fs.Int("rooms", def.Rooms, "number of rooms")
	halls := fs.Int("halls", def.Halls, "number of halls")
	roomArea := fs.Float64("room-area", def.RoomArea, "average area of a room in sq. ft.")
	hallArea := fs.Float64("hall-area", def.HallArea, "average area of a hall in sq. ft.")
	wire := fs.String("wire", string(def.Gauge), "wire thickness, one of 1.0 mm, 1.5 mm, 2.5 mm, 4.0 mm")
	pretty := fs.Bool("pretty", false, "indent the json output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	gauge, err := electric.ParseWireGauge(*wire)
	if err != nil {
		return err
	}
	tk, err := loadToolkit(*cfgPath)
	if err != nil {
		return err
	}
	res, err := tk.EstimateElectricity(electric.Inputs{
		Rooms:    *rooms,
		Halls:    *halls,
		RoomArea: *roomArea,
		HallArea: *hallArea,
		Gauge:    gauge,
	})
	if err != nil {
		return err
	}
	return writeJSON(stdout, res, *pretty)
}

func predictMarks(args []string, stdout io.Writer) error {
	fs, cfgPath := newFlagSet("predict-marks")
	hours := fs.Float64("hours", dashboard.DefaultStudyHours, "daily study hours")
	pretty := fs.Bool("pretty", false, "indent the json output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tk, err := loadToolkit(*cfgPath)
	if err != nil {
		return err
	}
	res, err := tk.PredictMarks(*hours)
	if err != nil {
		return err
	}
	return writeJSON(stdout, res, *pretty)
}

func predictRent(args []string, stdout io.Writer) error {
	fs, cfgPath := newFlagSet("predict-rent")
	persons := fs.Int("persons", multitool.MinPersons, "persons sharing the room")
	ac := fs.Bool("ac", true, "air conditioned room")
	food := fs.Bool("food", true, "food included")
	pretty := fs.Bool("pretty", false, "indent the json output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tk, err := loadToolkit(*cfgPath)
	if err != nil {
		return err
	}
	res, err := tk.PredictRent(multitool.RentInputs{Persons: *persons, AC: *ac, Food: *food})
	if err != nil {
		return err
	}
	return writeJSON(stdout, res, *pretty)
}

func careers(args []string, stdout io.Writer) error {
	fs, cfgPath := newFlagSet("careers")
	subject := fs.String("subject", "", "favourite subject")
	pretty := fs.Bool("pretty", false, "indent the json output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tk, err := loadToolkit(*cfgPath)
	if err != nil {
		return err
	}
	return writeJSON(stdout, tk.Careers(*subject), *pretty)
}

func model(args []string, stdout io.Writer) error {
	fs, cfgPath := newFlagSet("model")
	modeStr := fs.String("mode", string(multitool.ModeMarks), "regression tool, marks or pg-rent")
	table := fs.Bool("table", false, "print a table instead of json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mode, err := multitool.ParseMode(*modeStr)
	if err != nil {
		return err
	}
	tk, err := loadToolkit(*cfgPath)
	if err != nil {
		return err
	}

	m := tk.MarksPredictor().Model()
	switch mode {
	case multitool.ModeMarks:
	case multitool.ModeRent:
		m = tk.RentPredictor().Model()
	default:
		return fmt.Errorf("%s has no regression model", mode)
	}

	if *table {
		return m.TablePrint(stdout, "", "  ")
	}
	return m.Encode(stdout)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	var bytes []byte
	var err error
	if pretty {
		bytes, err = json.MarshalIndent(v, "", "  ")
	} else {
		bytes, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("unable to marshal output, %w", err)
	}
	_, err = w.Write(append(bytes, '\n'))
	return err
}
