// Command lapreport compares two recorded laps by geographic location
// and renders the result as charts, a sqlite-backed API, or both.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/banshee-data/lap.report/internal/api"
	"github.com/banshee-data/lap.report/internal/chart"
	"github.com/banshee-data/lap.report/internal/config"
	"github.com/banshee-data/lap.report/internal/db"
	"github.com/banshee-data/lap.report/internal/lap"
	"github.com/banshee-data/lap.report/internal/units"
	"github.com/banshee-data/lap.report/internal/version"
)

var (
	refPath    = flag.String("ref", "", "CSV file for the reference lap (lat,lon,speed)")
	otherPath  = flag.String("lap", "", "CSV file for the lap to compare against the reference")
	dbPath     = flag.String("db", "laps.db", "Path to the sqlite lap store")
	speedUnits = flag.String("units", units.KPH, "Speed units for output (mps, mph, kmph, kph)")
	htmlPath   = flag.String("html", "", "Write the comparison report to this HTML file")
	pngDir     = flag.String("png-dir", "", "Write speed and distance PNGs into this directory")
	listen     = flag.String("listen", "", "Listen address for serve mode (e.g. :8080)")
	noStore    = flag.Bool("no-store", false, "Skip recording laps and the comparison in the lap store")
	configPath = flag.String("config", "", "JSON config file providing defaults for the other flags")
	showVer    = flag.Bool("version", false, "Print version information and exit")
)

const migrationsDir = "internal/db/migrations"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("lapreport", version.String())
		return
	}

	if *configPath != "" {
		applyConfig(*configPath)
	}

	// The migrate subcommand manages the schema itself, so it bypasses
	// the normal store open. Invoke as: lapreport [-db path] migrate up
	if flag.Arg(0) == "migrate" {
		db.RunMigrateCommand(flag.Args()[1:], *dbPath, migrationsDir)
		return
	}

	if !units.IsValid(*speedUnits) {
		log.Fatalf("Invalid units %q, must be one of: %s", *speedUnits, units.GetValidUnitsString())
	}

	if *listen != "" {
		serve()
		return
	}

	if *refPath == "" || *otherPath == "" {
		flag.Usage()
		log.Fatal("Both -ref and -lap are required in batch mode")
	}

	ref := loadLap(*refPath)
	other := loadLap(*otherPath)

	c, err := lap.Compare(ref, other)
	if err != nil {
		log.Fatalf("Comparison failed: %v", err)
	}

	log.Printf("Compared %q (%d samples) against %q (%d samples) in zone %s",
		c.Reference, ref.Len(), c.Other, other.Len(), c.Zone)
	log.Printf("Reference lap length %.1fm, other lap length %.1fm",
		c.Summary.RefLength, c.Summary.OtherLength)
	log.Printf("Speed delta (other - reference): mean %.2f %s, max %.2f %s, stddev %.2f %s",
		units.ConvertSpeed(c.Summary.MeanDelta, *speedUnits), *speedUnits,
		units.ConvertSpeed(c.Summary.MaxAbsDelta, *speedUnits), *speedUnits,
		units.ConvertSpeed(c.Summary.StdDevDelta, *speedUnits), *speedUnits)

	if *htmlPath != "" {
		writeHTMLReport(c, *htmlPath)
	}
	if *pngDir != "" {
		writePNGs(c, *pngDir)
	}
	if !*noStore {
		recordComparison(ref, other, c)
	}
}

// applyConfig fills in flags the user did not set on the command line
// from the config file. Explicit flags always win.
func applyConfig(path string) {
	cfg, err := config.LoadReportConfig(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["db"] {
		*dbPath = cfg.GetDatabasePath()
	}
	if !set["units"] {
		*speedUnits = cfg.GetUnits()
	}
	if !set["listen"] && cfg.Listen != nil {
		*listen = cfg.GetListen()
	}
	if !set["html"] {
		*htmlPath = cfg.GetHTMLReport()
	}
	if !set["png-dir"] {
		*pngDir = cfg.GetPNGDir()
	}
	if !set["no-store"] {
		*noStore = !cfg.GetStoreComparisons()
	}
}

func loadLap(path string) *lap.Lap {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open lap file: %v", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}

	l, err := lap.ReadCSV(f, name)
	if err != nil {
		log.Fatalf("Failed to read lap: %v", err)
	}
	return l
}

func writeHTMLReport(c *lap.Comparison, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create report file: %v", err)
	}
	defer f.Close()

	if err := chart.WriteReport(f, c, *speedUnits); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	log.Printf("Wrote HTML report to %s", path)
}

func writePNGs(c *lap.Comparison, dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create PNG directory: %v", err)
	}
	speedPath := filepath.Join(dir, "speed.png")
	if err := chart.SaveSpeedPNG(c, *speedUnits, speedPath); err != nil {
		log.Fatalf("Failed to write speed PNG: %v", err)
	}
	distPath := filepath.Join(dir, "distance.png")
	if err := chart.SaveDistancePNG(c, distPath); err != nil {
		log.Fatalf("Failed to write distance PNG: %v", err)
	}
	log.Printf("Wrote %s and %s", speedPath, distPath)
}

func recordComparison(ref, other *lap.Lap, c *lap.Comparison) {
	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open lap store: %v", err)
	}
	defer database.Close()

	refID, err := database.SaveLap(ref, *refPath, c.Zone, c.Summary.RefLength)
	if err != nil {
		log.Fatalf("Failed to store reference lap: %v", err)
	}
	otherID, err := database.SaveLap(other, *otherPath, c.Zone, c.Summary.OtherLength)
	if err != nil {
		log.Fatalf("Failed to store other lap: %v", err)
	}
	id, err := database.RecordComparison(refID, otherID, c.Summary)
	if err != nil {
		log.Fatalf("Failed to record comparison: %v", err)
	}
	log.Printf("Recorded comparison %s (laps %d, %d) in %s", id, refID, otherID, *dbPath)
}

func serve() {
	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open lap store: %v", err)
	}
	defer database.Close()

	server := api.NewServer(database, *speedUnits)
	mux := server.ServeMux()
	database.AttachAdminRoutes(mux)

	log.Printf("lapreport %s serving on %s (store %s)", version.String(), *listen, *dbPath)
	if err := http.ListenAndServe(*listen, api.LoggingMiddleware(mux)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage: lapreport [flags]
       lapreport migrate <up|down|status|force>

Compare two laps recorded over the same course by matching each
reference sample to the geographically closest sample of the other lap.

Flags:
`)
		flag.PrintDefaults()
	}
}
