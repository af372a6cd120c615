package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"dhpipe/calculator"
	"dhpipe/report"
	"dhpipe/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	var confPath string
	flag.StringVar(&confPath, "c", "conf/config.ini", "ini file with the run configuration")

	var outDir string
	flag.StringVar(&outDir, "o", "", "output folder for outlet.csv and profile.csv")

	var withPlot bool
	flag.BoolVar(&withPlot, "plot", false, "also write outlet.png to the output folder")

	var addr string
	flag.StringVar(&addr, "serve", "", "serve simulations over websocket on this address instead of running once")

	flag.Parse()

	file, err := ini.LooseLoad(confPath)
	if err != nil {
		log.Fatal("read config: ", err)
	}
	if lvl, err := log.ParseLevel(file.Section("log").Key("Level").MustString("info")); err == nil {
		log.SetLevel(lvl)
	}

	if _, err := os.Stat(confPath); err != nil {
		log.Warn("config file not found, using the reference case: ", confPath)
	}
	cfg, err := calculator.ParseConfig(file)
	if err != nil {
		log.Fatal(err)
	}

	if addr != "" {
		serve(addr, cfg, file.Section("server"))
		return
	}

	res, err := calculator.Simulate(context.Background(), cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	sum := res.Summary()
	log.WithFields(log.Fields{
		"outlet":   sum.Outlet,
		"min":      sum.Min,
		"max":      sum.Max,
		"heatLoss": sum.HeatLoss,
	}).Info("outlet temperature")

	if outDir == "" {
		return
	}
	if err := writeOutputs(outDir, res, withPlot); err != nil {
		log.Fatal(err)
	}
}

func serve(addr string, cfg calculator.Config, sec *ini.Section) {
	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	metrics, err := server.NewMetrics(nil)
	if err != nil {
		log.Fatal(err)
	}
	opts := server.Options{
		PushEvery: sec.Key("PushEvery").MustInt(100),
		MaxPoints: sec.Key("MaxPoints").MustInt(1000),
		MaxCells:  sec.Key("MaxCells").MustInt(1 << 22),
	}
	s := server.NewServer(addr, upgrader, cfg, opts, metrics)
	log.Fatal(s.Serve())
}

func writeOutputs(dir string, res *calculator.Result, withPlot bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	err := writeFile(filepath.Join(dir, "outlet.csv"), func(w io.Writer) error {
		return report.WriteOutletCSV(w, res.Field)
	})
	if err != nil {
		return err
	}
	err = writeFile(filepath.Join(dir, "profile.csv"), func(w io.Writer) error {
		return report.WriteProfileCSV(w, res.Field, res.Config.Boundary.Length, res.Field.Steps())
	})
	if err != nil {
		return err
	}

	if withPlot {
		if err := report.SaveOutletPlot(filepath.Join(dir, "outlet.png"), res); err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{"dir": dir, "plot": withPlot}).Info("results written")
	return nil
}

// writeFile creates path, fills it with write and reports a failed close.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
