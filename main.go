package main

import (
	"context"
	"fmt"
	"os"

	flag "github.com/ogier/pflag"

	"github.com/inkrank/doodle/classifier"
	"github.com/inkrank/doodle/config"
	"github.com/inkrank/doodle/labels"
	"github.com/inkrank/doodle/log"
	"github.com/inkrank/doodle/session"
	"github.com/inkrank/doodle/shell"
	"github.com/inkrank/doodle/version"
)

func loadModel(cfg config.Config) (*classifier.Model, error) {
	names := labels.Default()
	if cfg.Classifier.Labels != "" {
		var err error
		names, err = labels.Load(cfg.Classifier.Labels)
		if err != nil {
			return nil, err
		}
	}
	backend := classifier.NewHTTPBackend(cfg.Classifier.URL, cfg.Classifier.Secret, cfg.Classifier.Timeout)
	return classifier.NewModel(backend, names), nil
}

func main() {
	configPath := flag.String("config", "", "path to the yaml configuration")
	serverMode := flag.Bool("server", false, "serve the REST API instead of the shell")
	port := flag.String("port", "8080", "port of the REST API")
	trace := flag.Bool("v", false, "verbose output")
	ni := flag.Bool("ni", false, "not interactive: wait for the classifier and print JSON")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Version)
		return
	}
	if *trace {
		log.EnableTrace()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error.Fatal(err)
	}

	model, err := loadModel(cfg)
	if err != nil {
		log.Error.Fatal(err)
	}
	loaded := model.LoadAsync(context.Background())

	if *serverMode {
		runServerMode(*port, cfg, model)
		return
	}

	args := flag.Args()
	if *ni || len(args) > 0 {
		<-loaded
	}

	sess := session.New(cfg, model, nil)

	ctx := &shell.ShellCtxt{
		Session:    sess,
		Model:      model,
		Config:     cfg,
		JSONOutput: *ni,
	}
	err = shell.RunShell(ctx, args)
	sess.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: ", err)
		os.Exit(1)
	}
}
