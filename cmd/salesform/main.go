package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/G-Node/salesform/salesform"
	"github.com/G-Node/salesform/salesform/form"
)

func main() {
	envfile := flag.String("env", "", "env file to load (default .env)")
	logSubmissions := flag.Bool("log-submissions", false, "log the values of every simulated submission")
	flag.Parse()

	logger := log.New(os.Stderr, "[salesform] ", log.LstdFlags)

	var envfiles []string
	if *envfile != "" {
		envfiles = append(envfiles, *envfile)
	}
	config, err := salesform.LoadConfig(logger, envfiles...)
	if err != nil {
		logger.Fatal(err)
	}

	clientForm := form.ClientInfo()
	if config.FormPath != "" {
		clientForm, err = form.Load(config.FormPath)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Printf("Loaded form %q from %s", clientForm.Name, config.FormPath)
	}

	var action form.SubmitAction
	if *logSubmissions {
		action = func(values map[string]string) (string, error) {
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				logger.Printf("Submitted %s: %q", k, values[k])
			}
			return form.SimulateSubmit(values)
		}
	}

	srv, err := salesform.NewService(clientForm, action, config)
	if err != nil {
		logger.Fatal(err)
	}
	srv.SetLogger(logger)
	if err := srv.Start(); err != nil {
		logger.Fatal(err)
	}
	defer srv.Stop()
	fmt.Printf("Serving %q on port %d; press Ctrl+C to stop\n", clientForm.Name, config.Port)
	srv.WaitForInterrupt()
}
