package main

import (
	"flag"
	"log"
	"os/exec"
	"runtime"
	"time"

	"github.com/oarkflow/secretshare"
)

// main is the entry point for the secretshare application. With --web it
// serves the browser UI and opens it; otherwise it runs the CLI.
func main() {
	webFlag := flag.Bool("web", false, "Serve the web UI")
	flag.Parse()

	if *webFlag {
		settings, err := secretshare.LoadSettings()
		if err != nil {
			log.Fatal(err)
		}
		go openBrowser("http://localhost" + settings.Listen)
		secretshare.StartHTTPServer(secretshare.New(), settings)
		return
	}

	Execute(flag.Args())
}

// openBrowser points the default browser at the web UI once the server has
// had a moment to come up. Failure is harmless; the URL is logged anyway.
func openBrowser(url string) {
	time.Sleep(500 * time.Millisecond)
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
