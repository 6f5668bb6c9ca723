package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/mealbridge/mealcli/internal/models"
	"github.com/mealbridge/mealcli/internal/tui"
)

func main() {
	setupLogging()

	env := models.EnvProduction
	switch os.Getenv("MEALBRIDGE_ENV") {
	case "staging":
		env = models.EnvStaging
	case "development", "dev":
		env = models.EnvDevelopment
	}

	p := tea.NewProgram(tui.NewApp(env), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends debug logs to a file when MEALBRIDGE_DEBUG is set.
// Logging to the terminal would corrupt the TUI, so it is otherwise
// discarded.
func setupLogging() {
	if path := os.Getenv("MEALBRIDGE_DEBUG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			logrus.SetOutput(f)
			logrus.SetLevel(logrus.DebugLevel)
			logrus.SetFormatter(&logrus.JSONFormatter{})
			return
		}
	}
	logrus.SetOutput(io.Discard)
}
