package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
	"github.com/Ameralajore/PnP-JS-Core/internal/config"
	"github.com/Ameralajore/PnP-JS-Core/internal/pages"
)

// CurrentConfig returns the workspace configuration, or exits when the
// working directory is not inside a workspace.
func CurrentConfig() *config.Config {
	cfg := OptionalConfig()
	if cfg == nil {
		fmt.Fprintln(os.Stderr, "fatal: not a pnp workspace (or any of the parent directories): pnp.toml")
		os.Exit(1)
	}
	return cfg
}

// OptionalConfig returns the workspace configuration, or nil outside a
// workspace.
func OptionalConfig() *config.Config {
	cfg, err := config.ReadConfigFromDirectory(workspaceDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to read current configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// CurrentService returns the page service bound to the workspace store.
func CurrentService() *pages.Service {
	service, err := CurrentConfig().NewService()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return service
}

// CurrentFormat returns the configured canvas format, or the platform
// defaults outside a workspace.
func CurrentFormat() canvas.Format {
	if cfg := OptionalConfig(); cfg != nil {
		return cfg.Format()
	}
	return canvas.DefaultFormat()
}

func workspaceDir() string {
	// Supports overriding the workspace directory mainly for testing
	// purposes. For example, when developing the CLI, it's convenient to
	// try commands without installing the binary. Ex:
	//
	//   $ env PNP_HOME=./examples go run ./cmd/pnp inspect SitePages/home.aspx
	if path, ok := os.LookupEnv("PNP_HOME"); ok {
		abspath, err := filepath.Abs(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to evaluate $PNP_HOME")
			os.Exit(1)
		}
		if _, err := os.Stat(abspath); os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "Path in $PNP_HOME undefined")
			os.Exit(1)
		}
		return abspath
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to determine current directory: %v\n", err)
		os.Exit(1)
	}
	return cwd
}
