package main

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/shilendra-dev/dodesk/internal/client"
	"github.com/shilendra-dev/dodesk/internal/ui"
	"github.com/spf13/cobra"
)

var (
	httpURL     string
	authToken   string
	workspaceID string
	userID      string
	jsonOutput  bool

	deskClient client.DeskClient
)

func defaultHTTPURL() string {
	if s := os.Getenv("DODESK_HTTP_URL"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if s := os.Getenv("DODESK_TOKEN"); s != "" {
		return s
	}
	return activeRemoteToken()
}

func defaultWorkspace() string {
	if s := os.Getenv("DODESK_WORKSPACE"); s != "" {
		return s
	}
	return activeRemoteWorkspace()
}

func defaultUser() string {
	if s := os.Getenv("DODESK_USER"); s != "" {
		return s
	}
	if u := activeRemoteUser(); u != "" {
		return u
	}
	out, err := exec.Command("git", "config", "user.email").Output()
	if err == nil {
		email := strings.TrimSpace(string(out))
		if email != "" {
			return email
		}
	}
	return ""
}

// requireWorkspace returns the workspace id or an error when none is set via
// flag, environment, or the active remote.
func requireWorkspace() (string, error) {
	if workspaceID == "" {
		return "", errors.New("no workspace set (use --workspace, DODESK_WORKSPACE, or a remote with a workspace)")
	}
	return workspaceID, nil
}

var rootCmd = &cobra.Command{
	Use:   "dodesk <command>",
	Short: "CLI client for the DoDesk issue service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.Detect(jsonOutput)
		deskClient = client.NewHTTPClient(httpURL, authToken, userID)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if deskClient != nil {
			deskClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "HTTP server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token for authentication")
	rootCmd.PersistentFlags().StringVarP(&workspaceID, "workspace", "w", defaultWorkspace(), "workspace id")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", defaultUser(), "user id for per-user state")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "issues", Title: "Issues:"},
		&cobra.Group{ID: "views", Title: "Views:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false

	// Issues
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)

	// Views
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(watchCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
